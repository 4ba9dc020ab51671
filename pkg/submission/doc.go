// Package submission provides application.Submitter implementations: a
// logging placeholder and a client that forwards applications to a remote
// endpoint as multipart/form-data.
package submission
