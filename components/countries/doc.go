// Package countries serves the application form's country choices as JSON
// options, for clients that fill the country select remotely.
//
// The handler answers GET and HEAD requests. A "q" parameter filters by
// case-insensitive substring with prefix matches first; an empty query lists
// every country in form order.
package countries
