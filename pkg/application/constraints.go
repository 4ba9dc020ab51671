package application

// Resume constraints shared by the intake handler, renderers and the
// submission contract.
const (
	ContentTypePDF      = "application/pdf"
	MaxResumeSizeBytes  = int64(5 * 1024 * 1024) // 5 MiB, inclusive
	contentTypeOctet    = "application/octet-stream"
	resumeAcceptPattern = ".pdf,application/pdf"
)

// ResumeAccept is the value used for the file input accept attribute.
func ResumeAccept() string {
	return resumeAcceptPattern
}
