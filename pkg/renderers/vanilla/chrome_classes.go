package vanilla

// ChromeClass is a typed identifier for the page's structural CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "jobform-form"
	ClassHeader   ChromeClass = "jobform-header"
	ClassSection  ChromeClass = "jobform-section"
	ClassGrid     ChromeClass = "jobform-grid"
	ClassDropZone ChromeClass = "jobform-dropzone"
	ClassActions  ChromeClass = "jobform-actions"
	ClassNotices  ChromeClass = "jobform-notices"
	ClassError    ChromeClass = "jobform-error"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":     string(ClassForm),
		"header":   string(ClassHeader),
		"section":  string(ClassSection),
		"grid":     string(ClassGrid),
		"dropzone": string(ClassDropZone),
		"actions":  string(ClassActions),
		"notices":  string(ClassNotices),
		"error":    string(ClassError),
	}
}
