package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to the
	// current URL when empty.
	Action string
	// ResumeAction is the endpoint the drop zone uploads to.
	ResumeAction string
	// Title overrides the page heading.
	Title string
	// Intro is trusted-but-sanitised markup shown above the form.
	Intro string
	// Hidden carries extra hidden inputs (CSRF tokens, draft ids).
	Hidden map[string]string
	// Theme is the resolved theme selection, when one is configured.
	Theme *ThemeConfig
	// AssetBase prefixes runtime script URLs; defaults to "/runtime".
	AssetBase string
	// OmitAssets skips script tags for callers embedding the form.
	OmitAssets bool
}
