package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/render"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
	gotemplate "github.com/goliatone/go-jobform/pkg/render/template/gotemplate"
)

const pageTemplate = "templates/application.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet after the bundled one.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer emits the application page as a standalone HTML document whose
// form posts multipart data back to the server.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	inlineCSS   string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{templates: renderer, stylesheets: cfg.stylesheets}
	if cfg.inlineStyles {
		r.inlineCSS = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.Render(pageTemplate, r.viewData(page.WithTitle(options.Title), options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewData(page render.Page, options render.RenderOptions) map[string]any {
	sections := make([]map[string]any, 0, len(page.Sections))
	for _, section := range page.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, fieldView(field))
		}
		sections = append(sections, map[string]any{
			"title":  section.Title,
			"fields": fields,
		})
	}

	data := map[string]any{
		"title":         page.Title,
		"intro":         render.SanitizeIntro(options.Intro),
		"action":        options.Action,
		"resume_action": options.ResumeAction,
		"hidden":        hiddenInputs(options.Hidden),
		"sections":      sections,
		"status":        string(page.Status),
		"submitted":     page.Status == application.StatusSubmitted,
		"notices":       page.Notices,
		"receipt_id":    page.ReceiptID,
		"classes":       chromeClasses(),
		"inline_css":    r.inlineCSS,
		"stylesheets":   append([]string{}, r.stylesheets...),
	}
	if !options.OmitAssets {
		data["script"] = assetURL(options.AssetBase, RuntimeScriptName)
	}
	if options.Theme != nil {
		themeData := map[string]any{
			"name":     options.Theme.Theme,
			"variant":  options.Theme.Variant,
			"css_vars": cssDeclarations(options.Theme),
		}
		if options.Theme.AssetURL != nil {
			themeData["stylesheet"] = options.Theme.AssetURL("stylesheet")
		}
		data["theme"] = themeData
	}
	return data
}

func fieldView(field render.Field) map[string]any {
	view := map[string]any{
		"name":         field.Name,
		"id":           field.ID,
		"label":        field.Label,
		"input":        field.Input,
		"autocomplete": field.AutoComplete,
		"value":        field.Value,
		"options":      field.Options,
		"accept":       field.Accept,
		"span_class":   spanClass(field.Span),
		"error":        field.Error,
		"error_id":     errorID(field),
	}
	if field.Input == render.InputFile {
		view["file_name"] = render.SanitizeText(field.Value)
		view["max_bytes"] = strconv.FormatInt(application.MaxResumeSizeBytes, 10)
	}
	return view
}
