package vanilla_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/render"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/testsupport"
)

func renderPage(t *testing.T, form *application.Form, options render.RenderOptions, opts ...vanilla.Option) string {
	t.Helper()

	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), render.PageFromForm(form), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q\n%s", want, output)
		}
	}
}

func TestRenderer_DefaultPage(t *testing.T) {
	output := renderPage(t, application.New(), render.RenderOptions{
		Action:       "/",
		ResumeAction: "/resume",
	})

	assertContains(t, output,
		"<title>Job Application</title>",
		`enctype="multipart/form-data"`,
		`<h3>Personal Information</h3>`,
		`id="first-name" name="firstName" type="text"`,
		`<option value="India" selected>India</option>`,
		`<option value="Mexico">Mexico</option>`,
		`data-jobform-dropzone data-upload-url="/resume"`,
		`accept=".pdf,application/pdf"`,
		`data-max-bytes="5242880"`,
		`value="delete-resume"`,
		`value="cancel"`,
		`value="save"`,
		`<script src="/runtime/jobform-dropzone.js" defer></script>`,
	)
	if strings.Contains(output, `aria-invalid="true"`) {
		t.Fatalf("fresh form should not show errors")
	}
}

func TestRenderer_InlineErrorsAndEscaping(t *testing.T) {
	form := application.New()
	if err := form.SetField(application.FieldFirstName, `<b>Ada</b>`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := form.Submit(context.Background(), nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	output := renderPage(t, form, render.RenderOptions{OmitAssets: true})

	assertContains(t, output,
		`value="&lt;b&gt;Ada&lt;/b&gt;"`,
		`<p id="first-name-error" class="jobform-error">Please enter a valid first name</p>`,
		`<p id="mobile-no-error" class="jobform-error">Please enter a valid mobile number</p>`,
		"Please upload a resume",
	)
	if strings.Contains(output, "<b>Ada</b>") {
		t.Fatalf("field value was not escaped")
	}
	if strings.Contains(output, "<script") {
		t.Fatalf("assets should be omitted")
	}
}

func TestRenderer_ResumeAndStatus(t *testing.T) {
	form := testsupport.FilledForm(t)
	submitter := application.SubmitterFunc(func(context.Context, application.Submission) (application.Receipt, error) {
		return application.Receipt{ID: "rcpt-1"}, nil
	})
	if _, err := form.Submit(context.Background(), submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	output := renderPage(t, form, render.RenderOptions{Title: "Apply: Backend Engineer"})
	assertContains(t, output,
		"<h2>Apply: Backend Engineer</h2>",
		"<span data-jobform-file-name>cv.pdf</span>",
		"Reference: <code>rcpt-1</code>",
	)
}

func TestRenderer_OptionsHiddenIntroTheme(t *testing.T) {
	output := renderPage(t, application.New(), render.RenderOptions{
		Intro: `<p>Join us</p><script>alert(1)</script>`,
		Hidden: render.MergeHiddenFields(nil,
			render.CSRFToken("_csrf", "tok"),
		),
		Theme: &render.ThemeConfig{
			Theme:    "acme",
			Variant:  "dark",
			CSSVars:  map[string]string{"--brand": "#123456"},
			AssetURL: func(string) string { return "/themes/acme.css" },
		},
		AssetBase: "/static/",
	}, vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/assets/custom.css"))

	assertContains(t, output,
		`<div class="jobform-intro"><p>Join us</p></div>`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`data-theme="acme" data-variant="dark"`,
		`--brand: #123456;`,
		`<link rel="stylesheet" href="/themes/acme.css">`,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`.jobform-dropzone`,
		`<script src="/static/jobform-dropzone.js" defer></script>`,
	)
	if strings.Contains(output, "alert(1)") {
		t.Fatalf("intro script survived sanitising")
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{output: "custom-output"}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), render.PageFromForm(nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if stub.name != "templates/application.tmpl" {
		t.Fatalf("unexpected template name %q", stub.name)
	}
	data, ok := stub.data.(map[string]any)
	if !ok || data["title"] != render.DefaultTitle {
		t.Fatalf("unexpected template data %#v", stub.data)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %s %s", renderer.Name(), renderer.ContentType())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, render.PageFromForm(nil), render.RenderOptions{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

type stubTemplateRenderer struct {
	output string
	name   string
	data   any
}

var _ rendertemplate.TemplateRenderer = (*stubTemplateRenderer)(nil)

func (s *stubTemplateRenderer) Render(name string, data any, _ ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	return s.output, nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, rendertemplate.Filter) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
