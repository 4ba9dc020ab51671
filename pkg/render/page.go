package render

import (
	"strings"

	"github.com/goliatone/go-jobform/pkg/application"
)

// Input kinds understood by renderers.
const (
	InputText   = "text"
	InputEmail  = "email"
	InputSelect = "select"
	InputFile   = "file"
)

// Field is a single control as presented to the applicant.
type Field struct {
	Name         string   `json:"name"`
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Input        string   `json:"input"`
	AutoComplete string   `json:"autocomplete,omitempty"`
	Value        string   `json:"value,omitempty"`
	Options      []string `json:"options,omitempty"`
	Accept       string   `json:"accept,omitempty"`
	Span         string   `json:"span,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Section groups fields under a heading.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Page is the renderer-facing snapshot of an application form.
type Page struct {
	Title          string             `json:"title"`
	Sections       []Section          `json:"sections"`
	ResumeFileName string             `json:"resumeFileName,omitempty"`
	Status         application.Status `json:"status"`
	Notices        []string           `json:"notices,omitempty"`
	ReceiptID      string             `json:"receiptId,omitempty"`
	Errors         application.Errors `json:"errors,omitempty"`
}

// DefaultTitle is the page heading when no override is configured.
const DefaultTitle = "Job Application"

type fieldDef struct {
	name         string
	id           string
	label        string
	input        string
	autoComplete string
	span         string
}

var personalFields = []fieldDef{
	{application.FieldFirstName, "first-name", "First name", InputText, "given-name", "half"},
	{application.FieldLastName, "last-name", "Last name", InputText, "family-name", "half"},
	{application.FieldEmail, "email", "Email address", InputEmail, "email", "wide"},
	{application.FieldMobileNo, "mobile-no", "Mobile No.", InputText, "tel", "wide"},
	{application.FieldCountry, "country", "Country", InputSelect, "country-name", "half"},
	{application.FieldStreetAddress, "street-address", "Street address", InputText, "street-address", "full"},
	{application.FieldCity, "city", "City", InputText, "address-level2", "third"},
	{application.FieldRegion, "region", "State / Province", InputText, "address-level1", "third"},
	{application.FieldPostalCode, "postal-code", "PIN / Postal code", InputText, "postal-code", "third"},
}

var resumeField = fieldDef{application.FieldResume, "resume", "Resume", InputFile, "", "full"}

// PageFromForm snapshots form into a Page.
func PageFromForm(form *application.Form) Page {
	if form == nil {
		form = application.New()
	}
	state := form.State()
	errs := form.Errors()

	personal := Section{Title: "Personal Information"}
	for _, spec := range personalFields {
		value, _ := state.Value(spec.name)
		field := spec.field(value, errs.Get(spec.name))
		if spec.input == InputSelect {
			field.Options = application.Countries()
		}
		personal.Fields = append(personal.Fields, field)
	}

	resume := resumeField.field(form.ResumeFileName(), errs.Get(application.FieldResume))
	resume.Accept = application.ResumeAccept()

	return Page{
		Title:          DefaultTitle,
		Sections:       []Section{personal, {Title: "Resume", Fields: []Field{resume}}},
		ResumeFileName: form.ResumeFileName(),
		Status:         form.Status(),
		Notices:        form.Notices(),
		ReceiptID:      form.Receipt().ID,
		Errors:         errs,
	}
}

// Field looks up a field by name across sections.
func (p Page) Field(name string) (Field, bool) {
	for _, section := range p.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// WithTitle returns a copy of p using title when it is not blank.
func (p Page) WithTitle(title string) Page {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		p.Title = trimmed
	}
	return p
}

func (s fieldDef) field(value, errMsg string) Field {
	return Field{
		Name:         s.name,
		ID:           s.id,
		Label:        s.label,
		Input:        s.input,
		AutoComplete: s.autoComplete,
		Value:        value,
		Span:         s.span,
		Error:        errMsg,
	}
}
