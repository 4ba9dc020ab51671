// Package contract carries the OpenAPI description of the endpoint that
// receives submitted applications.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-jobform/pkg/application"
)

// SubmitPath is the path of the submit operation within the document.
const SubmitPath = "/applications"

const multipartForm = "multipart/form-data"

//go:embed openapi.yaml
var rawDocument []byte

// Raw returns a copy of the embedded document.
func Raw() []byte {
	return slices.Clone(rawDocument)
}

// Document is the parsed and validated submission contract.
type Document struct {
	openapiDoc *openapi3.T
	schema     *openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return Parse(ctx, rawDocument)
}

// Parse parses and validates raw as a submission contract. The document must
// describe POST SubmitPath with a multipart request body.
func Parse(ctx context.Context, raw []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	openapiDoc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := openapiDoc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	item := openapiDoc.Paths.Value(SubmitPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s not described", SubmitPath)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no request body", SubmitPath)
	}
	media := body.Value.Content.Get(multipartForm)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s does not accept %s", SubmitPath, multipartForm)
	}

	return &Document{openapiDoc: openapiDoc, schema: media.Schema.Value}, nil
}

// Title reports the document title.
func (d *Document) Title() string {
	if d.openapiDoc.Info == nil {
		return ""
	}
	return d.openapiDoc.Info.Title
}

// Fields lists the multipart property names, known application fields first
// in form order and any extras sorted after them.
func (d *Document) Fields() []string {
	var out []string
	seen := make(map[string]struct{}, len(d.schema.Properties))
	for _, name := range application.FieldNames() {
		if _, ok := d.schema.Properties[name]; ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	var extras []string
	for name := range d.schema.Properties {
		if _, ok := seen[name]; !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}

// Required lists the properties the endpoint requires, sorted.
func (d *Document) Required() []string {
	out := slices.Clone(d.schema.Required)
	sort.Strings(out)
	return out
}

// Countries returns the enum declared for the country property.
func (d *Document) Countries() []string {
	prop, ok := d.schema.Properties[application.FieldCountry]
	if !ok || prop.Value == nil {
		return nil
	}
	var out []string
	for _, value := range prop.Value.Enum {
		if s, ok := value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ResumeMaxBytes reads the x-max-bytes extension of the resume property.
func (d *Document) ResumeMaxBytes() (int64, bool) {
	prop, ok := d.schema.Properties[application.FieldResume]
	if !ok || prop.Value == nil {
		return 0, false
	}
	switch v := prop.Value.Extensions["x-max-bytes"].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Verify reports every way the document disagrees with the form: missing
// fields, a different required set, a different country list or resume limit.
func (d *Document) Verify() error {
	var errs []error

	for _, name := range application.FieldNames() {
		if _, ok := d.schema.Properties[name]; !ok {
			errs = append(errs, fmt.Errorf("contract: field %q not declared", name))
		}
	}

	wantRequired := []string{
		application.FieldEmail,
		application.FieldFirstName,
		application.FieldLastName,
		application.FieldMobileNo,
		application.FieldResume,
	}
	if got := d.Required(); !slices.Equal(got, wantRequired) {
		errs = append(errs, fmt.Errorf("contract: required fields %v, form requires %v", got, wantRequired))
	}

	if got := d.Countries(); !slices.Equal(got, application.Countries()) {
		errs = append(errs, fmt.Errorf("contract: countries %v, form offers %v", got, application.Countries()))
	}

	if limit, ok := d.ResumeMaxBytes(); ok && limit != application.MaxResumeSizeBytes {
		errs = append(errs, fmt.Errorf("contract: resume limit %d, form allows %d", limit, application.MaxResumeSizeBytes))
	}

	return errors.Join(errs...)
}
