package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/goliatone/go-jobform/pkg/application"
)

const (
	defaultTimeout = 15 * time.Second
	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 64 << 10
)

// ErrUnexpectedStatus wraps non-2xx, non-422 responses.
var ErrUnexpectedStatus = errors.New("submission: unexpected response status")

// HTTPOption configures an HTTP submitter.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) {
		h.header.Add(key, value)
	}
}

// WithLogger sets the logger used for response diagnostics.
func WithLogger(log *slog.Logger) HTTPOption {
	return func(h *HTTP) {
		if log != nil {
			h.log = log
		}
	}
}

// WithClock sets the clock used to stamp receipts the endpoint leaves blank.
func WithClock(clock clockwork.Clock) HTTPOption {
	return func(h *HTTP) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// HTTP posts applications to an endpoint as multipart/form-data: one part
// per text field and a "resume" file part.
//
// A 2xx response is an acceptance; its JSON body may carry {"id", "submittedAt"}.
// A 422 response is a rejection whose body is {"errors": {path: [messages]}}
// with an optional top level "message". Anything else is an error.
type HTTP struct {
	endpoint string
	client   *http.Client
	header   http.Header
	log      *slog.Logger
	clock    clockwork.Clock
}

var _ application.Submitter = (*HTTP)(nil)

// NewHTTP validates endpoint and builds the submitter.
func NewHTTP(endpoint string, opts ...HTTPOption) (*HTTP, error) {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("submission: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("submission: endpoint %q must be an absolute http(s) URL", endpoint)
	}

	h := &HTTP{
		endpoint: parsed.String(),
		client:   &http.Client{Timeout: defaultTimeout},
		header:   make(http.Header),
		log:      slog.Default(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Endpoint reports the URL applications are posted to.
func (h *HTTP) Endpoint() string {
	return h.endpoint
}

// Submit sends the application and interprets the response.
func (h *HTTP) Submit(ctx context.Context, submission application.Submission) (application.Receipt, error) {
	body, contentType, err := encodeMultipart(submission.State)
	if err != nil {
		return application.Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return application.Receipt{}, fmt.Errorf("submission: build request: %w", err)
	}
	for key, values := range h.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return application.Receipt{}, fmt.Errorf("submission: post %s: %w", h.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return application.Receipt{}, fmt.Errorf("submission: read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return h.receipt(raw), nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return application.Receipt{}, decodeRejection(raw)
	default:
		h.log.WarnContext(ctx, "submission endpoint returned unexpected status",
			"status", resp.StatusCode,
			"endpoint", h.endpoint,
		)
		return application.Receipt{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, snippet(raw))
	}
}

func (h *HTTP) receipt(raw []byte) application.Receipt {
	var receipt application.Receipt
	if len(bytes.TrimSpace(raw)) > 0 {
		// A non-JSON acceptance body still counts as accepted.
		_ = json.Unmarshal(raw, &receipt)
	}
	if receipt.ID == "" {
		receipt.ID = uuid.NewString()
	}
	if receipt.SubmittedAt.IsZero() {
		receipt.SubmittedAt = h.clock.Now().UTC()
	}
	return receipt
}

type rejectionPayload struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func decodeRejection(raw []byte) error {
	var payload rejectionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &application.RejectionError{Form: []string{application.MsgSubmitFailed}}
	}
	rejection := &application.RejectionError{Fields: payload.Errors}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		rejection.Form = []string{msg}
	}
	return rejection
}

func encodeMultipart(state application.State) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	values := state.Values()
	for _, name := range application.TextFields() {
		if err := writer.WriteField(name, values[name]); err != nil {
			return nil, "", fmt.Errorf("submission: write field %s: %w", name, err)
		}
	}

	if resume := state.Resume; resume != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			application.FieldResume, resume.Name))
		header.Set("Content-Type", resume.MediaType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("submission: create resume part: %w", err)
		}
		if _, err := part.Write(resume.Content); err != nil {
			return nil, "", fmt.Errorf("submission: write resume: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("submission: close multipart: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func snippet(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
