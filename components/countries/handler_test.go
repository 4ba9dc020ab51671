package countries

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, handlerResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var payload handlerResponse
	if rec.Code == http.StatusOK && method == http.MethodGet {
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, payload
}

func TestHandler_EmptyQueryListsFormCountries(t *testing.T) {
	rec, payload := serve(t, Handler(), http.MethodGet, "/options/countries")

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	want := []Option{
		{Value: "India", Label: "India", Default: true},
		{Value: "United States", Label: "United States"},
		{Value: "Canada", Label: "Canada"},
		{Value: "Mexico", Label: "Mexico"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SearchPrefersPrefixMatches(t *testing.T) {
	h := Handler(WithCountries([]string{"Panama", "Canada", "Cameroon", "Chad"}))

	_, payload := serve(t, h, http.MethodGet, "/options/countries?q=ca")

	var got []string
	for _, option := range payload.Data {
		got = append(got, option.Value)
	}
	if diff := cmp.Diff([]string{"Canada", "Cameroon"}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_NoMatchReturnsEmptyArray(t *testing.T) {
	rec, _ := serve(t, Handler(), http.MethodGet, "/options/countries?q=atlantis")
	if strings.TrimSpace(rec.Body.String()) != `{"data":[]}` {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestHandler_MethodAndGuard(t *testing.T) {
	rec, _ := serve(t, Handler(), http.MethodPost, "/options/countries")
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") == "" {
		t.Fatalf("expected 405 with Allow, got %d", rec.Code)
	}

	rec, _ = serve(t, Handler(), http.MethodHead, "/options/countries")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d %q", rec.Code, rec.Body.String())
	}

	guarded := Handler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
	}))
	if rec, _ := serve(t, guarded, http.MethodGet, "/options/countries"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected guard status, got %d", rec.Code)
	}

	forbidden := Handler(WithGuard(func(*http.Request) error { return errors.New("nope") }))
	if rec, _ := serve(t, forbidden, http.MethodGet, "/options/countries"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/jobs"); got != "/jobs/options/countries" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("jobs/", WithRoutePath("countries")); got != "/jobs/countries" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/jobs")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern+"?q=mex", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Mexico") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected missing mux error")
	}
}
