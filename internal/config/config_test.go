package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var envNames = []string{
	PathEnv,
	"JOBFORM_ADDR",
	"JOBFORM_LOG_LEVEL",
	"JOBFORM_LOG_FORMAT",
	"JOBFORM_SUBMIT_URL",
	"JOBFORM_DRAFT_TTL",
	"JOBFORM_MAX_DRAFTS",
	"JOBFORM_SHUTDOWN_GRACE",
	"JOBFORM_ALLOWED_ORIGINS",
	"JOBFORM_THEME_VARIANT",
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "jobform.yaml", `
addr: ":9000"
logLevel: debug
submitURL: https://hr.example.com/applications
draftTTL: 10m
allowedOrigins: ["https://careers.example.com"]
page:
  title: Backend Engineer
  intro: "<p>Remote friendly</p>"
theme:
  name: acme
  variant: dark
  tokens:
    brand: "#123456"
  variants:
    dark:
      tokens:
        surface: "#111111"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9000" || cfg.LogLevel != "debug" || cfg.DraftTTL != 10*time.Minute {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ShutdownGrace != 5*time.Second || cfg.LogFormat != "text" {
		t.Fatalf("defaults lost for unset keys: %+v", cfg)
	}
	if cfg.Page.Title != "Backend Engineer" || cfg.Page.Intro != "<p>Remote friendly</p>" {
		t.Fatalf("page not loaded: %+v", cfg.Page)
	}
	if diff := cmp.Diff([]string{"https://careers.example.com"}, cfg.AllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}

	manifest := cfg.Theme.Manifest()
	if manifest == nil || manifest.Name != "acme" || manifest.Variants["dark"].Tokens["surface"] != "#111111" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
}

func TestLoad_JSONFileFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "jobform.json", `{"addr": ":7000", "page": {"title": "Designer"}}`)
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.Page.Title != "Designer" {
		t.Fatalf("json file not applied: %+v", cfg)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "jobform.yaml", "addr: \":9000\"\nlogFormat: text\n")
	t.Setenv("JOBFORM_ADDR", ":9100")
	t.Setenv("JOBFORM_LOG_FORMAT", "JSON")
	t.Setenv("JOBFORM_DRAFT_TTL", "1h")
	t.Setenv("JOBFORM_MAX_DRAFTS", "25")
	t.Setenv("JOBFORM_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" || cfg.LogFormat != "json" || cfg.DraftTTL != time.Hour || cfg.MaxDrafts != 25 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dotenv := writeConfig(t, ".env", "JOBFORM_ADDR=:9300\nJOBFORM_LOG_LEVEL=warn\n")
	t.Setenv("JOBFORM_LOG_LEVEL", "error")

	cfg, err := Load("", dotenv)
	// godotenv.Load sets variables with os.Setenv; undo them after the test.
	t.Cleanup(func() { os.Unsetenv("JOBFORM_ADDR") })
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9300" {
		t.Fatalf("dotenv value not applied: %q", cfg.Addr)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("dotenv must not override the process environment, got %q", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "bad level", body: "logLevel: verbose\n", want: "LogLevel"},
		{name: "bad format", env: map[string]string{"JOBFORM_LOG_FORMAT": "xml"}, want: "LogFormat"},
		{name: "bad submit url", body: "submitURL: not a url\n", want: "SubmitURL"},
		{name: "zero ttl", body: "draftTTL: 0s\n", want: "DraftTTL"},
		{name: "zero max drafts", body: "maxDrafts: 0\n", want: "MaxDrafts"},
		{name: "negative max drafts env", env: map[string]string{"JOBFORM_MAX_DRAFTS": "-1"}, want: "MaxDrafts"},
		{name: "unparseable", body: "addr: [\n", want: "invalid JSON or YAML"},
		{name: "unknown variant", body: "theme:\n  name: acme\n  variant: sepia\n", want: `no variant "sepia"`},
		{name: "variant without theme", body: "theme:\n  variant: dark\n", want: "without a theme name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, "jobform.yaml", tt.body)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
