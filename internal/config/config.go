// Package config loads the jobform server configuration from an optional
// YAML or JSON file and the environment. Environment values win.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration.
type Config struct {
	Addr           string        `json:"addr" yaml:"addr" validate:"required"`
	LogLevel       string        `json:"logLevel" yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat      string        `json:"logFormat" yaml:"logFormat" validate:"oneof=text json"`
	SubmitURL      string        `json:"submitURL" yaml:"submitURL" validate:"omitempty,url"`
	DraftTTL       time.Duration `json:"draftTTL" yaml:"draftTTL" validate:"gt=0"`
	MaxDrafts      int           `json:"maxDrafts" yaml:"maxDrafts" validate:"gt=0"`
	ShutdownGrace  time.Duration `json:"shutdownGrace" yaml:"shutdownGrace" validate:"gte=0"`
	AllowedOrigins []string      `json:"allowedOrigins" yaml:"allowedOrigins" validate:"dive,required"`
	Page           Page          `json:"page" yaml:"page"`
	Theme          Theme         `json:"theme" yaml:"theme"`
}

// Page customises the rendered application page.
type Page struct {
	Title string `json:"title" yaml:"title"`
	// Intro is markup shown above the form; it is sanitised before rendering.
	Intro string `json:"intro" yaml:"intro"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:          ":8383",
		LogLevel:      "info",
		LogFormat:     "text",
		DraftTTL:      30 * time.Minute,
		MaxDrafts:     1000,
		ShutdownGrace: 5 * time.Second,
	}
}

// envVars lists the settings the environment may override. Unset variables
// keep the value already loaded.
type envVars struct {
	Addr           string        `env:"JOBFORM_ADDR"`
	LogLevel       string        `env:"JOBFORM_LOG_LEVEL"`
	LogFormat      string        `env:"JOBFORM_LOG_FORMAT"`
	SubmitURL      string        `env:"JOBFORM_SUBMIT_URL"`
	DraftTTL       time.Duration `env:"JOBFORM_DRAFT_TTL"`
	MaxDrafts      int           `env:"JOBFORM_MAX_DRAFTS"`
	ShutdownGrace  time.Duration `env:"JOBFORM_SHUTDOWN_GRACE"`
	AllowedOrigins string        `env:"JOBFORM_ALLOWED_ORIGINS"`
	ThemeVariant   string        `env:"JOBFORM_THEME_VARIANT"`
}

// PathEnv names the variable holding the config file path.
const PathEnv = "JOBFORM_CONFIG"

// Load resolves the configuration. Variables from dotenv files (".env" when
// none are given) are applied first without overriding the process
// environment. The file comes from path or, when empty, from JOBFORM_CONFIG.
func Load(path string, dotenv ...string) (*Config, error) {
	if err := loadDotEnv(dotenv); err != nil {
		return nil, err
	}

	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(PathEnv)
	}
	if path = strings.TrimSpace(path); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file found, using environment variables")
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load dotenv: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: file %s not found", path)
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	decoded := *c
	if err := json.Unmarshal(data, &decoded); err == nil {
		*c = decoded
		return nil
	}

	decoded = *c
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", path, err)
	}
	*c = decoded
	return nil
}

func (c *Config) applyEnv() error {
	vars := envVars{
		Addr:           c.Addr,
		LogLevel:       c.LogLevel,
		LogFormat:      c.LogFormat,
		SubmitURL:      c.SubmitURL,
		DraftTTL:       c.DraftTTL,
		MaxDrafts:      c.MaxDrafts,
		ShutdownGrace:  c.ShutdownGrace,
		AllowedOrigins: strings.Join(c.AllowedOrigins, ","),
		ThemeVariant:   c.Theme.Variant,
	}
	if err := env.Load(&vars, nil); err != nil {
		return fmt.Errorf("config: load environment variables: %w", err)
	}

	c.Addr = strings.TrimSpace(vars.Addr)
	c.LogLevel = strings.ToLower(strings.TrimSpace(vars.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(vars.LogFormat))
	c.SubmitURL = strings.TrimSpace(vars.SubmitURL)
	c.DraftTTL = vars.DraftTTL
	c.MaxDrafts = vars.MaxDrafts
	c.ShutdownGrace = vars.ShutdownGrace
	c.AllowedOrigins = splitList(vars.AllowedOrigins)
	c.Theme.Variant = strings.TrimSpace(vars.ThemeVariant)
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resolved values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(msgs, "; "))
	}
	if err := c.Theme.validate(); err != nil {
		return err
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
