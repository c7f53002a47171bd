package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.NavigationTimeout != 60*time.Second {
		t.Errorf("NavigationTimeout = %v, want 60s", cfg.NavigationTimeout)
	}
	if cfg.FontTimeout != 10*time.Second {
		t.Errorf("FontTimeout = %v, want 10s", cfg.FontTimeout)
	}
	if cfg.FamilyLimit != 20 || cfg.FontFileLimit != 20 {
		t.Errorf("limits = %d/%d, want 20/20", cfg.FamilyLimit, cfg.FontFileLimit)
	}
	if !cfg.DetectLanguage {
		t.Error("DetectLanguage = false, want true")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewConfig()
		cfg.URL = "https://example.com"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "http url", mutate: func(c *Config) { c.URL = "http://localhost:8080/page" }},
		{name: "empty url", mutate: func(c *Config) { c.URL = "" }, wantErr: ErrInvalidURL},
		{name: "relative url", mutate: func(c *Config) { c.URL = "example.com" }, wantErr: ErrInvalidURL},
		{name: "ftp url", mutate: func(c *Config) { c.URL = "ftp://example.com" }, wantErr: ErrInvalidURL},
		{name: "zero timeout", mutate: func(c *Config) { c.NavigationTimeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative font timeout", mutate: func(c *Config) { c.FontTimeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero settle delay", mutate: func(c *Config) { c.SettleDelay = 0 }},
		{name: "negative settle delay", mutate: func(c *Config) { c.SettleDelay = -1 }, wantErr: ErrInvalidSettleDelay},
		{name: "zero family limit", mutate: func(c *Config) { c.FamilyLimit = 0 }, wantErr: ErrInvalidLimit},
		{name: "family limit above cap", mutate: func(c *Config) { c.FamilyLimit = DefaultFamilyLimit + 1 }, wantErr: ErrInvalidLimit},
		{name: "font file limit above cap", mutate: func(c *Config) { c.FontFileLimit = 50 }, wantErr: ErrInvalidLimit},
		{name: "limits at cap", mutate: func(c *Config) { c.FamilyLimit, c.FontFileLimit = DefaultFamilyLimit, DefaultFontFileLimit }},
		{name: "both formats", mutate: func(c *Config) { c.JSON, c.Markdown = true, true }, wantErr: ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvAPIKey: "sk-env"}

	cfg := NewConfig()
	cfg.Apply(&File{APIKey: "sk-file", Model: "gpt-4o"})
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want the environment value", cfg.APIKey)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want the default", cfg.APIBaseURL)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want the file value", cfg.Model)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `api_key: sk-file
model: gpt-4o
navigation_timeout: 90s
settle_delay: 500ms
font_file_limit: 5
detect_language: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}

	cfg := NewConfig()
	cfg.Apply(f)

	if cfg.APIKey != "sk-file" || cfg.Model != "gpt-4o" {
		t.Errorf("api settings = %q/%q", cfg.APIKey, cfg.Model)
	}
	if cfg.NavigationTimeout != 90*time.Second {
		t.Errorf("NavigationTimeout = %v, want 90s", cfg.NavigationTimeout)
	}
	if cfg.SettleDelay != 500*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 500ms", cfg.SettleDelay)
	}
	if cfg.FontTimeout != DefaultFontTimeout {
		t.Errorf("FontTimeout = %v, want the default", cfg.FontTimeout)
	}
	if cfg.FontFileLimit != 5 || cfg.FamilyLimit != DefaultFamilyLimit {
		t.Errorf("limits = %d/%d", cfg.FamilyLimit, cfg.FontFileLimit)
	}
	if cfg.DetectLanguage {
		t.Error("DetectLanguage = true, want false")
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfigFile(missing) error = %v, want %v", err, ErrConfigNotFound)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("navigation_timeout: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(bad); err == nil || errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfigFile(bad) error = %v, want a parse error", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	if got := FindConfigFile("/etc/custom.yaml"); got != "/etc/custom.yaml" {
		t.Errorf("FindConfigFile(explicit) = %q", got)
	}
}
