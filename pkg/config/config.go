// Package config holds the settings of a webfont-analyzer run: built-in
// defaults, an optional YAML file and environment variables.
package config

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	// AppName names the configuration directory.
	AppName = "webfont-analyzer"

	DefaultModel             = "gpt-4o-mini"
	DefaultAPIBaseURL        = "https://api.openai.com/v1"
	DefaultNavigationTimeout = 60 * time.Second
	DefaultFontTimeout       = 10 * time.Second
	DefaultSettleDelay       = 2 * time.Second
	DefaultFamilyLimit       = 20
	DefaultFontFileLimit     = 20
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey     = "OPENAI_API_KEY"
	EnvAPIBaseURL = "OPENAI_BASE_URL"
)

// Validation errors.
var (
	ErrInvalidURL               = errors.New("invalid url: must be an absolute http or https URL")
	ErrInvalidTimeout           = errors.New("invalid timeout: must be positive")
	ErrInvalidSettleDelay       = errors.New("invalid settle delay: must be non-negative")
	ErrInvalidLimit             = errors.New("invalid limit: must be between 1 and 20")
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)

// Config is the complete configuration of a run.
type Config struct {
	URL string

	APIKey     string
	APIBaseURL string
	Model      string

	NavigationTimeout time.Duration
	FontTimeout       time.Duration
	SettleDelay       time.Duration
	BrowserBin        string

	FamilyLimit    int
	FontFileLimit  int
	DetectLanguage bool

	JSON     bool
	Markdown bool
	Output   string
	Verbose  bool
	NoColor  bool
}

// NewConfig returns a Config with every default set.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:        DefaultAPIBaseURL,
		Model:             DefaultModel,
		NavigationTimeout: DefaultNavigationTimeout,
		FontTimeout:       DefaultFontTimeout,
		SettleDelay:       DefaultSettleDelay,
		FamilyLimit:       DefaultFamilyLimit,
		FontFileLimit:     DefaultFontFileLimit,
		DetectLanguage:    true,
	}
}

// XDGConfigDir returns the per-user configuration directory.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyEnv overrides c with the non-empty environment values getenv returns.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validateURL(c.URL); err != nil {
		return err
	}

	if c.NavigationTimeout <= 0 || c.FontTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.SettleDelay < 0 {
		return ErrInvalidSettleDelay
	}

	if c.FamilyLimit <= 0 || c.FamilyLimit > DefaultFamilyLimit ||
		c.FontFileLimit <= 0 || c.FontFileLimit > DefaultFontFileLimit {
		return ErrInvalidLimit
	}

	if c.JSON && c.Markdown {
		return ErrConflictingReportFormats
	}

	return nil
}
