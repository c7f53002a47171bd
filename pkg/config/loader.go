package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file looked up in the XDG config directories.
const DefaultConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Every field is optional.
//
//	api_key: sk-...
//	model: gpt-4o
//	navigation_timeout: 90s
type File struct {
	APIKey            string        `yaml:"api_key"`
	APIBaseURL        string        `yaml:"api_base_url"`
	Model             string        `yaml:"model"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	FontTimeout       time.Duration `yaml:"font_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	BrowserBin        string        `yaml:"browser_bin"`
	FamilyLimit       int           `yaml:"family_limit"`
	FontFileLimit     int           `yaml:"font_file_limit"`
	DetectLanguage    *bool         `yaml:"detect_language"`
	NoColor           bool          `yaml:"no_color"`
}

// LoadConfigFile reads and decodes the YAML file at path.
// A missing file is reported as ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &f, nil
}

// FindConfigFile returns configPath when it is not empty. Otherwise it looks
// for webfont-analyzer/config.yaml in the XDG config directories and returns
// "" when there is none.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	path, err := xdg.SearchConfigFile(filepath.Join(AppName, DefaultConfigFile))
	if err != nil {
		return ""
	}
	return path
}

// Apply copies the values set in f over c.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}

	if f.APIKey != "" {
		c.APIKey = f.APIKey
	}
	if f.APIBaseURL != "" {
		c.APIBaseURL = f.APIBaseURL
	}
	if f.Model != "" {
		c.Model = f.Model
	}
	if f.NavigationTimeout != 0 {
		c.NavigationTimeout = f.NavigationTimeout
	}
	if f.FontTimeout != 0 {
		c.FontTimeout = f.FontTimeout
	}
	if f.SettleDelay != 0 {
		c.SettleDelay = f.SettleDelay
	}
	if f.BrowserBin != "" {
		c.BrowserBin = f.BrowserBin
	}
	if f.FamilyLimit != 0 {
		c.FamilyLimit = f.FamilyLimit
	}
	if f.FontFileLimit != 0 {
		c.FontFileLimit = f.FontFileLimit
	}
	if f.DetectLanguage != nil {
		c.DetectLanguage = *f.DetectLanguage
	}
	if f.NoColor {
		c.NoColor = true
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}
