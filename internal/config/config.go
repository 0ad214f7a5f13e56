package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonpeek/internal/errors"
)

// AppName is used for the XDG config directory.
const AppName = "jsonpeek"

// Defaults
const (
	DefaultTop          = 2
	DefaultLogPrefix    = "json"
	DefaultSuffixLength = 8
	MaxSuffixLength     = 32
)

// Key case names accepted by wizard.key_case.
const (
	KeyCaseNone       = "none"
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for jsonpeek
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
	Wizard WizardConfig `yaml:"wizard"`
	Dev    DevConfig    `yaml:"dev"`
}

// LogConfig controls the per-analysis log file
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir defaults to the user's Desktop when empty.
	Dir          string `yaml:"dir"`
	Prefix       string `yaml:"prefix"`
	SuffixLength int    `yaml:"suffix_length"`
	// Markdown writes a .md copy of the report next to the log file.
	Markdown bool `yaml:"markdown"`
}

// ReportConfig controls report contents
type ReportConfig struct {
	Top int `yaml:"top"`
}

// WizardConfig controls the JSON creation wizard
type WizardConfig struct {
	// Dir is the "desktop" location offered by the wizard. Defaults to the
	// user's Desktop when empty.
	Dir     string `yaml:"dir"`
	KeyCase string `yaml:"key_case"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Log: LogConfig{
			Enabled:      true,
			Prefix:       DefaultLogPrefix,
			SuffixLength: DefaultSuffixLength,
		},
		Report: ReportConfig{
			Top: DefaultTop,
		},
		Wizard: WizardConfig{
			KeyCase: KeyCaseNone,
		},
		Dev: DevConfig{
			LogLevel: "WARN",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its
// parents, then in the XDG config directory.
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFileFrom(currentDir)
}

// FindConfigFileFrom is FindConfigFile starting at dir.
func FindConfigFileFrom(dir string) string {
	configNames := []string{".jsonpeek.yml", ".jsonpeek.yaml", "jsonpeek.yml", "jsonpeek.yaml"}

	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// XDGConfigDir returns the XDG config directory for jsonpeek.
// On Linux: ~/.config/jsonpeek
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DesktopDir returns the user's Desktop directory, falling back to
// ~/Desktop when the platform reports none.
func DesktopDir() string {
	if xdg.UserDirs.Desktop != "" {
		return xdg.UserDirs.Desktop
	}
	return filepath.Join(xdg.Home, "Desktop")
}

// LogDir returns the directory log files are written to.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return expandHome(c.Log.Dir)
	}
	return DesktopDir()
}

// WizardDir returns the default directory for files created by the wizard.
func (c *Config) WizardDir() string {
	if c.Wizard.Dir != "" {
		return expandHome(c.Wizard.Dir)
	}
	return DesktopDir()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Report.Top < 1 {
		return errors.NewConfigError(fmt.Sprintf("report.top must be at least 1, got %d", c.Report.Top), errors.ErrInvalidConfig)
	}
	if c.Log.SuffixLength < 1 || c.Log.SuffixLength > MaxSuffixLength {
		return errors.NewConfigError(
			fmt.Sprintf("log.suffix_length must be between 1 and %d, got %d", MaxSuffixLength, c.Log.SuffixLength),
			errors.ErrInvalidConfig,
		)
	}
	if strings.ContainsAny(c.Log.Prefix, `/\`) {
		return errors.NewConfigError(fmt.Sprintf("log.prefix %q must not contain path separators", c.Log.Prefix), errors.ErrInvalidConfig)
	}
	switch c.Wizard.KeyCase {
	case "", KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown wizard.key_case %q", c.Wizard.KeyCase), errors.ErrInvalidConfig)
	}
	return nil
}

// NormalizeKey applies the configured wizard key case to key.
func (c *Config) NormalizeKey(key string) string {
	switch c.Wizard.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// CLIOverrides holds command-line values that take precedence over the
// config file. Zero values leave the file value untouched.
type CLIOverrides struct {
	LogDir   string
	NoLog    bool
	Markdown bool
	Top      int
	Debug    bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.ApplyOverrides(cli)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides merges CLI values into c.
func (c *Config) ApplyOverrides(cli CLIOverrides) {
	if cli.LogDir != "" {
		c.Log.Dir = cli.LogDir
	}
	if cli.NoLog {
		c.Log.Enabled = false
	}
	if cli.Markdown {
		c.Log.Markdown = true
	}
	if cli.Top != 0 {
		c.Report.Top = cli.Top
	}
	if cli.Debug {
		c.Dev.Debug = true
	}
}

func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
