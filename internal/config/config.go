package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file used when -c is not given.
const DefaultPath = "booktoc.yaml"

// Config is the build configuration consumed by the TOC subsystem and the
// page pipeline.
type Config struct {
	// GlobalTocPath points at the manifest. Empty disables the subsystem.
	GlobalTocPath string `yaml:"globaltoc_path,omitempty"`
	// FilenameSplitChar separates words in folder names during auto-generation.
	FilenameSplitChar string `yaml:"filename_split_char,omitempty"`

	SourceDir       string   `yaml:"source_dir,omitempty"`
	OutputDir       string   `yaml:"output_dir,omitempty"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// path of the file this config was read from; relative paths resolve against its directory.
	path string
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MetricsConfig controls Prometheus output.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics of each build in text exposition format.
	Textfile string `yaml:"textfile,omitempty"`
}

// Enabled reports whether a manifest is configured.
func (c *Config) Enabled() bool { return strings.TrimSpace(c.GlobalTocPath) != "" }

// ManifestPath returns the manifest location resolved against the config file.
func (c *Config) ManifestPath() string { return c.resolve(c.GlobalTocPath) }

// SourcePath returns the resolved page source root.
func (c *Config) SourcePath() string { return c.resolve(c.SourceDir) }

// OutputPath returns the resolved output root.
func (c *Config) OutputPath() string { return c.resolve(c.OutputDir) }

// MetricsPath returns the resolved metrics textfile, or "" when disabled.
func (c *Config) MetricsPath() string { return c.resolve(c.Metrics.Textfile) }

// File returns the path the config was loaded from, "" for in-memory configs.
func (c *Config) File() string { return c.path }

func (c *Config) resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.FilenameSplitChar == "" {
		c.FilenameSplitChar = "_"
	}
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join("_build", "source")
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
}

// Load reads the configuration at configPath. Environment variables are
// expanded after .env files have been loaded.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	cfg.path = configPath
	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults and validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.FilenameSplitChar, `/\`) {
		return fmt.Errorf("filename_split_char %q must not contain a path separator", c.FilenameSplitChar)
	}
	for _, p := range c.ExcludePatterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

const exampleConfig = `# booktoc configuration
#
# Path to the table of contents manifest. Remove it to disable navigation injection.
globaltoc_path: _toc.yml

# Character separating words in folder names when drafting a manifest.
filename_split_char: "_"

# Pages are read from source_dir and written, with navigation injected, to output_dir.
source_dir: .
output_dir: _build/source
exclude_patterns:
  - _build
  - README.md

logging:
  level: info
  format: text

metrics:
  textfile: ""
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").Fatal().Build()
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}
