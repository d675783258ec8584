package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"fortio.org/log"
	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the host settings. YAML files use the snake_case keys from
// the yaml tags; TOML files use the Go field names.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	Debug              bool   `yaml:"debug"`
	LogLevel           string `yaml:"log_level"`
	HistoryFile        string `yaml:"history_file"`
	MaxCallDepth       int    `yaml:"max_call_depth"`
	Color              string `yaml:"color"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigEnv names the environment variable consulted when no --config flag
// is given.
const ConfigEnv = "TDOP_CONFIG"

func DefaultConfig() *Config {
	return &Config{
		Prompt:             "$$ ",
		ContinuationPrompt: ".. ",
		LogLevel:           "warning",
		HistoryFile:        "~/.tdop_history",
		Color:              ColorAuto,
	}
}

// TOML keys are the Go field names; unknown keys are errors.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig reads a .yml/.yaml or .toml file over the defaults and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("config: %s is empty", path)
			}
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".toml":
		if err := tomlSettings.NewDecoder(bufio.NewReader(file)).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported file type %q (want .yml, .yaml or .toml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.LogVf("config: loaded %s", path)
	return cfg, nil
}

// ResolveConfig loads path, or the file named by TDOP_CONFIG when path is
// empty, or returns the defaults when neither is set.
func ResolveConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

func (c *Config) Validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}
	if _, err := log.ValidateLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level: %v", err))
	}
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must not be negative, got %d", c.MaxCallDepth))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never, got %q", c.Color))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath expands a leading ~ in HistoryFile. An empty result disables
// history.
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" || !strings.HasPrefix(c.HistoryFile, "~") {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("config: cannot expand %s: %v", c.HistoryFile, err)
		return ""
	}
	return filepath.Join(home, strings.TrimPrefix(c.HistoryFile, "~"))
}
