package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spiffcs/dday/internal/constants"
	"github.com/spiffcs/dday/internal/countdown"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRepo is returned when a repository is not in owner/name form.
var ErrInvalidRepo = errors.New("repository must be in owner/name form")

// Environment variables read by ApplyEnv and TokenFrom. The INPUT_*
// names follow the GitHub Actions convention for action inputs.
const (
	EnvLabels     = "INPUT_DDAY-LABELS"
	EnvRepoToken  = "INPUT_REPO-TOKEN"
	EnvToken      = "GITHUB_TOKEN"
	EnvRepository = "GITHUB_REPOSITORY"
)

// Config represents the application configuration
type Config struct {
	// Labels is the countdown sequence. Labels[0] is the deadline label.
	Labels        []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Repo          string   `yaml:"repo,omitempty" json:"repo,omitempty"`
	PerPage       int      `yaml:"per_page,omitempty" json:"per_page,omitempty"`
	DefaultFormat string   `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	DryRun        bool     `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".dday"
	}
	return filepath.Join(configDir, "dday")
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".dday.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the user config directory, then
// merges any local .dday.yaml on top (local values take precedence).
func Load() (*Config, error) {
	return loadFrom(ConfigPath(), LocalConfigPath())
}

func loadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
		PerPage:       constants.DefaultPerPage,
	}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config file: %w", err)
	}
	if global != nil {
		cfg = mergeConfig(cfg, global)
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config file: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	return cfg, nil
}

// LoadFile reads a single config file without defaults or merging.
// A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg, nil
}

// readFile parses path, returning nil when the file does not exist.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig merges override on top of base.
// Set override values win; unset ones preserve base values.
func mergeConfig(base, override *Config) *Config {
	result := *base

	if len(override.Labels) > 0 {
		result.Labels = override.Labels
	}
	if override.Repo != "" {
		result.Repo = override.Repo
	}
	if override.PerPage != 0 {
		result.PerPage = override.PerPage
	}
	if override.DefaultFormat != "" {
		result.DefaultFormat = override.DefaultFormat
	}
	// dry_run can be turned on by any layer but never back off.
	result.DryRun = base.DryRun || override.DryRun

	return &result
}

// ApplyEnv overlays values from the environment. Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvLabels)); v != "" {
		seq, err := countdown.ParseSequence(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLabels, err)
		}
		c.Labels = seq.Labels()
	}
	if v := strings.TrimSpace(getenv(EnvRepository)); v != "" {
		c.Repo = v
	}
	return nil
}

// Sequence builds the countdown sequence from the configured labels.
func (c *Config) Sequence() (countdown.Sequence, error) {
	return countdown.NewSequence(c.Labels...)
}

// Validate checks the values that would otherwise fail late, mid-run.
func (c *Config) Validate() error {
	if _, _, err := ParseRepo(c.Repo); err != nil {
		return err
	}
	if c.PerPage < 1 || c.PerPage > constants.MaxPerPage {
		return fmt.Errorf("per_page must be between 1 and %d, got %d", constants.MaxPerPage, c.PerPage)
	}
	if _, err := c.Sequence(); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	return nil
}

// ParseRepo splits an owner/name repository reference.
func ParseRepo(s string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	return owner, name, nil
}

// TokenFrom returns the GitHub token from the environment, preferring
// GITHUB_TOKEN over the repo-token action input. Tokens are never read from
// config files.
func TokenFrom(getenv func(string) string) string {
	if t := getenv(EnvToken); t != "" {
		return t
	}
	return getenv(EnvRepoToken)
}

// Set assigns a config value by key, validating it first.
func (c *Config) Set(key, value string) error {
	switch key {
	case "token":
		return fmt.Errorf("tokens cannot be stored in config files for security reasons. Set the %s environment variable instead", EnvToken)
	case "format":
		switch value {
		case "table", "json", "yaml", "markdown":
		default:
			return fmt.Errorf("invalid format: %s (must be table, json, yaml or markdown)", value)
		}
		c.DefaultFormat = value
	case "labels":
		seq, err := countdown.ParseSequence(value)
		if err != nil {
			return err
		}
		c.Labels = seq.Labels()
	case "repo":
		if _, _, err := ParseRepo(value); err != nil {
			return err
		}
		c.Repo = value
	case "per_page":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > constants.MaxPerPage {
			return fmt.Errorf("invalid per_page: %s (must be between 1 and %d)", value, constants.MaxPerPage)
		}
		c.PerPage = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Save saves the configuration to the global config file
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return SaveTo(ConfigPath(), string(data))
}

// DefaultLabels returns the countdown used by `config defaults` and `config init`.
func DefaultLabels() []string {
	return []string{"D-0", "D-1", "D-2", "D-3", "D-4", "D-5"}
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	return &Config{
		Labels:        DefaultLabels(),
		Repo:          "owner/name",
		PerPage:       constants.DefaultPerPage,
		DefaultFormat: "table",
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# dday configuration file
# See: dday config defaults  (for all available options)

# Countdown labels, deadline first.
labels:
  - D-0
  - D-1
  - D-2
  - D-3
  - D-4
  - D-5

# Repository to operate on (defaults to $GITHUB_REPOSITORY)
# repo: owner/name

# Output format: table, json, yaml or markdown
default_format: table

# Resolve labels without changing them (optional)
# dry_run: true
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
