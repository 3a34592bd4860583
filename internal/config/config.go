package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Telegram contains the messaging credentials and timeout. Both credential
// fields may be empty: the watcher then logs matches locally instead of
// sending them.
type Telegram struct {
	Token          string `toml:"token"`
	ChatID         string `toml:"chat_id"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Vinted contains the catalog endpoint settings.
type Vinted struct {
	BaseURL        string `toml:"base_url"`
	Currency       string `toml:"currency"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Watch contains the polling loop settings.
type Watch struct {
	PollSeconds       int    `toml:"poll_seconds"`
	MaxItemAgeMinutes int    `toml:"max_item_age_minutes"`
	PerPage           int    `toml:"per_page"`
	StateDir          string `toml:"state_dir"`
}

// Logging contains log output settings. An empty format means "pick
// console on a terminal, JSON otherwise".
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Search is one monitored query with its numeric rules. Nil rule fields
// mean the rule is not applied.
type Search struct {
	Name         string   `toml:"name"`
	Query        string   `toml:"query"`
	MaxPrice     *float64 `toml:"max_price"`
	MaxUnitPrice *float64 `toml:"max_unit_price"`
	MinQuantity  *int     `toml:"min_quantity"`
}

// Config encapsulates all configuration values for chine.
type Config struct {
	Telegram Telegram `toml:"telegram"`
	Vinted   Vinted   `toml:"vinted"`
	Watch    Watch    `toml:"watch"`
	Logging  Logging  `toml:"logging"`
	Searches []Search `toml:"searches"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chine/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// bool reports whether a file was found; without one the defaults (plus
// environment overrides) are used as-is.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("chine.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureStateDir creates the directory that holds seen.json and the
// instance lock file.
func (c *Config) EnsureStateDir() error {
	if err := os.MkdirAll(c.Watch.StateDir, 0o755); err != nil {
		return fmt.Errorf("create state directory %q: %w", c.Watch.StateDir, err)
	}
	return nil
}

// SeenPath returns the location of the persisted seen-set file.
func (c *Config) SeenPath() string {
	return filepath.Join(c.Watch.StateDir, "seen.json")
}

// LockPath returns the location of the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Watch.StateDir, "chine.lock")
}

// PollInterval returns the configured poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollSeconds) * time.Second
}

// MaxItemAge returns the recency window as a duration.
func (c *Config) MaxItemAge() time.Duration {
	return time.Duration(c.Watch.MaxItemAgeMinutes) * time.Minute
}

// TelegramConfigured reports whether both messaging credentials are set.
func (c *Config) TelegramConfigured() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
