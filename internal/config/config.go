// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Board    BoardConfig    `toml:"board"`
	Services ServicesConfig `toml:"services"`
	Assist   AssistConfig   `toml:"assist"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// BoardConfig holds the command center board window settings.
type BoardConfig struct {
	StartHour        int `toml:"start_hour"`         // first visible hour, e.g. 7
	EndHour          int `toml:"end_hour"`           // last visible hour (exclusive), e.g. 20
	SnapMinutes      int `toml:"snap_minutes"`       // drag snap granularity
	GuideColumnWidth int `toml:"guide_column_width"` // guide-name column width in pixels
}

// ServicesConfig holds the CRM backend endpoints.
type ServicesConfig struct {
	AssignmentURL string `toml:"assignment_url"`
	TimelineURL   string `toml:"timeline_url"`
	APIToken      string `toml:"api_token"`
}

// AssistConfig holds the assignment-suggestion provider settings.
type AssistConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama"
	Model    string `toml:"model"`    // e.g. "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g. "http://localhost:11434"
}

// StorageConfig holds the adjust-session journal settings.
type StorageConfig struct {
	JournalPath string `toml:"journal_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			StartHour:        7,
			EndHour:          20,
			SnapMinutes:      15,
			GuideColumnWidth: 200,
		},
		Services: ServicesConfig{
			AssignmentURL: "http://localhost:3000",
			TimelineURL:   "http://localhost:3000",
		},
		Assist: AssistConfig{
			Provider: "openai",
			Model:    "gpt-4o",
		},
		Storage: StorageConfig{
			JournalPath: defaultJournalPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultJournalPath returns the default session-journal path.
func defaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tourcrm.db"
	}
	return filepath.Join(home, ".local", "share", "tourcrm", "tourcrm.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tourcrm", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.JournalPath = expandPath(cfg.Storage.JournalPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOURCRM_ASSIGNMENT_URL"); v != "" {
		cfg.Services.AssignmentURL = v
	}
	if v := os.Getenv("TOURCRM_TIMELINE_URL"); v != "" {
		cfg.Services.TimelineURL = v
	}
	if v := os.Getenv("TOURCRM_API_TOKEN"); v != "" {
		cfg.Services.APIToken = v
	}

	if v := os.Getenv("TOURCRM_ASSIST_PROVIDER"); v != "" {
		cfg.Assist.Provider = v
	}
	if v := os.Getenv("TOURCRM_ASSIST_MODEL"); v != "" {
		cfg.Assist.Model = v
	}
	if v := os.Getenv("TOURCRM_ASSIST_BASE_URL"); v != "" {
		cfg.Assist.BaseURL = v
	}

	if v := os.Getenv("TOURCRM_JOURNAL_PATH"); v != "" {
		cfg.Storage.JournalPath = v
	}

	if v := os.Getenv("TOURCRM_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Board.StartHour < 0 || c.Board.StartHour > 23 {
		return errors.New("start_hour must be between 0 and 23")
	}
	if c.Board.EndHour < 1 || c.Board.EndHour > 24 {
		return errors.New("end_hour must be between 1 and 24")
	}
	if c.Board.StartHour >= c.Board.EndHour {
		return errors.New("start_hour must be before end_hour")
	}
	if c.Board.SnapMinutes <= 0 || c.Board.SnapMinutes > 60 {
		return errors.New("snap_minutes must be between 1 and 60")
	}
	if c.Board.GuideColumnWidth <= 0 {
		return errors.New("guide_column_width must be positive")
	}
	if c.Services.AssignmentURL == "" {
		return errors.New("assignment_url must be set")
	}
	if c.Services.TimelineURL == "" {
		return errors.New("timeline_url must be set")
	}
	if c.Storage.JournalPath == "" {
		return errors.New("journal_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
