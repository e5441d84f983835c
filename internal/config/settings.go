package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL          = "http://localhost:8000"
	defaultDataInterval     = 60 * time.Second
	defaultIdentityInterval = 300 * time.Second
	defaultAssistantModel   = "gemini-2.5-flash"
)

type Config struct {
	API       APIConfig       `toml:"api"`
	Logging   LoggingConfig   `toml:"logging"`
	Sync      SyncConfig      `toml:"sync"`
	Assistant AssistantConfig `toml:"assistant"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type SyncConfig struct {
	DataIntervalSeconds     int `toml:"data_interval_seconds"`
	IdentityIntervalSeconds int `toml:"identity_interval_seconds"`
}

type AssistantConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

func Default() Config {
	return Config{
		API:     APIConfig{BaseURL: defaultBaseURL},
		Logging: LoggingConfig{Level: "info"},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) BaseURL() string {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// DataInterval is the cadence of background collection refreshes. It is
// deliberately coarse: the backend rate-limits aggressively and the mirrors
// reconcile on every mutation anyway.
func (c Config) DataInterval() time.Duration {
	if c.Sync.DataIntervalSeconds > 0 {
		return time.Duration(c.Sync.DataIntervalSeconds) * time.Second
	}
	return defaultDataInterval
}

// IdentityInterval is the cadence of background identity refreshes, staggered
// well apart from data refreshes because /api/auth/me is the most
// rate-limit-sensitive endpoint.
func (c Config) IdentityInterval() time.Duration {
	if c.Sync.IdentityIntervalSeconds > 0 {
		return time.Duration(c.Sync.IdentityIntervalSeconds) * time.Second
	}
	return defaultIdentityInterval
}

// AssistantAPIKey resolves the key from config, falling back to the
// GEMINI_API_KEY environment variable.
func (c Config) AssistantAPIKey() string {
	key := strings.TrimSpace(c.Assistant.APIKey)
	if key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

func (c Config) AssistantModel() string {
	model := strings.TrimSpace(c.Assistant.Model)
	if model == "" {
		return defaultAssistantModel
	}
	return model
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
