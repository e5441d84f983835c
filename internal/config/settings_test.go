package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8000" {
		t.Fatalf("unexpected base URL: %q", cfg.BaseURL())
	}
	if cfg.DataInterval() != 60*time.Second {
		t.Fatalf("unexpected data interval: %v", cfg.DataInterval())
	}
	if cfg.IdentityInterval() != 300*time.Second {
		t.Fatalf("unexpected identity interval: %v", cfg.IdentityInterval())
	}
	if cfg.AssistantModel() != "gemini-2.5-flash" {
		t.Fatalf("unexpected assistant model: %q", cfg.AssistantModel())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://console.example.com/"

[logging]
level = "debug"

[sync]
data_interval_seconds = 120
identity_interval_seconds = 600

[assistant]
model = "gemini-2.5-pro"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != "https://console.example.com" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.BaseURL())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
	if cfg.DataInterval() != 2*time.Minute {
		t.Fatalf("unexpected data interval: %v", cfg.DataInterval())
	}
	if cfg.IdentityInterval() != 10*time.Minute {
		t.Fatalf("unexpected identity interval: %v", cfg.IdentityInterval())
	}
	if cfg.AssistantModel() != "gemini-2.5-pro" {
		t.Fatalf("unexpected assistant model: %q", cfg.AssistantModel())
	}
}

func TestAssistantAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	cfg := Default()
	if cfg.AssistantAPIKey() != "env-key" {
		t.Fatalf("expected env fallback, got %q", cfg.AssistantAPIKey())
	}
	cfg.Assistant.APIKey = "file-key"
	if cfg.AssistantAPIKey() != "file-key" {
		t.Fatalf("config key should win over env, got %q", cfg.AssistantAPIKey())
	}
}
