package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"console/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

type configOutput struct {
	ConfigPath      string                   `json:"config_path" toml:"config_path"`
	CredentialsPath string                   `json:"credentials_path" toml:"credentials_path"`
	API             effectiveAPIConfig       `json:"api" toml:"api"`
	Logging         effectiveLoggingConfig   `json:"logging" toml:"logging"`
	Sync            effectiveSyncConfig      `json:"sync" toml:"sync"`
	Assistant       effectiveAssistantConfig `json:"assistant" toml:"assistant"`
}

type effectiveAPIConfig struct {
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveSyncConfig struct {
	DataInterval     string `json:"data_interval" toml:"data_interval"`
	IdentityInterval string `json:"identity_interval" toml:"identity_interval"`
}

type effectiveAssistantConfig struct {
	Model      string `json:"model" toml:"model"`
	Configured bool   `json:"configured" toml:"configured"`
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*defaults)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(defaults bool) (configOutput, error) {
	configPath, err := config.ConfigPath()
	if err != nil {
		return configOutput{}, err
	}
	credentialsPath, err := config.CredentialsPath()
	if err != nil {
		return configOutput{}, err
	}

	cfg := config.Default()
	if !defaults {
		cfg, err = config.Load()
		if err != nil {
			return configOutput{}, err
		}
	}

	return configOutput{
		ConfigPath:      configPath,
		CredentialsPath: credentialsPath,
		API:             effectiveAPIConfig{BaseURL: cfg.BaseURL()},
		Logging:         effectiveLoggingConfig{Level: cfg.LogLevel()},
		Sync: effectiveSyncConfig{
			DataInterval:     cfg.DataInterval().String(),
			IdentityInterval: cfg.IdentityInterval().String(),
		},
		Assistant: effectiveAssistantConfig{
			Model:      cfg.AssistantModel(),
			Configured: cfg.AssistantAPIKey() != "",
		},
	}, nil
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	}
	return "", fmt.Errorf("unknown format %q (expected json or toml)", raw)
}

func writeConfigOutput(output io.Writer, format string, payload configOutput) error {
	switch format {
	case configFormatTOML:
		encoder := toml.NewEncoder(output)
		return encoder.Encode(payload)
	default:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
}
