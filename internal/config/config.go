// Package config loads application configuration from TOML files and
// PRESUPUESTO_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`

	OpenAI struct {
		APIKey      string `koanf:"api_key"`
		AssistantID string `koanf:"assistant_id"`
		Model       string `koanf:"model"`
	} `koanf:"openai"`

	Assistant struct {
		PollInterval time.Duration `koanf:"poll_interval"`
		PollAttempts int           `koanf:"poll_attempts"`
	} `koanf:"assistant"`

	Printer struct {
		URL string `koanf:"url"`
	} `koanf:"printer"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"server.port":             8080,
		"openai.model":            "gpt-4o-mini-2024-07-18",
		"assistant.poll_interval": "1s",
		"assistant.poll_attempts": 60,
		"printer.url":             "http://localhost:3005/render",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./presupuestosam.toml", "$HOME/.presupuestosam.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix PRESUPUESTO_
	k.Load(env.Provider("PRESUPUESTO_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PRESUPUESTO_")), "_", ".", 1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# Presupuesto by Sam Configuration

[server]
port = 8080

[openai]
api_key = "your-openai-api-key"
assistant_id = "your-assistant-id"
model = "gpt-4o-mini-2024-07-18"

[assistant]
poll_interval = "1s"
poll_attempts = 60

[printer]
url = "http://localhost:3005/render"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("openai api_key is required")
	}

	if config.OpenAI.AssistantID == "" {
		return fmt.Errorf("openai assistant_id is required")
	}

	if config.Assistant.PollInterval <= 0 {
		return fmt.Errorf("assistant poll_interval must be positive")
	}

	if config.Assistant.PollAttempts <= 0 {
		return fmt.Errorf("assistant poll_attempts must be positive")
	}

	if config.Printer.URL == "" {
		return fmt.Errorf("printer url is required")
	}

	return nil
}
