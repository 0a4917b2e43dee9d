// Package config loads and persists the application configuration: a
// JSON file in the data directory with environment-variable overrides
// for API keys.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "config.json"

// LLMProvider selects which generation backend answers questions.
type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderOllama LLMProvider = "ollama"
)

type AppConfig struct {
	LLMProvider         LLMProvider `json:"llm_provider"`
	OpenAIAPIKey        string      `json:"openai_api_key"`
	OpenAIModel         string      `json:"openai_model"`
	OllamaURL           string      `json:"ollama_url"`
	OllamaModel         string      `json:"ollama_model"`
	DeepgramAPIKey      string      `json:"deepgram_api_key"`
	CaptureIntervalSecs int         `json:"capture_interval_secs"`
	WhisperModel        string      `json:"whisper_model"`
	Hotkey              string      `json:"hotkey"`
}

func Default() AppConfig {
	return AppConfig{
		LLMProvider:         ProviderOpenAI,
		OpenAIModel:         "gpt-4o",
		OllamaURL:           "http://localhost:11434",
		OllamaModel:         "llama3",
		CaptureIntervalSecs: 5,
		WhisperModel:        "base",
		Hotkey:              "CmdOrCtrl+Shift+C",
	}
}

// Load reads the config file from dataDir, creating it with defaults
// when missing, and applies environment overrides. A malformed file
// falls back to defaults rather than failing startup.
func Load(dataDir string) AppConfig {
	path := filepath.Join(dataDir, fileName)

	cfg := Default()
	if content, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(content, &cfg); err != nil {
			cfg = Default()
		}
	} else {
		cfg.Save(dataDir)
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Save writes the config as pretty-printed JSON into dataDir.
func (c AppConfig) Save(dataDir string) error {
	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dataDir, fileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Environment variables take precedence over the stored file so keys
// never need to live on disk.
func (c *AppConfig) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAIAPIKey = key
	}
	if key := os.Getenv("DEEPGRAM_API_KEY"); key != "" {
		c.DeepgramAPIKey = key
	}
}
