package common

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Recognition RecognitionConfig
	LLM         LLMConfig
}

// RecognitionConfig holds settings for the OCR capability provider.
type RecognitionConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// LLMConfig holds settings for the completion capability provider.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
}

// LoadConfig loads configuration from environment variables. Provider-specific
// keys are resolved from LLM_PROVIDER (openai, deepseek, or gemini).
func LoadConfig() *Config {
	llm := LLMConfig{
		Provider:    getEnv("LLM_PROVIDER", "openai"),
		Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.0),
		Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		MaxRetries:  getEnvAsInt("LLM_MAX_RETRIES", 2),
	}
	switch llm.Provider {
	case "deepseek":
		llm.APIKey = getEnv("DEEPSEEK_API_KEY", "")
		llm.BaseURL = getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1")
		llm.Model = getEnv("DEEPSEEK_MODEL", "deepseek-chat")
	case "gemini":
		llm.APIKey = getEnv("GEMINI_API_KEY", "")
		llm.BaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
		llm.Model = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	default:
		llm.APIKey = getEnv("OPENAI_API_KEY", "")
		llm.BaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
		llm.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")
	}

	return &Config{
		Recognition: RecognitionConfig{
			APIKey:     getEnv("MISTRAL_API_KEY", ""),
			BaseURL:    getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai"),
			Model:      getEnv("MISTRAL_MODEL", "mistral-ocr-latest"),
			Timeout:    getEnvAsDuration("MISTRAL_TIMEOUT", 60*time.Second),
			MaxRetries: getEnvAsInt("MISTRAL_MAX_RETRIES", 2),
		},
		LLM: llm,
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Recognition.APIKey == "" {
		return fmt.Errorf("MISTRAL_API_KEY is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("API key for LLM provider %q is required", c.LLM.Provider)
	}
	switch c.LLM.Provider {
	case "openai", "deepseek", "gemini":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.LLM.Provider)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
