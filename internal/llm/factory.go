package llm

import (
	"fmt"
	"log/slog"

	"github.com/receiptbot/bill-splitter/internal/common"
)

// NewCompleter builds the completion provider named by the config. DeepSeek
// uses the OpenAI-compatible client with its own base URL.
func NewCompleter(cfg common.LLMConfig, logger *slog.Logger) (Completer, error) {
	switch cfg.Provider {
	case "", "openai", "deepseek":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			MaxRetries:  cfg.MaxRetries,
		}, logger), nil
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			MaxRetries:  cfg.MaxRetries,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}
