package recognition

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/receiptbot/bill-splitter/internal/llm"
)

// MistralConfig configures the Mistral OCR client.
type MistralConfig struct {
	APIKey     string
	BaseURL    string // default https://api.mistral.ai
	Model      string // default mistral-ocr-latest
	Timeout    time.Duration
	MaxRetries int
}

// MistralClient implements Recognizer against the Mistral OCR API. The image
// is sent inline as a base64 data URL; the recognized text comes back as
// per-page markdown.
type MistralClient struct {
	cfg    MistralConfig
	http   *http.Client
	logger *slog.Logger
}

func NewMistralClient(cfg MistralConfig, logger *slog.Logger) *MistralClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-ocr-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MistralClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *MistralClient) Recognize(ctx context.Context, image []byte) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	mimeType := http.DetectContentType(image)
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	c.logger.Info("recognition.ocr.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(image),
		"mime_type", mimeType,
	)

	body := map[string]any{
		"model": c.cfg.Model,
		"document": map[string]any{
			"type":      "image_url",
			"image_url": dataURL,
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/ocr"

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.cfg.MaxRetries, c.logger)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}

	var res struct {
		Pages []struct {
			Markdown string `json:"markdown"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		c.logger.Error("recognition.ocr.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if len(res.Pages) == 0 {
		c.logger.Error("recognition.ocr.no_pages", "req_id", rid, "raw_bytes", len(raw))
		return "", fmt.Errorf("ocr returned no pages")
	}

	text := res.Pages[0].Markdown
	c.logger.Info("recognition.ocr.ok",
		"req_id", rid,
		"pages", len(res.Pages),
		"text_bytes", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
