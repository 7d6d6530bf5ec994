package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/llm"
	"github.com/receiptbot/bill-splitter/internal/pipeline"
	"github.com/receiptbot/bill-splitter/internal/recognition"
	"github.com/receiptbot/bill-splitter/pkg/logging"
)

func main() {
	logging.Setup()
	logger := slog.Default()

	if len(os.Args) < 3 {
		logger.Error("usage", "cmd", "billsplit <receipt-image> <context text...>")
		os.Exit(2)
	}
	imagePath := os.Args[1]
	contextText := strings.Join(os.Args[2:], " ")

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		logger.Error("read receipt image", "path", imagePath, "error", err)
		os.Exit(2)
	}

	recognizer := recognition.NewMistralClient(recognition.MistralConfig{
		APIKey:     cfg.Recognition.APIKey,
		BaseURL:    cfg.Recognition.BaseURL,
		Model:      cfg.Recognition.Model,
		Timeout:    cfg.Recognition.Timeout,
		MaxRetries: cfg.Recognition.MaxRetries,
	}, logger)

	completer, err := llm.NewCompleter(cfg.LLM, logger)
	if err != nil {
		logger.Error("build completion provider", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	start := time.Now()
	message, err := pipeline.NewProcessor(recognizer, completer, logger).Run(ctx, image, contextText)
	if err != nil {
		logger.Error("bill split failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		os.Exit(1)
	}

	logger.Info("bill split ok", "duration_ms", time.Since(start).Milliseconds())
	fmt.Println(message)
}
