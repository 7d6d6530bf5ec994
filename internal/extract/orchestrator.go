package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/entity"
	"github.com/receiptbot/bill-splitter/internal/llm"
	"github.com/receiptbot/bill-splitter/internal/recognition"
)

// Orchestrator composes the recognition provider and the structuring model
// into a single image -> ReceiptData call. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	recognizer recognition.Recognizer
	completer  llm.Completer
	logger     *slog.Logger
}

func NewOrchestrator(recognizer recognition.Recognizer, completer llm.Completer, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{recognizer: recognizer, completer: completer, logger: logger}
}

// Extract runs recognition on the image bytes, then the schema-constrained
// structuring pass, and validates the result. All fatal conditions come back
// as extraction-stage PipelineErrors; nothing is raised.
func (o *Orchestrator) Extract(ctx context.Context, image []byte) (*entity.ReceiptData, error) {
	rid := uuid.New().String()
	start := time.Now()

	text, err := o.recognizer.Recognize(ctx, image)
	if err != nil {
		o.logger.Error("extract.recognize.failed", "req_id", rid, "error", err)
		return nil, common.NewExtractionError("recognition failed", nil, err)
	}
	if strings.TrimSpace(text) == "" {
		o.logger.Error("extract.recognize.empty", "req_id", rid)
		return nil, common.NewExtractionError("recognition produced no usable text", nil, nil)
	}
	o.logger.Info("extract.recognize.ok", "req_id", rid, "text_bytes", len(text))

	schema := BuildReceiptJSONSchema()
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, common.NewExtractionError("marshal receipt schema", nil, err)
	}

	resp, err := o.completer.Complete(ctx, BuildStructuringPrompt(text, string(schemaJSON)))
	if err != nil {
		o.logger.Error("extract.structure.failed", "req_id", rid, "error", err)
		return nil, common.NewExtractionError("structuring model call failed", nil, err)
	}

	content := []byte(llm.StripCodeFence(resp))
	if len(content) == 0 {
		return nil, common.NewExtractionError("structuring model returned no response", nil, nil)
	}

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		o.logger.Error("extract.structure.schema_validation_failed",
			"req_id", rid,
			"error", err,
			"response_bytes", len(content),
		)
		return nil, common.NewExtractionError("structuring response does not match receipt schema", content, err)
	}

	var data entity.ReceiptData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, common.NewExtractionError("unmarshal receipt data", content, err)
	}

	o.logger.Info("extract.structure.ok",
		"req_id", rid,
		"merchant", data.Merchant,
		"items", len(data.Items),
		"total_amount", data.TotalAmount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &data, nil
}
