package contextparse

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/entity"
	"github.com/receiptbot/bill-splitter/internal/llm"
)

// Parser maps free-text payment context onto canonical receipt items: a
// language-model pass proposes the mapping by item name, and a deterministic
// reconciliation pass resolves those names back to the canonical items.
type Parser struct {
	completer llm.Completer
	logger    *slog.Logger
}

func NewParser(completer llm.Completer, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{completer: completer, logger: logger}
}

// Parse asks the model for a tentative assignment mapping and reconciles it
// against items. Unrecoverable parsing and schema errors come back as
// context-parsing PipelineErrors; unmatched names, duplicate claims, and
// leftover items only degrade the result.
func (p *Parser) Parse(ctx context.Context, contextText string, items []entity.ReceiptItem) (*Reconciled, error) {
	rid := uuid.New().String()
	start := time.Now()

	schema := BuildContextJSONSchema()
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, common.NewParsingError("marshal context schema", nil, err)
	}

	resp, err := p.completer.Complete(ctx, BuildContextPrompt(contextText, items, string(schemaJSON)))
	if err != nil {
		p.logger.Error("contextparse.complete.failed", "req_id", rid, "error", err)
		return nil, common.NewParsingError("completion provider failed", nil, err)
	}

	content := []byte(llm.StripCodeFence(resp))
	if len(content) == 0 {
		return nil, common.NewParsingError("completion provider returned no response", nil, nil)
	}

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		p.logger.Error("contextparse.schema_validation_failed",
			"req_id", rid,
			"error", err,
			"response_bytes", len(content),
		)
		return nil, common.NewParsingError("context response does not match schema", content, err)
	}

	var result ContextParsingResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, common.NewParsingError("unmarshal context response", content, err)
	}

	order, err := assignmentOrder(content)
	if err != nil {
		return nil, common.NewParsingError("recover assignment order", content, err)
	}

	rec := reconcile(result, order, items, p.logger)
	p.logger.Info("contextparse.ok",
		"req_id", rid,
		"assignments", len(rec.Assignments),
		"shared", len(rec.SharedItems),
		"participants", len(rec.Participants),
		"unprocessed", len(rec.Unprocessed),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}
