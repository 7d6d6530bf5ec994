package pipeline

import (
	"context"
	"log/slog"

	"github.com/receiptbot/bill-splitter/internal/common"
	"github.com/receiptbot/bill-splitter/internal/contextparse"
	"github.com/receiptbot/bill-splitter/internal/entity"
	"github.com/receiptbot/bill-splitter/internal/extract"
	"github.com/receiptbot/bill-splitter/internal/format"
	"github.com/receiptbot/bill-splitter/internal/llm"
	"github.com/receiptbot/bill-splitter/internal/recognition"
	"github.com/receiptbot/bill-splitter/internal/split"
)

// Processor wires extraction, context parsing, calculation, and formatting
// into one stateless pipeline. Each request operates purely on its inputs, so
// concurrent invocations need no coordination.
type Processor struct {
	extractor *extract.Orchestrator
	parser    *contextparse.Parser
	logger    *slog.Logger
}

func NewProcessor(recognizer recognition.Recognizer, completer llm.Completer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor: extract.NewOrchestrator(recognizer, completer, logger),
		parser:    contextparse.NewParser(completer, logger),
		logger:    logger,
	}
}

// ExtractReceipt turns receipt image bytes into validated structured data.
func (p *Processor) ExtractReceipt(ctx context.Context, image []byte) (*entity.ReceiptData, error) {
	return p.extractor.Extract(ctx, image)
}

// ParseContext maps free-text payment context onto the canonical items.
func (p *Processor) ParseContext(ctx context.Context, contextText string, items []entity.ReceiptItem) (*contextparse.Reconciled, error) {
	return p.parser.Parse(ctx, contextText, items)
}

// CalculateSplit computes the per-person amounts. Pure; no external calls.
func (p *Processor) CalculateSplit(
	assignments []entity.Assignment,
	sharedItems []entity.ReceiptItem,
	participants []string,
	totalAmount, serviceCharge, taxAmount float64,
) ([]entity.BillSplitResult, error) {
	return split.Calculate(assignments, sharedItems, participants, totalAmount, serviceCharge, taxAmount, p.logger)
}

// FormatResult renders the split into the final escaped message.
func (p *Processor) FormatResult(results []entity.BillSplitResult, totalAmount, serviceCharge, taxAmount float64) string {
	return format.FormatSplitResults(results, totalAmount, serviceCharge, taxAmount)
}

// Run executes the full pipeline: image + context text in, formatted split
// message out. Each stage short-circuits with its typed failure.
func (p *Processor) Run(ctx context.Context, image []byte, contextText string) (string, error) {
	data, err := p.ExtractReceipt(ctx, image)
	if err != nil {
		p.logger.Error("pipeline.extract.failed", "error", err)
		return "", err
	}
	if len(data.Items) == 0 {
		p.logger.Error("pipeline.extract.no_items", "merchant", data.Merchant)
		return "", common.NewExtractionError("receipt contained no line items to split", nil, nil)
	}
	p.logger.Info("pipeline.extract.ok", "items", len(data.Items), "total_amount", data.TotalAmount)

	rec, err := p.ParseContext(ctx, contextText, data.Items)
	if err != nil {
		p.logger.Error("pipeline.parse.failed", "error", err)
		return "", err
	}
	p.logger.Info("pipeline.parse.ok",
		"assignments", len(rec.Assignments),
		"shared", len(rec.SharedItems),
		"participants", len(rec.Participants),
	)

	results, err := p.CalculateSplit(rec.Assignments, rec.SharedItems, rec.Participants,
		data.TotalAmount, data.ServiceCharge, data.TaxAmount)
	if err != nil {
		p.logger.Error("pipeline.calculate.failed", "error", err)
		return "", err
	}
	p.logger.Info("pipeline.calculate.ok", "results", len(results))

	return p.FormatResult(results, data.TotalAmount, data.ServiceCharge, data.TaxAmount), nil
}
