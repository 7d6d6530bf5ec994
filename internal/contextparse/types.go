package contextparse

import "github.com/receiptbot/bill-splitter/internal/entity"

// ContextParsingResult is the model's tentative mapping before
// reconciliation. Item names here are free text from the model and are not
// yet validated against the receipt.
type ContextParsingResult struct {
	Assignments  map[string][]string `json:"assignments"`
	SharedItems  []string            `json:"shared_items"`
	Participants []string            `json:"participants"`
}

// Reconciled is the validated mapping back onto canonical items: every item
// appears in at most one of {an assignment, the shared list}. Unprocessed is
// non-empty only when leftover items could not be defaulted to shared because
// no participants were identified; the result is then degraded but still
// usable, and the caller decides whether to require acknowledgement.
type Reconciled struct {
	Assignments  []entity.Assignment
	SharedItems  []entity.ReceiptItem
	Participants []string
	Unprocessed  []entity.ReceiptItem
}
