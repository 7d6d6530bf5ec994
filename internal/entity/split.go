package entity

// Assignment pairs a participant with the canonical items they alone pay for.
type Assignment struct {
	Person string
	Items  []ReceiptItem
}

// BillSplitResult is the final amount one person owes. Items are
// human-readable line descriptions for display only; they play no
// computational role.
type BillSplitResult struct {
	Person string
	Owes   float64
	Items  []string
}
