package contextparse

import (
	"fmt"
	"strings"

	"github.com/receiptbot/bill-splitter/internal/entity"
)

// BuildContextPrompt grounds the model with the canonical item list and asks
// for an assignments/shared/participants mapping using exact item names.
func BuildContextPrompt(contextText string, items []entity.ReceiptItem, schemaJSON string) string {
	var itemLines []string
	for _, it := range items {
		itemLines = append(itemLines, fmt.Sprintf("- '%s' (Price: %.2f)", it.Name, it.TotalPrice))
	}

	var b strings.Builder
	b.WriteString("User context regarding bill splitting:\n")
	b.WriteString("--- USER CONTEXT START ---\n")
	b.WriteString(contextText)
	b.WriteString("\n--- USER CONTEXT END ---\n\n")
	b.WriteString("Receipt items extracted:\n")
	b.WriteString("--- RECEIPT ITEMS START ---\n")
	b.WriteString(strings.Join(itemLines, "\n"))
	b.WriteString("\n--- RECEIPT ITEMS END ---\n\n")
	b.WriteString("Your task is to analyze the user context and determine:\n")
	b.WriteString("1. Which person is associated with which receipt items.\n")
	b.WriteString("2. Which receipt items are shared among all participants.\n")
	b.WriteString("3. A list of all unique participants mentioned or implied.\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString("- Match the item names from the user context to the names in the \"Receipt items extracted\" list as closely as possible. Use the *exact* item names from the receipt list in your output.\n")
	b.WriteString("- If the user context is unclear or ambiguous for an item, assume it is shared amongst all identified participants rather than guessing a person.\n")
	b.WriteString("- If the user mentions people but doesn't assign items to them, still include them in the participants list.\n")
	b.WriteString("- If no specific people are mentioned but shared items exist, the 'participants' list may be empty.\n\n")
	b.WriteString("Output the result as a single JSON object matching this JSON Schema:\n")
	b.WriteString("--- JSON SCHEMA START ---\n")
	b.WriteString(schemaJSON)
	b.WriteString("\n--- JSON SCHEMA END ---\n\n")
	b.WriteString("Ensure the output is ONLY the JSON object, with no explanations before or after it.\n")
	b.WriteString("Use the exact item names from the provided 'Receipt items extracted' list in the 'assignments' and 'shared_items' lists within the JSON.")
	return b.String()
}
