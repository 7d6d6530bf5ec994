package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/receiptbot/bill-splitter/internal/entity"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Ann\-Marie\!`, EscapeMarkdown("Ann-Marie!"))
	assert.Equal(t, `a\.b\*c\_d`, EscapeMarkdown("a.b*c_d"))
	assert.Equal(t, "plain", EscapeMarkdown("plain"))
}

func TestFormatSplitResults(t *testing.T) {
	results := []entity.BillSplitResult{
		{Person: "Alice", Owes: 13.64},
		{Person: "Bob", Owes: 11.36},
	}

	msg := FormatSplitResults(results, 25.00, 1.00, 2.00)
	assert.Contains(t, msg, "*Alice owes: $13.64*")
	assert.Contains(t, msg, "*Bob owes: $11.36*")
	assert.Contains(t, msg, "Total Amount Paid:* $25.00")
	assert.Contains(t, msg, "Service Charge: $1.00")
	assert.Contains(t, msg, "Tax \\(GST/VAT etc\\.\\): $2.00")
	assert.Contains(t, msg, "Calculated Split Sum: $25.00")
	assert.NotContains(t, msg, "Warning")
}

func TestFormatSplitResultsOmitsAbsentCharges(t *testing.T) {
	results := []entity.BillSplitResult{{Person: "Alice", Owes: 10.00}}
	msg := FormatSplitResults(results, 10.00, 0, 0)
	assert.NotContains(t, msg, "Service Charge")
	assert.NotContains(t, msg, "Tax")
}

func TestFormatSplitResultsWarnsOnDeviation(t *testing.T) {
	results := []entity.BillSplitResult{{Person: "Alice", Owes: 10.00}}
	msg := FormatSplitResults(results, 50.00, 0, 0)
	assert.Contains(t, msg, "*Warning:*")
	assert.Contains(t, msg, "$50.00")
}

func TestFormatSplitResultsEscapesNames(t *testing.T) {
	results := []entity.BillSplitResult{{Person: "J.R. [the boss]", Owes: 5.00}}
	msg := FormatSplitResults(results, 5.00, 0, 0)
	assert.Contains(t, msg, `J\.R\. \[the boss\] owes`)
}

func TestFormatSplitResultsIdempotent(t *testing.T) {
	results := []entity.BillSplitResult{
		{Person: "Alice", Owes: 13.64},
		{Person: "Bob", Owes: 11.36},
	}
	first := FormatSplitResults(results, 25.00, 1.00, 2.00)
	second := FormatSplitResults(results, 25.00, 1.00, 2.00)
	assert.Equal(t, first, second)
}

func TestFormatSplitResultsEmpty(t *testing.T) {
	msg := FormatSplitResults(nil, 25.00, 0, 0)
	assert.True(t, strings.HasPrefix(msg, "Could not calculate the split"))
}
