package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/receiptbot/bill-splitter/internal/entity"
	"github.com/receiptbot/bill-splitter/internal/split"
)

const markdownReserved = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes Telegram MarkdownV2 reserved characters in free-text
// fields before insertion into the rendered message.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatSplitResults renders the split into a user-friendly MarkdownV2
// message: one line per person, a receipt summary block, a checksum line, and
// a warning annotation when the checksum deviates from the receipt total
// beyond tolerance. Pure; formatting the same input twice yields identical
// output.
func FormatSplitResults(results []entity.BillSplitResult, receiptTotal, serviceCharge, taxAmount float64) string {
	if len(results) == 0 {
		return "Could not calculate the split. No results generated."
	}

	var lines []string
	checksum := 0.0
	for _, res := range results {
		checksum += res.Owes
		lines = append(lines, fmt.Sprintf("*%s owes: $%.2f*", EscapeMarkdown(res.Person), res.Owes))
	}

	var b strings.Builder
	b.WriteString("📊 *Bill Split Result:*\n\n")
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString("\n\n🧾 *Receipt Summary:*\n")
	b.WriteString(fmt.Sprintf("  \\- *Total Amount Paid:* $%.2f\n", receiptTotal))
	if serviceCharge > 0 {
		b.WriteString(fmt.Sprintf("  \\- Service Charge: $%.2f\n", serviceCharge))
	}
	if taxAmount > 0 {
		b.WriteString(fmt.Sprintf("  \\- Tax \\(GST/VAT etc\\.\\): $%.2f\n", taxAmount))
	}

	b.WriteString(fmt.Sprintf("\n✅ Calculated Split Sum: $%.2f", checksum))
	tolerance := split.TolerancePerPerson * float64(len(results))
	if math.Abs(checksum-receiptTotal) > tolerance {
		b.WriteString(fmt.Sprintf(" \\(*Warning:* does not exactly match receipt total of $%.2f\\)", receiptTotal))
	}

	b.WriteString("\n\n_Please double\\-check the amounts\\. AI extraction and parsing might have inaccuracies\\._")
	return b.String()
}
