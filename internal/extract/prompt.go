package extract

import "strings"

// BuildStructuringPrompt embeds the raw recognized text and the target schema
// into the instruction that turns OCR output into structured receipt data.
func BuildStructuringPrompt(ocrText, schemaJSON string) string {
	var b strings.Builder
	b.WriteString("The following is the raw OCR text from a receipt image:\n")
	b.WriteString("--- OCR TEXT START ---\n")
	b.WriteString(ocrText)
	b.WriteString("\n--- OCR TEXT END ---\n\n")
	b.WriteString("Extract structured data from the above OCR text. Provide the response as a JSON object matching the following JSON Schema:\n")
	b.WriteString(schemaJSON)
	b.WriteString("\n\nKey Extraction Points:\n")
	b.WriteString("- 'items': Ensure this list includes name, quantity, unitPrice, and totalPrice for each line item. Calculate totalPrice (quantity * unitPrice) if not explicitly present per item.\n")
	b.WriteString("- 'totalAmount': This MUST be the final, total amount paid as shown on the receipt.\n")
	b.WriteString("- 'serviceCharge': If a separate line item for service charge exists, extract its value here. If not present, omit this field.\n")
	b.WriteString("- 'taxAmount': If a separate line item for tax (like GST, VAT, Sales Tax) exists, extract its value here. Sum multiple taxes if necessary into this single field. If no explicit tax line item is present, omit this field. It's important to distinguish tax from service charge.\n")
	b.WriteString("- Identify 'merchant' name and 'date' if available.\n")
	b.WriteString("Never output null. If a field is not present, omit it.\n")
	b.WriteString("Respond ONLY with the JSON object, no explanation.")
	return b.String()
}
