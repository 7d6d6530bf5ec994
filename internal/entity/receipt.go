package entity

// ReceiptItem is one line item from a validated extraction. Name is the
// canonical identifier that all later matching runs against; TotalPrice is
// authoritative for calculations and is not required to equal
// Quantity*UnitPrice, since it comes from possibly inconsistent source data.
type ReceiptItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// ReceiptData is the structured result of receipt extraction. TotalAmount is
// the final amount paid as printed on the receipt; it is never derived from
// the item list. ServiceCharge and TaxAmount are optional additive charges
// (zero when absent), each combined from multiple like-kind charges if the
// source had more than one.
type ReceiptData struct {
	Merchant      string        `json:"merchant,omitempty"`
	Date          string        `json:"date,omitempty"`
	TotalAmount   float64       `json:"totalAmount"`
	Items         []ReceiptItem `json:"items"`
	ServiceCharge float64       `json:"serviceCharge,omitempty"`
	TaxAmount     float64       `json:"taxAmount,omitempty"`
}
