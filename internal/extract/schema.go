package extract

// BuildReceiptJSONSchema returns the JSON-Schema constraint for structured
// receipt extraction as a generic map. The same map is embedded in the
// structuring prompt and used locally to validate the response. Extra keys
// the model invents are tolerated; the unmarshal into entity.ReceiptData
// ignores them.
func BuildReceiptJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":       map[string]any{"type": "string", "minLength": 1},
			"quantity":   map[string]any{"type": "integer", "minimum": 0},
			"unitPrice":  map[string]any{"type": "number"},
			"totalPrice": map[string]any{"type": "number"},
		},
		"required": []string{"name", "quantity", "unitPrice", "totalPrice"},
	}

	// Optional fields accept null as well as absence; models emit both no
	// matter what the prompt says. Unmarshalling null leaves the zero value.
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"merchant":      map[string]any{"type": []string{"string", "null"}},
			"date":          map[string]any{"type": []string{"string", "null"}},
			"totalAmount":   map[string]any{"type": "number"},
			"items":         map[string]any{"type": "array", "items": item},
			"serviceCharge": map[string]any{"type": []string{"number", "null"}},
			"taxAmount":     map[string]any{"type": []string{"number", "null"}},
		},
		"required": []string{"totalAmount", "items"},
	}
}
