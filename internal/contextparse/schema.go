package contextparse

// BuildContextJSONSchema returns the JSON-Schema constraint for the
// context-parsing response as a generic map, embedded in the prompt and used
// locally to validate. shared_items may be omitted; assignments and
// participants may be empty but must be present.
func BuildContextJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"assignments": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"shared_items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"participants": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"assignments", "participants"},
	}
}
