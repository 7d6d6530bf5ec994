package llm

import "strings"

// StripCodeFence removes an enclosing markdown code fence (```json ... ``` or
// ``` ... ```) from a model response, if present. Models routinely wrap JSON
// output this way despite being told not to.
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
