package llm

import "context"

// Completer is the single contract the pipeline needs from a language model
// backend: prompt in, raw text response out. The same provider is used for
// both the structuring step and the context-parsing step, with different
// prompts and different target schemas.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
