package recognition

import "context"

// Recognizer turns a receipt photograph into raw recognized text. It is the
// only contract the extraction pipeline needs from an OCR backend.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
