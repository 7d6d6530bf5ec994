package common

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline stage produced a failure, so the calling
// layer can show a precise, user-actionable message.
type Stage string

const (
	StageExtraction     Stage = "extraction"
	StageContextParsing Stage = "context_parsing"
	StageCalculation    Stage = "calculation"
)

// PipelineError is a typed failure value returned by a pipeline stage. Raw
// holds the offending provider payload, when there is one, for diagnostics.
type PipelineError struct {
	Stage   Stage
	Message string
	Raw     []byte
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func NewExtractionError(message string, raw []byte, cause error) *PipelineError {
	return &PipelineError{Stage: StageExtraction, Message: message, Raw: raw, Cause: cause}
}

func NewParsingError(message string, raw []byte, cause error) *PipelineError {
	return &PipelineError{Stage: StageContextParsing, Message: message, Raw: raw, Cause: cause}
}

func NewCalculationError(message string) *PipelineError {
	return &PipelineError{Stage: StageCalculation, Message: message}
}

// IsStage reports whether err is a PipelineError from the given stage.
func IsStage(err error, stage Stage) bool {
	var pe *PipelineError
	return errors.As(err, &pe) && pe.Stage == stage
}
