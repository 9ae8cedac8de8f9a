package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrContextOverflow indicates the prompt exceeded the model's context
// window. The QA engine reacts by shrinking the retrieved context and
// retrying; every other generation failure is terminal for the question.
var ErrContextOverflow = errors.New("prompt exceeds model context window")

// Generator produces an answer for a fully assembled prompt, bounded by a
// maximum number of answer tokens.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GenerationError reports a language model failure that is not a context
// overflow.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
