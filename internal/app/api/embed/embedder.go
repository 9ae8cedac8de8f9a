package embed

import (
	"context"
	"fmt"
)

// Embedder turns a piece of text into a fixed-length vector used for
// semantic similarity between a question and transcript segments.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingError reports an embedding engine failure.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
