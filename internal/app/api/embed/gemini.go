package embed

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var errNoEmbeddingData = errors.New("provider returned no embedding data")

// GeminiEmbedder calls the Gemini embedding API via google.golang.org/genai.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder using GEMINI_API_KEY from the
// environment. An empty model selects text-embedding-004.
func NewGeminiEmbedder(ctx context.Context, model string) (*GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	if model == "" {
		model = "text-embedding-004"
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, &EmbeddingError{Err: errNoEmbeddingData}
	}
	return resp.Embeddings[0].Values, nil
}
