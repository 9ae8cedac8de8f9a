package testutil

import (
	"context"
	"sync"
)

// MockEmbedder is a deterministic embed.Embedder test double. Vectors can
// be scripted per text; anything unscripted gets a stable vector derived
// from its bytes so repeated calls always agree.
type MockEmbedder struct {
	mu sync.Mutex

	Vectors  map[string][]float32
	ErrorMap map[string]error

	CallCount int
}

// NewMockEmbedder creates an empty MockEmbedder.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Vectors:  make(map[string][]float32),
		ErrorMap: make(map[string]error),
	}
}

// Embed implements the embed.Embedder interface.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if err, ok := m.ErrorMap[text]; ok {
		return nil, err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return derivedVector(text), nil
}

// SetVector scripts the vector returned for one exact text.
func (m *MockEmbedder) SetVector(text string, v []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Vectors[text] = v
}

// FailOn scripts an error for one exact text.
func (m *MockEmbedder) FailOn(text string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[text] = err
}

// derivedVector maps text bytes onto a small fixed-length vector.
func derivedVector(text string) []float32 {
	v := make([]float32, 8)
	for i, b := range []byte(text) {
		v[i%8] += float32(b) / 255
	}
	return v
}
