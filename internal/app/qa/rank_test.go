package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "mismatched lengths", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRankChunks_Descending(t *testing.T) {
	question := []float32{1, 0}
	embeddings := []ChunkEmbedding{
		{Chunk: Chunk{Index: 0, Text: "far"}, Embedding: []float32{0, 1}},
		{Chunk: Chunk{Index: 1, Text: "close"}, Embedding: []float32{1, 0.1}},
		{Chunk: Chunk{Index: 2, Text: "middling"}, Embedding: []float32{1, 1}},
	}

	ranked := rankChunks(question, embeddings)

	require.Len(t, ranked, 3)
	assert.Equal(t, "close", ranked[0].Chunk.Text)
	assert.Equal(t, "middling", ranked[1].Chunk.Text)
	assert.Equal(t, "far", ranked[2].Chunk.Text)
}

func TestRankChunks_StableForTies(t *testing.T) {
	question := []float32{1, 0}
	embeddings := []ChunkEmbedding{
		{Chunk: Chunk{Index: 0, Text: "first"}, Embedding: []float32{1, 0}},
		{Chunk: Chunk{Index: 1, Text: "second"}, Embedding: []float32{1, 0}},
		{Chunk: Chunk{Index: 2, Text: "third"}, Embedding: []float32{1, 0}},
	}

	ranked := rankChunks(question, embeddings)

	assert.Equal(t, "first", ranked[0].Chunk.Text)
	assert.Equal(t, "second", ranked[1].Chunk.Text)
	assert.Equal(t, "third", ranked[2].Chunk.Text)
}

func TestSelectContext_TranscriptOrder(t *testing.T) {
	ranked := []scoredChunk{
		{ChunkEmbedding: ChunkEmbedding{Chunk: Chunk{Index: 5, Text: "late"}}, Score: 0.9},
		{ChunkEmbedding: ChunkEmbedding{Chunk: Chunk{Index: 1, Text: "early"}}, Score: 0.8},
		{ChunkEmbedding: ChunkEmbedding{Chunk: Chunk{Index: 3, Text: "middle"}}, Score: 0.7},
	}

	selected := selectContext(ranked, 2)

	// Top two by score, reordered by transcript position.
	require.Len(t, selected, 2)
	assert.Equal(t, 1, selected[0].Index)
	assert.Equal(t, 5, selected[1].Index)
}

func TestSelectContext_KLargerThanRanked(t *testing.T) {
	ranked := []scoredChunk{
		{ChunkEmbedding: ChunkEmbedding{Chunk: Chunk{Index: 0, Text: "only"}}, Score: 0.5},
	}

	selected := selectContext(ranked, 10)
	assert.Len(t, selected, 1)
}

func TestBuildPrompt_ContainsExcerptsAndQuestion(t *testing.T) {
	prompt := buildPrompt([]Chunk{
		{Index: 0, Text: "excerpt one"},
		{Index: 1, Text: "excerpt two"},
	}, "What happened?")

	assert.Contains(t, prompt, promptPreamble)
	assert.Contains(t, prompt, "excerpt one")
	assert.Contains(t, prompt, "excerpt two")
	assert.Contains(t, prompt, chunkSeparator)
	assert.Contains(t, prompt, "Question: What happened?")
}

func TestJoinChunks_Truncates(t *testing.T) {
	joined := joinChunks([]Chunk{{Index: 0, Text: "abcdefghij"}}, 5)
	assert.Equal(t, "abcde...", joined)
}
