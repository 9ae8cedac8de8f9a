package qa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	embeddings := []ChunkEmbedding{
		{Chunk: Chunk{Index: 0, Text: "hello"}, Embedding: []float32{1, 2}},
	}
	hash := HashText("hello transcript")

	_, ok := cache.Get(ctx, "t1", hash)
	assert.False(t, ok)

	cache.Put(ctx, "t1", hash, embeddings)

	got, ok := cache.Get(ctx, "t1", hash)
	require.True(t, ok)
	assert.Equal(t, embeddings, got)
}

func TestMemoryCache_MissOnChangedText(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Put(ctx, "t1", HashText("original text"), []ChunkEmbedding{{Chunk: Chunk{Index: 0, Text: "a"}}})

	// A re-processed transcript has new text and therefore a new hash.
	_, ok := cache.Get(ctx, "t1", HashText("re-transcribed text"))
	assert.False(t, ok)
}

func TestMemoryCache_Invalidate(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	hash := HashText("text")
	cache.Put(ctx, "t1", hash, []ChunkEmbedding{{Chunk: Chunk{Index: 0, Text: "a"}}})
	cache.Invalidate(ctx, "t1")

	_, ok := cache.Get(ctx, "t1", hash)
	assert.False(t, ok)
}

func TestHashText_Distinguishes(t *testing.T) {
	assert.NotEqual(t, HashText("one"), HashText("two"))
	assert.Equal(t, HashText("same"), HashText("same"))
}
