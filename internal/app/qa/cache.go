package qa

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
)

// ChunkEmbedding pairs a transcript chunk with its embedding vector.
type ChunkEmbedding struct {
	Chunk     Chunk     `json:"chunk"`
	Embedding []float32 `json:"embedding"`
}

// EmbeddingCache holds per-transcript chunk embeddings. Entries are keyed
// by transcript id plus a hash of the transcript text, so a re-processed
// transcript with different text misses naturally. The cache is never the
// source of truth: a lost entry is rebuilt from the transcript text.
type EmbeddingCache interface {
	Get(ctx context.Context, transcriptID string, textHash uint64) ([]ChunkEmbedding, bool)
	Put(ctx context.Context, transcriptID string, textHash uint64, embeddings []ChunkEmbedding)
	Invalidate(ctx context.Context, transcriptID string)
}

// HashText produces the cache fingerprint for a transcript text.
func HashText(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

// MemoryCache is the default in-process embedding cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	textHash   uint64
	embeddings []ChunkEmbedding
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, transcriptID string, textHash uint64) ([]ChunkEmbedding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[transcriptID]
	if !ok || e.textHash != textHash {
		return nil, false
	}
	return e.embeddings, true
}

func (c *MemoryCache) Put(ctx context.Context, transcriptID string, textHash uint64, embeddings []ChunkEmbedding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[transcriptID] = memoryEntry{textHash: textHash, embeddings: embeddings}
}

func (c *MemoryCache) Invalidate(ctx context.Context, transcriptID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, transcriptID)
}

func cacheKey(transcriptID string, textHash uint64) string {
	return "healthvoice:embeddings:" + transcriptID + ":" + strconv.FormatUint(textHash, 16)
}
