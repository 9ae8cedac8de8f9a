package qa

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// scoredChunk is a chunk with its similarity to the question.
type scoredChunk struct {
	ChunkEmbedding
	Score float64
}

// rankChunks orders chunks by cosine similarity to the question embedding,
// descending. The sort is stable, so chunks with equal scores keep their
// transcript order and the ranking is deterministic for identical inputs.
func rankChunks(questionEmbedding []float32, embeddings []ChunkEmbedding) []scoredChunk {
	scored := lo.Map(embeddings, func(ce ChunkEmbedding, _ int) scoredChunk {
		return scoredChunk{
			ChunkEmbedding: ce,
			Score:          cosineSimilarity(questionEmbedding, ce.Embedding),
		}
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// selectContext picks the top-k ranked chunks and reorders them by their
// position in the transcript, so the assembled context reads as narrative
// rather than in relevance order.
func selectContext(ranked []scoredChunk, k int) []Chunk {
	if k > len(ranked) {
		k = len(ranked)
	}
	top := lo.Map(ranked[:k], func(sc scoredChunk, _ int) Chunk {
		return sc.Chunk
	})
	sort.Slice(top, func(i, j int) bool {
		return top[i].Index < top[j].Index
	})
	return top
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0 so a broken embedding never
// outranks a real one.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
