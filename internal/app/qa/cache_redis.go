package qa

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache shares chunk embeddings between processes, so a restart does
// not re-embed every transcript. Failures degrade to a miss; the engine
// rebuilds from the transcript text.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to the given address. A zero ttl keeps entries
// for 24 hours.
func NewRedisCache(addr string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, transcriptID string, textHash uint64) ([]ChunkEmbedding, bool) {
	raw, err := c.client.Get(ctx, cacheKey(transcriptID, textHash)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("embedding cache read failed", zap.Error(err))
		return nil, false
	}
	var embeddings []ChunkEmbedding
	if err := json.Unmarshal(raw, &embeddings); err != nil {
		c.logger.Warn("embedding cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, cacheKey(transcriptID, textHash))
		return nil, false
	}
	return embeddings, true
}

func (c *RedisCache) Put(ctx context.Context, transcriptID string, textHash uint64, embeddings []ChunkEmbedding) {
	raw, err := json.Marshal(embeddings)
	if err != nil {
		c.logger.Warn("embedding cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(transcriptID, textHash), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("embedding cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, transcriptID string) {
	pattern := "healthvoice:embeddings:" + transcriptID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("embedding cache invalidation failed", zap.Error(err))
	}
}
