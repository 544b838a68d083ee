package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedEmbedder wraps an Embedder with a Redis vector cache keyed by
// text hash. The cache is best-effort: any Redis failure falls
// through to the inner embedder and is logged at debug level.
type CachedEmbedder struct {
	inner  Embedder
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedEmbedder(inner Embedder, client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	key := cacheKey(text)

	if vector, ok := c.get(ctx, key); ok {
		return vector, nil
	}

	vector, err := c.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	c.put(ctx, key, vector)
	return vector, nil
}

func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if vector, ok := c.get(ctx, cacheKey(text)); ok {
			vectors[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EmbedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, i := range missingIdx {
		vectors[i] = fresh[j]
		c.put(ctx, cacheKey(texts[i]), fresh[j])
	}

	c.logger.Debug().
		Int("total", len(texts)).
		Int("misses", len(missing)).
		Msg("embedding batch served")

	return vectors, nil
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float64, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug().Err(err).Msg("embedding cache read failed")
		}
		return nil, false
	}

	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		c.logger.Debug().Err(err).Msg("embedding cache entry corrupt")
		return nil, false
	}
	return vector, true
}

func (c *CachedEmbedder) put(ctx context.Context, key string, vector []float64) {
	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Msg("embedding cache write failed")
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "patentscout:emb:" + hex.EncodeToString(sum[:])
}
