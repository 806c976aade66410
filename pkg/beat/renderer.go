package beat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// Renderer is the beat rendering collaborator. The returned reference is
// opaque to the core: it is stored on the session and handed to the client,
// never interpreted.
type Renderer interface {
	Render(ctx context.Context, sessionType string, tempo float64, cond PatientCondition, pattern Pattern) (string, error)
}

// CachedRenderer fabricates deterministic beat references and caches them in
// redis. Rendering is deterministic for a given (session type, tempo,
// pattern, condition) tuple, so a cache hit is always valid.
type CachedRenderer struct {
	client  *redis.Client
	baseURL string
	ttl     time.Duration
}

func NewCachedRenderer(client *redis.Client, baseURL string, ttl time.Duration) *CachedRenderer {
	return &CachedRenderer{client: client, baseURL: baseURL, ttl: ttl}
}

func (r *CachedRenderer) Render(ctx context.Context, sessionType string, tempo float64, cond PatientCondition, pattern Pattern) (string, error) {
	key := fmt.Sprintf("beat:%s:%s:%.0f:%s", sessionType, pattern.Name, tempo, conditionDigest(cond))

	if r.client != nil {
		if cached, err := r.client.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	reference := fmt.Sprintf("%s/render/%s/%s/%.0fbpm?c=%s",
		r.baseURL, sessionType, pattern.Name, tempo, conditionDigest(cond))

	if r.client != nil {
		if err := r.client.Set(ctx, key, reference, r.ttl).Err(); err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("failed to cache beat reference")
		}
	}

	return reference, nil
}

func conditionDigest(cond PatientCondition) string {
	data, _ := json.Marshal(cond)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
