package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"jobboard/internal/pkg/logging"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryRevocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{until: map[string]time.Time{}, now: time.Now}
}

func (r *MemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.until[tokenID] = until
	return nil
}

func (r *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.until[tokenID]
	if !ok {
		return false, nil
	}
	if !until.IsZero() && r.now().After(until) {
		delete(r.until, tokenID)
		return false, nil
	}
	return true, nil
}

// RedisRevocations keeps revoked token ids in Redis with a TTL matching the
// token's remaining lifetime. When Redis is unreachable it degrades to the
// in-process list and warns once.
type RedisRevocations struct {
	client   *redis.Client
	fallback *MemoryRevocations
	log      *logging.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisRevocations connects to url. An empty url or a failed ping yields
// a store that only uses the in-process fallback.
func NewRedisRevocations(ctx context.Context, url string, log *logging.Logger) *RedisRevocations {
	r := &RedisRevocations{fallback: NewMemoryRevocations(), log: log}
	if url == "" {
		return r
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		r.warnUnavailableOnce(err)
		return r
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		r.warnUnavailableOnce(err)
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *RedisRevocations) Available() bool {
	return r != nil && r.client != nil
}

func (r *RedisRevocations) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	// Recorded locally as well; a later Redis outage must not resurrect the token.
	_ = r.fallback.Revoke(ctx, tokenID, until)
	if !r.Available() {
		return nil
	}

	ttl := time.Until(until)
	if until.IsZero() {
		ttl = 0
	} else if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if revoked, _ := r.fallback.IsRevoked(ctx, tokenID); revoked {
		return true, nil
	}
	if !r.Available() {
		return false, nil
	}

	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		r.warnUnavailableOnce(err)
		return false, nil
	}
	return n > 0, nil
}

func (r *RedisRevocations) warnUnavailableOnce(err error) {
	if r.log == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis unavailable, using in-process revocation list", "error", err)
	}
}
