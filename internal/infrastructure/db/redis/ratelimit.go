package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	storeTimeout = 500 * time.Millisecond

	// Window indexes are whole seconds.
	minWindow = time.Second
)

// WindowStore is a fixed-window request counter shared by every API replica.
// It satisfies echo's middleware.RateLimiterStore.
// Key format: ratelimit:<policy>:<client>:<window index>
type WindowStore struct {
	client *redis.Client
	policy string
	limit  int64
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

// NewWindowStore allows at most limit requests per client in each window.
// Windows shorter than a second are raised to one second.
func NewWindowStore(client *redis.Client, policy string, limit int, window time.Duration, log zerolog.Logger) *WindowStore {
	if window < minWindow {
		window = minWindow
	}
	return &WindowStore{
		client: client,
		policy: policy,
		limit:  int64(limit),
		window: window,
		log:    log,
		now:    time.Now,
	}
}

// Allow counts the request and reports whether it is within the limit.
// Redis failures let the request through.
func (s *WindowStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	key := s.key(identifier, s.now())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("policy", s.policy).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

func (s *WindowStore) key(identifier string, at time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", s.policy, identifier, at.Unix()/int64(s.window/time.Second))
}
