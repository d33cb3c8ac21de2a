// Package cache provides a Redis-backed cache for serialized watchlist
// responses. Entries are keyed by the verified user id so that every write
// to a user's list can invalidate exactly that user's entry. The cache is
// strictly optional: with a nil client every method is a no-op and list
// requests fall through to the database.
package cache

import (
    "context"
    "fmt"

    "github.com/redis/go-redis/v9"

    "github.com/VarunKarthikB-18/movie-watchlist/internal/config"
)

// Watchlist caches the JSON payload of GET /movies per user.
type Watchlist struct {
    rdb *redis.Client
    cfg config.CacheConfig
}

// NewWatchlist builds a Watchlist cache. It returns nil when caching is
// disabled or no Redis client is available; a nil *Watchlist is safe to use.
func NewWatchlist(rdb *redis.Client, cfg config.CacheConfig) *Watchlist {
    if !cfg.Enabled || rdb == nil {
        return nil
    }
    return &Watchlist{rdb: rdb, cfg: cfg}
}

func (w *Watchlist) key(ownerID uint64) string {
    return fmt.Sprintf("%s:movies:%d", w.cfg.Prefix, ownerID)
}

// Get returns the cached payload for ownerID, if any. Redis errors count
// as a miss; the caller falls back to the database.
func (w *Watchlist) Get(ctx context.Context, ownerID uint64) ([]byte, bool) {
    if w == nil {
        return nil, false
    }
    bs, err := w.rdb.Get(ctx, w.key(ownerID)).Bytes()
    if err != nil || len(bs) == 0 {
        return nil, false
    }
    return bs, true
}

// Set stores the payload for ownerID under the configured TTL. Failures are
// ignored; the cache never affects request outcomes.
func (w *Watchlist) Set(ctx context.Context, ownerID uint64, payload []byte) {
    if w == nil {
        return
    }
    _ = w.rdb.Set(ctx, w.key(ownerID), payload, w.cfg.TTL).Err()
}

// Invalidate drops the cached payload for ownerID. Called after every
// successful create, update or delete on that user's list.
func (w *Watchlist) Invalidate(ctx context.Context, ownerID uint64) {
    if w == nil {
        return
    }
    _ = w.rdb.Del(ctx, w.key(ownerID)).Err()
}
