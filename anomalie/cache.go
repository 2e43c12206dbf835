package anomalie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheStats keeps dashboard statistics in Redis for a short TTL. Stale
// reads are acceptable for this surface, so every cache failure degrades to
// a direct query and is only logged.
type CacheStats struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.SugaredLogger
}

func NewCacheStats(rdb *redis.Client, ttl time.Duration, log *zap.SugaredLogger) *CacheStats {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CacheStats{rdb: rdb, ttl: ttl, log: log}
}

func CleStats(employeID string, periode Periode) string {
	if employeID == "" {
		employeID = "tous"
	}
	return fmt.Sprintf("anomalies:stats:%s:%s", employeID, periode.Normaliser())
}

func (c *CacheStats) Lire(ctx context.Context, employeID string, periode Periode) (*ResultatStats, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, CleStats(employeID, periode)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnw("stats cache read failed", "error", err)
		}
		return nil, false
	}

	var res ResultatStats
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Warnw("stats cache entry corrupted", "error", err)
		return nil, false
	}
	return &res, true
}

func (c *CacheStats) Ecrire(ctx context.Context, employeID string, periode Periode, res *ResultatStats) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(res)
	if err != nil {
		c.log.Warnw("stats cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, CleStats(employeID, periode), raw, c.ttl).Err(); err != nil {
		c.log.Warnw("stats cache write failed", "error", err)
	}
}

// Invalider drops cached windows touched by a mutation for the employee and
// for the global dashboard.
func (c *CacheStats) Invalider(ctx context.Context, employeID string) {
	if c == nil || c.rdb == nil {
		return
	}

	cles := make([]string, 0, 6)
	for _, p := range []Periode{PeriodeJour, PeriodeSemaine, PeriodeMois} {
		cles = append(cles, CleStats(employeID, p), CleStats("", p))
	}
	if err := c.rdb.Del(ctx, cles...).Err(); err != nil {
		c.log.Warnw("stats cache invalidation failed", "error", err)
	}
}
