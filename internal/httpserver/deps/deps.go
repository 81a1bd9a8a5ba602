package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/buckets/internal/domain"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/store"
	"github.com/MrSnakeDoc/buckets/internal/view"
)

// NavCache caches the bucket navigation list. Implemented by the Redis store.
type NavCache interface {
	GetBucketNav(ctx context.Context) ([]domain.BucketRef, bool, error)
	SaveBucketNav(ctx context.Context, refs []domain.BucketRef) error
	InvalidateBucketNav(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the server
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy
	Store        *store.Store     // Bucket/Item persistence
	Renderer     *view.Renderer   // HTML pages
	NavCache     NavCache         // nil when Redis is disabled
	RedisClient  *redis.Client    // nil when Redis is disabled
}

// Now returns the current time from TimeNow, or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
