// Package redis caches the bucket navigation list in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

// DefaultNavTTL bounds how long a stale list can survive a missed
// invalidation.
const DefaultNavTTL = 10 * time.Minute

// Store handles the navigation cache entries.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis nav store. A non-positive ttl uses DefaultNavTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultNavTTL
	}
	return &Store{client: client, ttl: ttl}
}

// GetBucketNav returns the cached list. ok is false on a cache miss.
func (s *Store) GetBucketNav(ctx context.Context) (refs []domain.BucketRef, ok bool, err error) {
	data, err := s.client.Get(ctx, BucketNavKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get bucket nav: %w", err)
	}

	refs, err = decodeNav(data)
	if err != nil {
		return nil, false, err
	}
	return refs, true, nil
}

// SaveBucketNav replaces the cached list.
func (s *Store) SaveBucketNav(ctx context.Context, refs []domain.BucketRef) error {
	data, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket nav: %w", err)
	}
	if err := s.client.Set(ctx, BucketNavKey(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save bucket nav: %w", err)
	}
	return nil
}

// InvalidateBucketNav drops the cached list.
func (s *Store) InvalidateBucketNav(ctx context.Context) error {
	if err := s.client.Del(ctx, BucketNavKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate bucket nav: %w", err)
	}
	return nil
}

func decodeNav(data []byte) ([]domain.BucketRef, error) {
	var refs []domain.BucketRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bucket nav: %w", err)
	}
	if refs == nil {
		refs = []domain.BucketRef{}
	}
	return refs, nil
}
