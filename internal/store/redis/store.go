// Package redis persists the single timeline snapshot and the asset
// registry.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for assets and the timeline snapshot
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping reports whether Redis answers
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
