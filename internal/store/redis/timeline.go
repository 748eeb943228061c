package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSnapshotNotFound is returned when no timeline has been saved yet.
var ErrSnapshotNotFound = errors.New("timeline snapshot not found")

// SnapshotMeta describes the last saved snapshot.
type SnapshotMeta struct {
	Revision uint64
	SavedAt  time.Time
	Size     int
}

// SaveTimeline overwrites the single persisted snapshot. document is the
// exported timeline JSON.
func (s *Store) SaveTimeline(ctx context.Context, document []byte, revision uint64, at time.Time) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyTimeline, document, 0)
	pipe.HSet(ctx, KeyTimelineMeta,
		"revision", strconv.FormatUint(revision, 10),
		"saved_at", at.UTC().Format(time.RFC3339Nano),
		"size", strconv.Itoa(len(document)))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save timeline: %w", err)
	}
	return nil
}

// LoadTimeline returns the persisted document, or ErrSnapshotNotFound.
func (s *Store) LoadTimeline(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, KeyTimeline).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return data, nil
}

// TimelineMeta returns bookkeeping about the last save, or
// ErrSnapshotNotFound.
func (s *Store) TimelineMeta(ctx context.Context) (SnapshotMeta, error) {
	fields, err := s.client.HGetAll(ctx, KeyTimelineMeta).Result()
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("failed to load timeline meta: %w", err)
	}
	if len(fields) == 0 {
		return SnapshotMeta{}, ErrSnapshotNotFound
	}

	var meta SnapshotMeta
	meta.Revision, _ = strconv.ParseUint(fields["revision"], 10, 64)
	meta.SavedAt, _ = time.Parse(time.RFC3339Nano, fields["saved_at"])
	meta.Size, _ = strconv.Atoi(fields["size"])
	return meta, nil
}
