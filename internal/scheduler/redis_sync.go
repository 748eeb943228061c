package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/logger"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
)

// RedisSyncer restores the asset registry and the timeline snapshot from
// Redis on startup
type RedisSyncer struct {
	store  *redisstore.Store
	editor *editor.Editor
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	ed *editor.Editor,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		editor: ed,
		logger: log,
	}
}

// Sync loads assets first so restored clips can still be traced back to
// their asset, then the timeline. A corrupt snapshot is logged and
// skipped; the session starts from an empty timeline.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring state from redis")

	assets, err := rs.store.GetAllAssets(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore assets: %w", err)
	}

	added := rs.editor.Registry().AppendMany(assets)
	rs.logger.Info("restored assets from redis",
		logger.Int("count", added))

	data, err := rs.store.LoadTimeline(ctx)
	if errors.Is(err, redisstore.ErrSnapshotNotFound) {
		rs.logger.Info("no timeline snapshot found in redis")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore timeline: %w", err)
	}

	if err := rs.editor.Restore(data); err != nil {
		rs.logger.Warn("ignoring unreadable timeline snapshot",
			logger.Error(err))
		return nil
	}

	s := rs.editor.State()
	rs.logger.Info("restored timeline from redis",
		logger.Int("video_tracks", s.Timeline.TrackCount(domain.KindVideo)),
		logger.Int("audio_tracks", s.Timeline.TrackCount(domain.KindAudio)),
		logger.Int("clips", s.Timeline.ClipCount()))

	return nil
}
