package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/logger"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
)

// SnapshotSaver persists the exported timeline whenever it changed since
// the last save.
type SnapshotSaver struct {
	store         *redisstore.Store
	editor        *editor.Editor
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	manualTrigger chan struct{}

	mu        sync.Mutex
	lastSaved uint64
}

// NewSnapshotSaver creates a new snapshot saver. The editor's current
// revision counts as already saved.
func NewSnapshotSaver(
	store *redisstore.Store,
	ed *editor.Editor,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SnapshotSaver {
	return &SnapshotSaver{
		store:         store,
		editor:        ed,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		lastSaved:     ed.Revision(),
	}
}

// Start begins the periodic save loop. Imports replace the whole timeline,
// so they are written right away instead of waiting for the next tick.
func (ss *SnapshotSaver) Start(ctx context.Context) error {
	ticker := time.NewTicker(ss.interval)
	events, cancel := ss.editor.Subscribe(4)
	go func() {
		defer close(ss.doneCh)
		defer ticker.Stop()
		defer cancel()
		for {
			select {
			case ev := <-events:
				if ev.Type != editor.EventImport {
					continue
				}
				if _, err := ss.Save(ctx); err != nil {
					ss.logger.Error("snapshot save after import failed",
						logger.String("op", ev.Op),
						logger.Error(err))
				}
			case <-ticker.C:
				if _, err := ss.Save(ctx); err != nil {
					ss.logger.Error("snapshot save failed",
						logger.Error(err))
				}
			case <-ss.manualTrigger:
				ss.logger.Info("manual snapshot save triggered")
				if _, err := ss.Save(ctx); err != nil {
					ss.logger.Error("snapshot save failed",
						logger.Error(err))
				}
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the loop and writes one last snapshot if anything changed.
func (ss *SnapshotSaver) Stop(ctx context.Context) error {
	close(ss.stopCh)
	<-ss.doneCh

	if _, err := ss.Save(ctx); err != nil {
		return fmt.Errorf("final snapshot save failed: %w", err)
	}
	return nil
}

// Save writes the timeline when its revision moved since the last save. It
// reports whether a write happened.
func (ss *SnapshotSaver) Save(ctx context.Context) (bool, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	rev := ss.editor.Revision()
	if rev == ss.lastSaved {
		ss.logger.Debug("timeline unchanged, skipping snapshot",
			logger.Uint64("revision", rev))
		return false, nil
	}

	data, err := ss.editor.ExportJSON()
	if err != nil {
		return false, err
	}

	if err := ss.store.SaveTimeline(ctx, data, rev, time.Now()); err != nil {
		return false, err
	}

	ss.lastSaved = rev
	ss.logger.Info("timeline snapshot saved",
		logger.Uint64("revision", rev),
		logger.Int("bytes", len(data)))
	return true, nil
}

// LastSaved returns the revision of the last written snapshot.
func (ss *SnapshotSaver) LastSaved() uint64 {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.lastSaved
}
