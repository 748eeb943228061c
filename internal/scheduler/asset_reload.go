package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/logger"
	"github.com/MrSnakeDoc/splice/internal/sources/manifest"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
)

// AssetReloader handles periodic reloading of the assets manifest
type AssetReloader struct {
	loader        *manifest.Loader
	mapper        *manifest.Mapper
	store         *redisstore.Store
	editor        *editor.Editor
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewAssetReloader creates a new asset reloader
func NewAssetReloader(
	manifestFile string,
	store *redisstore.Store,
	ed *editor.Editor,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *AssetReloader {
	return &AssetReloader{
		loader:        manifest.NewLoader(manifestFile),
		mapper:        manifest.NewMapper(),
		store:         store,
		editor:        ed,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (ar *AssetReloader) Start(ctx context.Context) error {
	// Load immediately on start. The ingestion side may not have written
	// the manifest yet, so a failure here is not fatal.
	if _, err := ar.Reload(ctx); err != nil {
		ar.logger.Warn("initial asset reload failed",
			logger.String("manifest", ar.loader.Path()),
			logger.Error(err))
	}

	// Start periodic reload
	ticker := time.NewTicker(ar.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := ar.Reload(ctx); err != nil {
					ar.logger.Error("failed to reload assets",
						logger.Error(err))
				}
			case <-ar.manualTrigger:
				ar.logger.Info("manual asset reload triggered")
				if _, err := ar.Reload(ctx); err != nil {
					ar.logger.Error("failed to reload assets",
						logger.Error(err))
				}
			case <-ar.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ar *AssetReloader) Stop() {
	close(ar.stopCh)
}

// Reload loads the manifest and registers every asset the registry has not
// seen yet. The registry is append-only: entries that disappear from the
// manifest stay registered. It returns how many assets were added.
func (ar *AssetReloader) Reload(ctx context.Context) (int, error) {
	ar.logger.Debug("reloading assets from manifest")

	file, err := ar.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load manifest: %w", err)
	}

	assets, skipped, err := ar.mapper.MapAssets(file)
	if err != nil {
		return 0, fmt.Errorf("failed to map assets: %w", err)
	}
	if skipped > 0 {
		ar.logger.Warn("skipped invalid manifest entries",
			logger.Int("skipped", skipped))
	}

	added := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		registered, isNew, err := ar.editor.AddAsset(a)
		if err != nil {
			ar.logger.Warn("failed to register asset",
				logger.String("asset_id", a.ID),
				logger.Error(err))
			continue
		}
		if isNew {
			added = append(added, registered)
		}
	}
	ar.editor.Registry().MarkReloaded(time.Now())

	if len(added) == 0 {
		ar.logger.Debug("no new assets in manifest")
		return 0, nil
	}

	ar.logger.Info("registered assets from manifest",
		logger.Int("count", len(added)))

	// Update Redis store (best effort)
	if ar.store != nil {
		if err := ar.store.SaveAssetsMany(ctx, added); err != nil {
			ar.logger.Warn("failed to save assets to redis",
				logger.Error(err))
			// Don't fail - the registry is the primary source
		} else {
			ar.logger.Debug("assets saved to redis")
		}
	}

	return len(added), nil
}
