package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/index"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// AddAsset registers an asset. Missing id and registration time are filled
// in. It reports whether the asset was new; re-registering a known id is a
// silent no-op.
func (e *Editor) AddAsset(a domain.Asset) (domain.Asset, bool, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AddedAt.IsZero() {
		a.AddedAt = e.now()
	}

	added, err := e.assets.Append(a)
	if err != nil {
		return domain.Asset{}, false, fmt.Errorf("failed to register asset %q: %w", a.Name, err)
	}
	if !added {
		existing, _ := e.assets.Get(a.ID)
		return existing, false, nil
	}

	e.log.Debug("asset registered",
		logger.String("asset_id", a.ID),
		logger.String("kind", string(a.Kind)),
		logger.Float64("duration", a.Duration))
	e.events.publish(Event{Type: EventAsset, Op: "add_asset", Revision: e.Revision()})
	return a, true, nil
}

// Assets lists registered assets in registration order.
func (e *Editor) Assets() []domain.Asset {
	return e.assets.All()
}

// Asset looks up a registered asset.
func (e *Editor) Asset(id string) (domain.Asset, bool) {
	return e.assets.Get(id)
}

// Registry exposes the underlying registry for the manifest reloader.
func (e *Editor) Registry() *index.AssetRegistry {
	return e.assets
}
