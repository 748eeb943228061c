package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

// AssetRegistry is the in-memory, append-only list of assets available for
// placement. Insertion order is preserved; nothing is ever removed.
type AssetRegistry struct {
	mu         sync.RWMutex
	assets     []domain.Asset
	byID       map[string]int // ID -> position in assets
	lastReload time.Time      // last manifest reload
}

// NewAssetRegistry creates an empty registry
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{
		byID: make(map[string]int),
	}
}

// Append registers an asset. It returns false without error when the id is
// already known, so re-ingesting the same media is harmless.
func (r *AssetRegistry) Append(asset domain.Asset) (bool, error) {
	if err := asset.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[asset.ID]; ok {
		return false, nil
	}
	r.byID[asset.ID] = len(r.assets)
	r.assets = append(r.assets, asset)
	return true, nil
}

// AppendMany registers every valid, unseen asset and returns how many were
// added. Invalid entries are skipped.
func (r *AssetRegistry) AppendMany(assets []domain.Asset) int {
	added := 0
	for _, a := range assets {
		if ok, err := r.Append(a); err == nil && ok {
			added++
		}
	}
	return added
}

// Get retrieves an asset by ID
func (r *AssetRegistry) Get(id string) (domain.Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return domain.Asset{}, false
	}
	return r.assets[i], true
}

// All returns a copy of every asset in registration order
func (r *AssetRegistry) All() []domain.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// Count returns the number of registered assets
func (r *AssetRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.assets)
}

// MarkReloaded records a completed manifest reload
func (r *AssetRegistry) MarkReloaded(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastReload = at
}

// GetLastReload returns the timestamp of the last manifest reload
func (r *AssetRegistry) GetLastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastReload
}
