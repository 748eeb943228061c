package domain

import (
	"fmt"
	"math"
	"time"
)

// Asset is a registered media source available for placement on the
// timeline. Assets are immutable once registered and never removed.
type Asset struct {
	// ID is the canonical unique identifier.
	ID string `json:"id"`

	// Name is the display name used for clips created from this asset.
	Name string `json:"name"`

	// Kind is the media kind (video or audio).
	Kind Kind `json:"kind"`

	// SourceRef points at the media itself (path or URL). The engine never
	// dereferences it; the playback collaborator does.
	SourceRef string `json:"sourceRef"`

	// Duration is the probed media length in seconds.
	Duration float64 `json:"durationSeconds"`

	// ThumbnailRef is an optional preview image reference.
	ThumbnailRef string `json:"thumbnailRef,omitempty"`

	// AddedAt records registration time and keeps registry order stable
	// across restarts.
	AddedAt time.Time `json:"addedAt"`
}

// Validate checks the only things the registry cares about: a known kind
// and a resolvable duration.
func (a Asset) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidAsset)
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAsset, a.Kind)
	}
	if !finite(a.Duration) || a.Duration <= 0 {
		return fmt.Errorf("%w: duration %v is not resolvable", ErrInvalidAsset, a.Duration)
	}
	return nil
}

// ClipInput builds the placement request for this asset. A nil start means
// "append to the end of the target track".
func (a Asset) ClipInput(start *float64) ClipInput {
	return ClipInput{
		AssetRef:  a.ID,
		Name:      a.Name,
		SourceRef: a.SourceRef,
		Duration:  a.Duration,
		StartTime: start,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
