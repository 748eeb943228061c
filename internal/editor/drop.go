package editor

import (
	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// ClipRef points at an existing clip by position.
type ClipRef struct {
	Kind    domain.Kind `json:"kind"`
	TrackID string      `json:"trackId"`
	Index   int         `json:"index"`
}

// DropRequest is the single mutating call at the end of a drag. Exactly one
// of AssetID and From should be set: an asset drop places a new clip, a
// clip drop moves an existing one. Seconds, when set, wins over
// PixelOffset.
type DropRequest struct {
	Kind        domain.Kind `json:"kind"`
	TrackID     string      `json:"trackId"`
	PixelOffset float64     `json:"pixelOffset"`
	Seconds     *float64    `json:"seconds,omitempty"`
	AssetID     string      `json:"assetId,omitempty"`
	From        *ClipRef    `json:"from,omitempty"`
}

// Drop translates the pointer offset into a time with the current zoom and
// performs one placement or move.
func (e *Editor) Drop(req DropRequest) (State, bool) {
	at := e.dropTime(req)
	e.log.Debug("drop",
		logger.String("kind", string(req.Kind)),
		logger.String("track_id", req.TrackID),
		logger.Float64("time", at))

	switch {
	case req.From != nil:
		return e.MoveClip(req.From.Kind, req.From.TrackID, req.From.Index, req.Kind, req.TrackID, at)
	case req.AssetID != "":
		return e.PlaceAsset(req.Kind, req.TrackID, req.AssetID, &at, 0)
	default:
		return e.State(), false
	}
}

// DropEligible answers the hover phase. dragKind is the kind of the asset
// or clip being dragged.
func (e *Editor) DropEligible(dragKind, kind domain.Kind, trackID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tl.DropEligible(dragKind, kind, trackID)
}

func (e *Editor) dropTime(req DropRequest) float64 {
	if req.Seconds != nil {
		return *req.Seconds
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tl.DropTime(req.PixelOffset)
}
