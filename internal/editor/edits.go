package editor

import (
	"github.com/MrSnakeDoc/splice/internal/domain"
)

// AddTrack appends an empty track of kind.
func (e *Editor) AddTrack(kind domain.Kind) (State, bool) {
	return e.mutate("add_track", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.AddTrack(tl, kind)
	})
}

// RemoveTrack removes a track unless it is the last of its kind.
func (e *Editor) RemoveTrack(kind domain.Kind, trackID string) (State, bool) {
	return e.mutate("remove_track", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.RemoveTrack(tl, kind, trackID)
	})
}

// AddClip places a clip described by in.
func (e *Editor) AddClip(kind domain.Kind, trackID string, in domain.ClipInput) (State, bool) {
	return e.mutate("add_clip", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.AddToTimeline(tl, kind, trackID, in)
	})
}

// PlaceAsset places a registered asset on a track. A nil start appends.
// The asset must exist and match the track kind. A positive duration
// overrides the asset's own length.
func (e *Editor) PlaceAsset(kind domain.Kind, trackID, assetID string, start *float64, duration float64) (State, bool) {
	a, ok := e.assets.Get(assetID)
	if !ok || a.Kind != kind {
		e.log.Debug("asset placement refused")
		return e.State(), false
	}
	in := a.ClipInput(start)
	if duration > 0 {
		in.Duration = duration
	}
	return e.AddClip(kind, trackID, in)
}

// MoveClip moves a clip to a new start on the same or another track.
func (e *Editor) MoveClip(srcKind domain.Kind, srcTrackID string, clipIndex int, dstKind domain.Kind, dstTrackID string, newStart float64) (State, bool) {
	return e.mutate("move_clip", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.MoveClipToTrack(tl, srcKind, srcTrackID, clipIndex, dstKind, dstTrackID, newStart)
	})
}

// DeleteClip removes a clip.
func (e *Editor) DeleteClip(kind domain.Kind, trackID string, clipIndex int) (State, bool) {
	return e.mutate("delete_clip", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.DeleteClip(tl, kind, trackID, clipIndex)
	})
}

// UpdateClip merges patch into a clip.
func (e *Editor) UpdateClip(kind domain.Kind, trackID string, clipIndex int, patch domain.ClipPatch) (State, bool) {
	return e.mutate("update_clip", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.UpdateClip(tl, kind, trackID, clipIndex, patch)
	})
}

// SplitClip cuts a clip at the current time.
func (e *Editor) SplitClip(kind domain.Kind, trackID string, clipIndex int) (State, bool) {
	return e.mutate("split_clip", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.SplitClip(tl, kind, trackID, clipIndex)
	})
}

// JoinClips merges a clip with its contiguous successor.
func (e *Editor) JoinClips(kind domain.Kind, trackID string, clipIndex int) (State, bool) {
	return e.mutate("join_clips", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.JoinClips(tl, kind, trackID, clipIndex)
	})
}

// DuplicateTrack appends a copy of a track with fresh ids.
func (e *Editor) DuplicateTrack(kind domain.Kind, trackID string) (State, bool) {
	return e.mutate("duplicate_track", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.DuplicateTrack(tl, kind, trackID)
	})
}

// AutoAlign packs a track's clips back to back.
func (e *Editor) AutoAlign(kind domain.Kind, trackID string, fromFirst bool) (State, bool) {
	return e.mutate("auto_align", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.AutoAlign(tl, kind, trackID, fromFirst)
	})
}

// ResolveOverlaps nudges overlapping clips forward.
func (e *Editor) ResolveOverlaps(kind domain.Kind, trackID string) (State, bool) {
	return e.mutate("resolve_overlaps", func(tl domain.Timeline) (domain.Timeline, bool) {
		return e.ops.ResolveOverlaps(tl, kind, trackID)
	})
}
