package domain

// AutoAlign packs the clips of a track back to back in their current order.
// Packing starts at 0, or at the first clip's start when fromFirst is set.
func (o Ops) AutoAlign(tl Timeline, kind Kind, trackID string, fromFirst bool) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || len(tl.Tracks[kind][ti].Clips) == 0 {
		return tl, false
	}
	next := tl.Clone()
	clips := next.Tracks[kind][ti].Clips

	cursor := 0.0
	if fromFirst {
		cursor = clips[0].StartTime
	}
	changed := false
	for i := range clips {
		if clips[i].StartTime != cursor {
			clips[i].StartTime = cursor
			changed = true
		}
		cursor = clips[i].End()
	}
	if !changed {
		return tl, false
	}
	return next, true
}

// ResolveOverlaps nudges each overlapping clip forward to the end of
// whatever precedes it. Clips that do not overlap keep their position.
func (o Ops) ResolveOverlaps(tl Timeline, kind Kind, trackID string) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || !tl.Tracks[kind][ti].HasOverlaps() {
		return tl, false
	}
	next := tl.Clone()
	clips := next.Tracks[kind][ti].Clips

	prevEnd := clips[0].End()
	for i := 1; i < len(clips); i++ {
		if clips[i].StartTime < prevEnd {
			clips[i].StartTime = prevEnd
		}
		if end := clips[i].End(); end > prevEnd {
			prevEnd = end
		}
	}
	return next, true
}
