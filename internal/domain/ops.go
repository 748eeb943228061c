package domain

import (
	"math"
	"slices"
	"strings"
)

const (
	splitFirstSuffix  = " (1)"
	splitSecondSuffix = " (2)"
)

// Ops applies structural edits to a Timeline. Every method is a pure
// function of its arguments: it returns the next Timeline and whether
// anything changed. Unknown tracks, out-of-range indices and refused edits
// return the input unchanged with changed == false.
type Ops struct {
	NewID  IDFunc
	Policy Policy
}

// AddTrack appends an empty track of kind.
func (o Ops) AddTrack(tl Timeline, kind Kind) (Timeline, bool) {
	if !kind.Valid() {
		return tl, false
	}
	next := tl.Clone()
	next.Tracks[kind] = append(next.Tracks[kind], Track{ID: o.NewID(), Kind: kind, Clips: []Clip{}})
	return next, true
}

// RemoveTrack drops a track unless it is the last one of its kind.
func (o Ops) RemoveTrack(tl Timeline, kind Kind, trackID string) (Timeline, bool) {
	i := tl.trackIndex(kind, trackID)
	if i < 0 || len(tl.Tracks[kind]) <= 1 {
		return tl, false
	}
	next := tl.Clone()
	next.Tracks[kind] = slices.Delete(next.Tracks[kind], i, i+1)
	return next, true
}

// AddToTimeline places a new clip on a track. Without an explicit start the
// clip is appended after the last clip of the track.
func (o Ops) AddToTimeline(tl Timeline, kind Kind, trackID string, in ClipInput) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || !finite(in.Duration) || in.Duration <= 0 {
		return tl, false
	}
	track := tl.Tracks[kind][ti]

	start := track.End()
	if in.StartTime != nil {
		start = sanitizeTime(*in.StartTime)
	}
	start, ok := o.Policy.place(track.Clips, start, in.Duration)
	if !ok {
		return tl, false
	}

	clip := Clip{
		ID:          o.NewID(),
		AssetRef:    in.AssetRef,
		Name:        in.Name,
		Kind:        kind,
		SourceRef:   in.SourceRef,
		StartTime:   start,
		Duration:    in.Duration,
		MediaOffset: sanitizeTime(in.MediaOffset),
	}

	next := tl.Clone()
	tr := &next.Tracks[kind][ti]
	tr.Clips = append(tr.Clips, clip)
	tr.sortClips()
	return next, true
}

// MoveClipToTrack moves the clip at clipIndex to another track (or to a new
// position on the same track). The new start is clamped to >= 0.
func (o Ops) MoveClipToTrack(tl Timeline, srcKind Kind, srcTrackID string, clipIndex int, dstKind Kind, dstTrackID string, newStart float64) (Timeline, bool) {
	if srcKind != dstKind && !o.Policy.AllowKindCrossing {
		return tl, false
	}
	si := tl.trackIndex(srcKind, srcTrackID)
	di := tl.trackIndex(dstKind, dstTrackID)
	if si < 0 || di < 0 || !tl.Tracks[srcKind][si].validIndex(clipIndex) {
		return tl, false
	}

	next := tl.Clone()
	src := &next.Tracks[srcKind][si]
	clip := src.Clips[clipIndex]
	src.Clips = slices.Delete(src.Clips, clipIndex, clipIndex+1)

	dst := &next.Tracks[dstKind][di]
	start, ok := o.Policy.place(dst.Clips, sanitizeTime(newStart), clip.Duration)
	if !ok {
		return tl, false
	}
	clip.StartTime = start
	clip.Kind = dstKind
	dst.Clips = append(dst.Clips, clip)
	dst.sortClips()
	return next, true
}

// DeleteClip removes the clip at clipIndex.
func (o Ops) DeleteClip(tl Timeline, kind Kind, trackID string, clipIndex int) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || !tl.Tracks[kind][ti].validIndex(clipIndex) {
		return tl, false
	}
	next := tl.Clone()
	tr := &next.Tracks[kind][ti]
	tr.Clips = slices.Delete(tr.Clips, clipIndex, clipIndex+1)
	return next, true
}

// UpdateClip shallow-merges patch into the clip at clipIndex. A patch that
// changes the clip's time range is placed like a move: the overlap policy
// applies against the other clips of the track.
func (o Ops) UpdateClip(tl Timeline, kind Kind, trackID string, clipIndex int, patch ClipPatch) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || !tl.Tracks[kind][ti].validIndex(clipIndex) {
		return tl, false
	}
	clips := tl.Tracks[kind][ti].Clips
	before := clips[clipIndex]
	after := patch.apply(before)
	if after.StartTime != before.StartTime || after.Duration != before.Duration {
		others := slices.Delete(slices.Clone(clips), clipIndex, clipIndex+1)
		start, ok := o.Policy.place(others, after.StartTime, after.Duration)
		if !ok {
			return tl, false
		}
		after.StartTime = start
	}
	if after == before {
		return tl, false
	}
	next := tl.Clone()
	tr := &next.Tracks[kind][ti]
	tr.Clips[clipIndex] = after
	tr.sortClips()
	return next, true
}

// SplitClip cuts the clip at clipIndex at the current time. The cursor must
// lie strictly inside the clip. The second half keeps playing the source
// media where the first half stopped.
func (o Ops) SplitClip(tl Timeline, kind Kind, trackID string, clipIndex int) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 || !tl.Tracks[kind][ti].validIndex(clipIndex) {
		return tl, false
	}
	c := tl.Tracks[kind][ti].Clips[clipIndex]
	at := tl.CurrentTime
	if at <= c.StartTime || at >= c.End() {
		return tl, false
	}

	head := at - c.StartTime

	first := c
	first.ID = o.NewID()
	first.Name = c.Name + splitFirstSuffix
	first.Duration = head

	// The second half starts where the first one ends in float terms and
	// the durations add up to the original exactly, so a join restores it.
	second := c
	second.ID = o.NewID()
	second.Name = c.Name + splitSecondSuffix
	second.StartTime = first.End()
	second.Duration = complement(c.Duration, head)
	second.MediaOffset = c.MediaOffset + head
	if second.StartTime <= c.StartTime || second.Duration <= 0 {
		return tl, false
	}

	next := tl.Clone()
	tr := &next.Tracks[kind][ti]
	tr.Clips = slices.Replace(tr.Clips, clipIndex, clipIndex+1, first, second)
	return next, true
}

// JoinClips merges the clip at clipIndex with the next one. Both must come
// from the same asset and touch exactly (no gap, no overlap).
func (o Ops) JoinClips(tl Timeline, kind Kind, trackID string, clipIndex int) (Timeline, bool) {
	ti := tl.trackIndex(kind, trackID)
	if ti < 0 {
		return tl, false
	}
	track := tl.Tracks[kind][ti]
	if !track.validIndex(clipIndex) || !track.validIndex(clipIndex+1) {
		return tl, false
	}
	a, b := track.Clips[clipIndex], track.Clips[clipIndex+1]
	if a.AssetRef != b.AssetRef || b.StartTime != a.End() {
		return tl, false
	}

	joined := a
	joined.ID = o.NewID()
	joined.Name = joinedName(a.Name, b.Name)
	joined.Duration = a.Duration + b.Duration

	next := tl.Clone()
	tr := &next.Tracks[kind][ti]
	tr.Clips = slices.Replace(tr.Clips, clipIndex, clipIndex+2, joined)
	return next, true
}

// complement returns rest such that part+rest == total in float64
// arithmetic. total-part alone can land one ulp off.
func complement(total, part float64) float64 {
	rest := total - part
	for i := 0; i < 4 && part+rest != total; i++ {
		if part+rest < total {
			rest = math.Nextafter(rest, math.Inf(1))
		} else {
			rest = math.Nextafter(rest, math.Inf(-1))
		}
	}
	return rest
}

// joinedName undoes the split suffixes when both halves still carry them.
func joinedName(first, second string) string {
	base, ok := strings.CutSuffix(first, splitFirstSuffix)
	if ok && second == base+splitSecondSuffix {
		return base
	}
	return first
}

// DuplicateTrack appends a deep copy of a track with fresh track and clip ids.
func (o Ops) DuplicateTrack(tl Timeline, kind Kind, trackID string) (Timeline, bool) {
	src, ok := tl.Track(kind, trackID)
	if !ok {
		return tl, false
	}
	dup := src.Clone()
	dup.ID = o.NewID()
	for i := range dup.Clips {
		dup.Clips[i].ID = o.NewID()
	}
	next := tl.Clone()
	next.Tracks[kind] = append(next.Tracks[kind], dup)
	return next, true
}
