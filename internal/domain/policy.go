package domain

import (
	"fmt"
	"strings"
)

// OverlapPolicy decides what happens when a placement (add, move, drop)
// would overlap clips already on the destination track.
type OverlapPolicy string

const (
	// OverlapAllow places the clip as requested. Overlaps are cleaned up
	// later with ResolveOverlaps.
	OverlapAllow OverlapPolicy = "allow"
	// OverlapReject refuses the placement.
	OverlapReject OverlapPolicy = "reject"
	// OverlapClamp pushes the start forward to the first gap that fits.
	OverlapClamp OverlapPolicy = "clamp"
)

// ParseOverlapPolicy accepts allow, reject or clamp (case-insensitive).
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	p := OverlapPolicy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case OverlapAllow, OverlapReject, OverlapClamp:
		return p, nil
	}
	return "", fmt.Errorf("unknown overlap policy %q", s)
}

// Policy groups the placement rules applied by Ops.
type Policy struct {
	Overlap OverlapPolicy

	// AllowKindCrossing lets MoveClipToTrack move a clip between kinds.
	// The moved clip takes the destination kind.
	AllowKindCrossing bool
}

// DefaultPolicy is permissive placement with same-kind moves only.
func DefaultPolicy() Policy {
	return Policy{Overlap: OverlapAllow}
}

// place returns the start a clip of the given duration gets on a track
// holding clips (sorted by start), or false when the policy refuses it.
func (p Policy) place(clips []Clip, start, duration float64) (float64, bool) {
	switch p.Overlap {
	case OverlapReject:
		for _, c := range clips {
			if c.Overlaps(start, duration) {
				return 0, false
			}
		}
	case OverlapClamp:
		// Sorted input lets a single pass settle: start only ever grows.
		for _, c := range clips {
			if c.Overlaps(start, duration) {
				start = c.End()
			}
		}
	}
	return start, true
}
