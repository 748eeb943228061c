package domain

import "sort"

// Track is a time-ordered list of clips of a single kind.
type Track struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Clips []Clip `json:"clips"`
}

// End returns the end time of the last clip (by start order), or 0 for an
// empty track. This is where an append lands.
func (tr Track) End() float64 {
	if len(tr.Clips) == 0 {
		return 0
	}
	last := tr.Clips[len(tr.Clips)-1]
	return last.End()
}

// Clone returns a deep copy of the track.
func (tr Track) Clone() Track {
	out := tr
	out.Clips = make([]Clip, len(tr.Clips))
	copy(out.Clips, tr.Clips)
	return out
}

// sortClips restores the ascending StartTime order. Stable, so clips that
// share a start keep their insertion order (and their z-order).
func (tr *Track) sortClips() {
	sort.SliceStable(tr.Clips, func(i, j int) bool {
		return tr.Clips[i].StartTime < tr.Clips[j].StartTime
	})
}

// Sorted reports whether clips are non-decreasing in StartTime.
func (tr Track) Sorted() bool {
	for i := 1; i < len(tr.Clips); i++ {
		if tr.Clips[i].StartTime < tr.Clips[i-1].StartTime {
			return false
		}
	}
	return true
}

// HasOverlaps reports whether any two clips of the track intersect.
func (tr Track) HasOverlaps() bool {
	maxEnd := 0.0
	for i, c := range tr.Clips {
		if i > 0 && c.StartTime < maxEnd {
			return true
		}
		if c.End() > maxEnd {
			maxEnd = c.End()
		}
	}
	return false
}

func (tr Track) validIndex(i int) bool {
	return i >= 0 && i < len(tr.Clips)
}
