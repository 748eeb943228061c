package domain

import "math"

// DefaultZoom is the pixels-per-second factor used when none is configured.
const DefaultZoom = 50.0

// IDFunc generates fresh identifiers for tracks and clips.
type IDFunc func() string

// Timeline is the full multi-track arrangement plus the time cursor and the
// zoom factor used to translate pointer offsets into seconds.
//
// Timeline is treated as an immutable value: every operation returns a new
// Timeline and leaves its receiver untouched.
type Timeline struct {
	Tracks      map[Kind][]Track `json:"tracks"`
	CurrentTime float64          `json:"currentTime"`
	Zoom        float64          `json:"zoom"`
}

// NewTimeline returns a timeline seeded with one empty track per kind.
func NewTimeline(newID IDFunc, zoom float64) Timeline {
	if !finite(zoom) || zoom <= 0 {
		zoom = DefaultZoom
	}
	tl := Timeline{
		Tracks: make(map[Kind][]Track, len(Kinds())),
		Zoom:   zoom,
	}
	for _, k := range Kinds() {
		tl.Tracks[k] = []Track{{ID: newID(), Kind: k, Clips: []Clip{}}}
	}
	return tl
}

// Clone returns a deep copy.
func (t Timeline) Clone() Timeline {
	out := t
	out.Tracks = CloneTracks(t.Tracks)
	return out
}

// CloneTracks deep-copies a tracks-by-kind map.
func CloneTracks(in map[Kind][]Track) map[Kind][]Track {
	out := make(map[Kind][]Track, len(in))
	for k, tracks := range in {
		cp := make([]Track, len(tracks))
		for i, tr := range tracks {
			cp[i] = tr.Clone()
		}
		out[k] = cp
	}
	return out
}

// Track looks up a track by kind and id.
func (t Timeline) Track(kind Kind, id string) (Track, bool) {
	i := t.trackIndex(kind, id)
	if i < 0 {
		return Track{}, false
	}
	return t.Tracks[kind][i], true
}

// TrackCount returns the number of tracks of kind.
func (t Timeline) TrackCount(kind Kind) int {
	return len(t.Tracks[kind])
}

// ClipCount returns the number of clips across every track.
func (t Timeline) ClipCount() int {
	n := 0
	for _, tracks := range t.Tracks {
		for _, tr := range tracks {
			n += len(tr.Clips)
		}
	}
	return n
}

func (t Timeline) trackIndex(kind Kind, id string) int {
	for i, tr := range t.Tracks[kind] {
		if tr.ID == id {
			return i
		}
	}
	return -1
}

// SetCurrentTime moves the cursor. Non-finite input becomes 0 and negative
// input is clamped to 0.
func (t Timeline) SetCurrentTime(at float64) Timeline {
	t.CurrentTime = sanitizeTime(at)
	return t
}

// SetZoom changes the pixels-per-second factor. Non-positive or non-finite
// values are ignored.
func (t Timeline) SetZoom(zoom float64) (Timeline, bool) {
	if !finite(zoom) || zoom <= 0 || zoom == t.Zoom {
		return t, false
	}
	t.Zoom = zoom
	return t, true
}

// TotalDuration is the latest clip end across every track.
func (t Timeline) TotalDuration() float64 {
	total := 0.0
	for _, tracks := range t.Tracks {
		for _, tr := range tracks {
			for _, c := range tr.Clips {
				total = math.Max(total, c.End())
			}
		}
	}
	return total
}

func sanitizeTime(at float64) float64 {
	if !finite(at) || at < 0 {
		return 0
	}
	return at
}
