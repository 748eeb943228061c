package domain

// Clip is a placed instance of an asset on a track.
type Clip struct {
	ID        string `json:"id"`
	AssetRef  string `json:"assetRef"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	SourceRef string `json:"sourceRef,omitempty"`

	// StartTime is the timeline position in seconds.
	StartTime float64 `json:"startTime"`

	// Duration is the visible length in seconds, always > 0.
	Duration float64 `json:"duration"`

	// MediaOffset is where playback begins inside the source media.
	// Zero for a fresh placement, grows on split.
	MediaOffset float64 `json:"mediaOffset"`
}

// End returns the exclusive end time of the clip.
func (c Clip) End() float64 {
	return c.StartTime + c.Duration
}

// Contains reports whether t falls in [StartTime, End).
func (c Clip) Contains(t float64) bool {
	return c.StartTime <= t && t < c.End()
}

// Overlaps reports whether the clip intersects [start, start+duration).
func (c Clip) Overlaps(start, duration float64) bool {
	return c.StartTime < start+duration && start < c.End()
}

// MediaTime maps a timeline time to the position inside the source media.
func (c Clip) MediaTime(t float64) float64 {
	return c.MediaOffset + (t - c.StartTime)
}

// ClipInput describes a clip to be placed by AddToTimeline.
type ClipInput struct {
	AssetRef    string   `json:"assetRef"`
	Name        string   `json:"name"`
	SourceRef   string   `json:"sourceRef,omitempty"`
	Duration    float64  `json:"duration"`
	MediaOffset float64  `json:"mediaOffset,omitempty"`
	StartTime   *float64 `json:"startTime,omitempty"`
}

// ClipPatch is a shallow merge applied by UpdateClip. Nil fields are left
// untouched.
type ClipPatch struct {
	Name        *string  `json:"name,omitempty"`
	StartTime   *float64 `json:"startTime,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
	MediaOffset *float64 `json:"mediaOffset,omitempty"`
}

// apply merges p into c. Invalid values (negative start/offset, duration
// <= 0, non-finite numbers) are ignored field by field.
func (p ClipPatch) apply(c Clip) Clip {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.StartTime != nil && finite(*p.StartTime) && *p.StartTime >= 0 {
		c.StartTime = *p.StartTime
	}
	if p.Duration != nil && finite(*p.Duration) && *p.Duration > 0 {
		c.Duration = *p.Duration
	}
	if p.MediaOffset != nil && finite(*p.MediaOffset) && *p.MediaOffset >= 0 {
		c.MediaOffset = *p.MediaOffset
	}
	return c
}
