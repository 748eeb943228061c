package domain

// PlayHead is one active clip together with where playback should be
// inside its source media.
type PlayHead struct {
	TrackID   string  `json:"trackId"`
	Clip      Clip    `json:"clip"`
	MediaTime float64 `json:"mediaTime"`
}

// Active is the answer to "what plays at this time" for one kind. Video
// resolves to at most one clip in Clip; audio leaves Clip nil. Clips is
// never nil: the audio mix, or the topmost video clip alone.
type Active struct {
	Kind  Kind    `json:"kind"`
	Time  float64 `json:"time"`
	Clip  *Clip   `json:"clip,omitempty"`
	Clips []Clip  `json:"clips"`
}

// Frame is everything the preview needs at a given time.
type Frame struct {
	Time  float64    `json:"time"`
	Video *PlayHead  `json:"video,omitempty"`
	Audio []PlayHead `json:"audio"`
}

// ActiveClips returns every clip of kind containing at, in z-order: track
// order first, then clip order inside a track.
func (t Timeline) ActiveClips(kind Kind, at float64) []Clip {
	heads := t.playHeads(kind, at)
	out := make([]Clip, 0, len(heads))
	for _, h := range heads {
		out = append(out, h.Clip)
	}
	return out
}

// TopmostClip returns the last active clip in z-order.
func (t Timeline) TopmostClip(kind Kind, at float64) (Clip, bool) {
	heads := t.playHeads(kind, at)
	if len(heads) == 0 {
		return Clip{}, false
	}
	return heads[len(heads)-1].Clip, true
}

// FindActive applies the per-kind rule: a single topmost clip for video,
// every active clip for audio.
func (t Timeline) FindActive(kind Kind, at float64) Active {
	res := Active{Kind: kind, Time: at, Clips: []Clip{}}
	switch kind {
	case KindVideo:
		if c, ok := t.TopmostClip(kind, at); ok {
			res.Clip = &c
			res.Clips = append(res.Clips, c)
		}
	case KindAudio:
		res.Clips = t.ActiveClips(kind, at)
	}
	return res
}

// Preview resolves both kinds at once.
func (t Timeline) Preview(at float64) Frame {
	f := Frame{Time: at, Audio: t.playHeads(KindAudio, at)}
	if video := t.playHeads(KindVideo, at); len(video) > 0 {
		top := video[len(video)-1]
		f.Video = &top
	}
	return f
}

func (t Timeline) playHeads(kind Kind, at float64) []PlayHead {
	heads := []PlayHead{}
	for _, tr := range t.Tracks[kind] {
		for _, c := range tr.Clips {
			if c.Contains(at) {
				heads = append(heads, PlayHead{TrackID: tr.ID, Clip: c, MediaTime: c.MediaTime(at)})
			}
		}
	}
	if heads == nil {
		heads = []PlayHead{}
	}
	return heads
}
