package domain

// PixelsToSeconds converts a horizontal pointer offset into timeline
// seconds for the given zoom. Invalid zoom or negative results give 0.
func PixelsToSeconds(px, zoom float64) float64 {
	if !finite(zoom) || zoom <= 0 {
		return 0
	}
	return sanitizeTime(px / zoom)
}

// SecondsToPixels is the inverse used to lay clips out.
func SecondsToPixels(seconds, zoom float64) float64 {
	return seconds * zoom
}

// DropTime converts a pointer offset using the timeline's own zoom.
func (t Timeline) DropTime(px float64) float64 {
	return PixelsToSeconds(px, t.Zoom)
}

// DropEligible answers the hover phase of a drag: the target track must
// exist and hold the same kind as what is being dragged. It never mutates.
func (t Timeline) DropEligible(dragKind, kind Kind, trackID string) bool {
	if dragKind != kind {
		return false
	}
	_, ok := t.Track(kind, trackID)
	return ok
}
