package editor

import (
	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// SetCurrentTime moves the time cursor. It is not an undo step.
func (e *Editor) SetCurrentTime(at float64) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tl = e.tl.SetCurrentTime(at)
	e.events.publish(Event{Type: EventCursor, Op: "set_time", Revision: e.revision})
	return e.stateLocked()
}

// SetZoom changes pixels per second. It is not an undo step.
func (e *Editor) SetZoom(zoom float64) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, changed := e.tl.SetZoom(zoom)
	if changed {
		e.tl = next
		e.log.Debug("zoom changed", logger.Float64("zoom", zoom))
		e.events.publish(Event{Type: EventCursor, Op: "set_zoom", Revision: e.revision})
	}
	return e.stateLocked(), changed
}

// FindActive resolves the active clip(s) of kind at the given time, or at
// the cursor when at is nil.
func (e *Editor) FindActive(kind domain.Kind, at *float64) domain.Active {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tl.FindActive(kind, e.timeOrCursor(at))
}

// Preview resolves both kinds at once for the playback collaborator.
func (e *Editor) Preview(at *float64) domain.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.tl.Preview(e.timeOrCursor(at))
}

func (e *Editor) timeOrCursor(at *float64) float64 {
	if at == nil {
		return e.tl.CurrentTime
	}
	return *at
}
