package editor

import (
	"fmt"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// Export snapshots the track structure.
func (e *Editor) Export() domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tl.Export()
}

// ExportJSON renders Export as indented JSON.
func (e *Editor) ExportJSON() ([]byte, error) {
	return e.Export().Marshal()
}

// Import replaces the tracks with a previously exported document. It is a
// single undoable step. Malformed input leaves the editor untouched and
// returns an error wrapping domain.ErrMalformedDocument.
func (e *Editor) Import(data []byte) (State, error) {
	doc, err := domain.ParseDocument(data)
	if err != nil {
		e.log.Warn("timeline import rejected", logger.Error(err))
		return e.State(), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.tl.Import(doc)
	if err != nil {
		e.log.Warn("timeline import rejected", logger.Error(err))
		return e.stateLocked(), err
	}
	e.tl = next
	e.hist.Record(domain.CloneTracks(next.Tracks))
	e.revision++
	e.log.Info("timeline imported",
		logger.Int("video_tracks", next.TrackCount(domain.KindVideo)),
		logger.Int("audio_tracks", next.TrackCount(domain.KindAudio)),
		logger.Int("clips", next.ClipCount()))
	e.events.publish(Event{Type: EventImport, Op: "import", Revision: e.revision})
	return e.stateLocked(), nil
}

// Restore loads a persisted snapshot at startup. Unlike Import it starts a
// fresh history whose only entry is the restored state.
func (e *Editor) Restore(data []byte) error {
	doc, err := domain.ParseDocument(data)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := e.tl.Import(doc)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	e.tl = next
	e.hist.Reset()
	e.hist.Record(domain.CloneTracks(next.Tracks))
	e.revision++
	e.events.publish(Event{Type: EventImport, Op: "restore", Revision: e.revision})
	return nil
}
