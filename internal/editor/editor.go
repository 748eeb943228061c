// Package editor owns the timeline state of a running session.
//
// An Editor wraps the pure operations of package domain with the linear
// undo history, the asset registry and change notification. Every call runs
// to completion under a single lock, so concurrent callers (HTTP handlers,
// the manifest reloader, the snapshot saver) observe one strict order of
// mutations.
package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/history"
	"github.com/MrSnakeDoc/splice/internal/index"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// Options configures a new Editor. Zero values pick sensible defaults.
type Options struct {
	Zoom         float64
	Policy       domain.Policy
	HistoryLimit int
	NewID        domain.IDFunc
	Registry     *index.AssetRegistry
	Logger       logger.Logger
	Now          func() time.Time
}

// State is a consistent read of the editor.
type State struct {
	Timeline      domain.Timeline `json:"timeline"`
	HistoryIndex  int             `json:"historyIndex"`
	HistoryLength int             `json:"historyLength"`
	CanUndo       bool            `json:"canUndo"`
	CanRedo       bool            `json:"canRedo"`
	Revision      uint64          `json:"revision"`
}

type snapshot = map[domain.Kind][]domain.Track

// Editor is the explicit state container for one timeline.
type Editor struct {
	mu       sync.Mutex
	tl       domain.Timeline
	ops      domain.Ops
	hist     *history.Log[snapshot]
	assets   *index.AssetRegistry
	log      logger.Logger
	now      func() time.Time
	revision uint64
	events   *broadcaster
}

// New creates an editor with one seed track per kind. The seed is the
// first history entry.
func New(opts Options) *Editor {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Policy.Overlap == "" {
		opts.Policy.Overlap = domain.OverlapAllow
	}
	if opts.Registry == nil {
		opts.Registry = index.NewAssetRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Editor{
		tl:     domain.NewTimeline(opts.NewID, opts.Zoom),
		ops:    domain.Ops{NewID: opts.NewID, Policy: opts.Policy},
		hist:   history.New[snapshot](opts.HistoryLimit),
		assets: opts.Registry,
		log:    opts.Logger,
		now:    opts.Now,
		events: newBroadcaster(),
	}
	e.hist.Record(domain.CloneTracks(e.tl.Tracks))
	return e
}

// State returns the current timeline and history position.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Revision counts committed changes to the track structure. Cursor and zoom
// moves do not bump it.
func (e *Editor) Revision() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// Policy returns the placement rules in force.
func (e *Editor) Policy() domain.Policy {
	return e.ops.Policy
}

func (e *Editor) stateLocked() State {
	return State{
		Timeline:      e.tl.Clone(),
		HistoryIndex:  e.hist.Cursor(),
		HistoryLength: e.hist.Len(),
		CanUndo:       e.hist.CanUndo(),
		CanRedo:       e.hist.CanRedo(),
		Revision:      e.revision,
	}
}

// mutate applies fn and, when it changed anything, records one history step.
func (e *Editor) mutate(op string, fn func(domain.Timeline) (domain.Timeline, bool)) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, changed := fn(e.tl)
	if !changed {
		e.log.Debug("edit refused", logger.String("op", op))
		return e.stateLocked(), false
	}
	e.commitLocked(op, next)
	return e.stateLocked(), true
}

func (e *Editor) commitLocked(op string, next domain.Timeline) {
	e.tl = next
	e.hist.Record(domain.CloneTracks(next.Tracks))
	e.revision++
	e.log.Debug("timeline edited",
		logger.String("op", op),
		logger.Uint64("revision", e.revision),
		logger.Int("history_length", e.hist.Len()))
	e.events.publish(Event{Type: EventEdit, Op: op, Revision: e.revision})
}

func (e *Editor) restoreLocked(op string, tracks snapshot) {
	e.tl.Tracks = domain.CloneTracks(tracks)
	e.revision++
	e.log.Debug("history moved",
		logger.String("op", op),
		logger.Int("history_index", e.hist.Cursor()))
	e.events.publish(Event{Type: EventHistory, Op: op, Revision: e.revision})
}

// Undo steps back one history entry.
func (e *Editor) Undo() (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tracks, ok := e.hist.Undo()
	if !ok {
		return e.stateLocked(), false
	}
	e.restoreLocked("undo", tracks)
	return e.stateLocked(), true
}

// Redo steps forward one history entry.
func (e *Editor) Redo() (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tracks, ok := e.hist.Redo()
	if !ok {
		return e.stateLocked(), false
	}
	e.restoreLocked("redo", tracks)
	return e.stateLocked(), true
}

// Subscribe returns a channel of change events and a function that cancels
// the subscription. Slow subscribers miss events rather than block edits.
func (e *Editor) Subscribe(buffer int) (<-chan Event, func()) {
	return e.events.subscribe(buffer)
}
