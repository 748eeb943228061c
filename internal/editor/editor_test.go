package editor

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

func seqIDs() domain.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestEditor(t *testing.T, policy domain.Policy) *Editor {
	t.Helper()
	return New(Options{
		NewID:  seqIDs(),
		Policy: policy,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
}

func videoTrack(e *Editor) string {
	return e.State().Timeline.Tracks[domain.KindVideo][0].ID
}

func TestNewEditorSeedIsFirstHistoryEntry(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	s := e.State()

	if s.HistoryLength != 1 || s.HistoryIndex != 0 {
		t.Fatalf("history = %d/%d, want 0/1", s.HistoryIndex, s.HistoryLength)
	}
	if s.CanUndo || s.CanRedo {
		t.Errorf("CanUndo=%v CanRedo=%v, want both false", s.CanUndo, s.CanRedo)
	}
	if s.Timeline.Zoom != domain.DefaultZoom {
		t.Errorf("Zoom = %v, want %v", s.Timeline.Zoom, domain.DefaultZoom)
	}
}

// undoFixture has two video tracks, clips a [0,4) and b [4,10) on the first,
// and the cursor at 6.
func undoFixture(t *testing.T) (*Editor, string, string) {
	t.Helper()
	e := newTestEditor(t, domain.DefaultPolicy())
	first := videoTrack(e)
	s, _ := e.AddTrack(domain.KindVideo)
	second := s.Timeline.Tracks[domain.KindVideo][1].ID
	e.AddClip(domain.KindVideo, first, domain.ClipInput{AssetRef: "a", Name: "a", Duration: 4})
	e.AddClip(domain.KindVideo, first, domain.ClipInput{AssetRef: "b", Name: "b", Duration: 6})
	e.SetCurrentTime(6)
	return e, first, second
}

func TestUndoRedoRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		edit func(e *Editor, first, second string) bool
	}{
		{"add clip", func(e *Editor, first, _ string) bool {
			_, ok := e.AddClip(domain.KindVideo, first, domain.ClipInput{AssetRef: "c", Duration: 2})
			return ok
		}},
		{"split", func(e *Editor, first, _ string) bool {
			_, ok := e.SplitClip(domain.KindVideo, first, 1)
			return ok
		}},
		{"move across tracks", func(e *Editor, first, second string) bool {
			_, ok := e.MoveClip(domain.KindVideo, first, 0, domain.KindVideo, second, 2)
			return ok
		}},
		{"move within track", func(e *Editor, first, _ string) bool {
			_, ok := e.MoveClip(domain.KindVideo, first, 1, domain.KindVideo, first, 20)
			return ok
		}},
		{"remove track", func(e *Editor, _, second string) bool {
			_, ok := e.RemoveTrack(domain.KindVideo, second)
			return ok
		}},
		{"update clip", func(e *Editor, first, _ string) bool {
			name := "renamed"
			_, ok := e.UpdateClip(domain.KindVideo, first, 0, domain.ClipPatch{Name: &name})
			return ok
		}},
		{"delete clip", func(e *Editor, first, _ string) bool {
			_, ok := e.DeleteClip(domain.KindVideo, first, 0)
			return ok
		}},
		{"duplicate track", func(e *Editor, first, _ string) bool {
			_, ok := e.DuplicateTrack(domain.KindVideo, first)
			return ok
		}},
		{"auto align", func(e *Editor, first, _ string) bool {
			e.MoveClip(domain.KindVideo, first, 1, domain.KindVideo, first, 8)
			_, ok := e.AutoAlign(domain.KindVideo, first, false)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, first, second := undoFixture(t)
			before := e.State().Timeline.Tracks

			if !tt.edit(e, first, second) {
				t.Fatal("edit reported no change")
			}
			after := e.State().Timeline.Tracks
			if reflect.DeepEqual(before, after) {
				t.Fatal("edit left the tracks unchanged")
			}

			// auto align records two steps; undo back to before the edit
			for e.State().HistoryIndex > 0 && !reflect.DeepEqual(e.State().Timeline.Tracks, before) {
				if _, ok := e.Undo(); !ok {
					t.Fatal("Undo() = false")
				}
			}
			if got := e.State().Timeline.Tracks; !reflect.DeepEqual(got, before) {
				t.Errorf("after undo tracks = %+v, want %+v", got, before)
			}

			for !reflect.DeepEqual(e.State().Timeline.Tracks, after) {
				if _, ok := e.Redo(); !ok {
					t.Fatalf("Redo() ran out before reaching the edited state")
				}
			}
			if e.State().CanRedo {
				t.Error("CanRedo should be false at the newest entry")
			}
			if got := e.State().Timeline.CurrentTime; got != 6 {
				t.Errorf("CurrentTime = %v, want 6 (cursor is not history)", got)
			}
		})
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	seed := e.State().Timeline.Tracks

	if _, ok := e.Undo(); ok {
		t.Error("Undo() at the seed should fail")
	}
	if _, ok := e.Redo(); ok {
		t.Error("Redo() with nothing undone should fail")
	}

	e.AddClip(domain.KindVideo, videoTrack(e), domain.ClipInput{AssetRef: "a", Duration: 4})
	e.Undo()
	if got := e.State().Timeline.Tracks; !reflect.DeepEqual(got, seed) {
		t.Errorf("tracks after undo = %+v, want the seed %+v", got, seed)
	}
	if _, ok := e.Undo(); ok {
		t.Error("Undo() past the seed should fail")
	}
}

func TestNewEditTruncatesRedo(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	track := videoTrack(e)

	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "a", Duration: 4})
	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "b", Duration: 4})
	e.Undo()
	s, _ := e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "c", Duration: 4})

	if s.CanRedo {
		t.Error("CanRedo after a new edit should be false")
	}
	if s.HistoryLength != 3 || s.HistoryIndex != 2 {
		t.Errorf("history = %d/%d, want 2/3", s.HistoryIndex, s.HistoryLength)
	}
}

func TestRefusedEditIsNotRecorded(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	before := e.State()

	s, changed := e.DeleteClip(domain.KindVideo, videoTrack(e), 3)
	if changed {
		t.Fatal("DeleteClip() on an empty track reported a change")
	}
	if s.HistoryLength != before.HistoryLength || s.Revision != before.Revision {
		t.Errorf("refused edit moved history or revision: %+v", s)
	}
}

func TestCursorAndZoomAreNotHistory(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())

	e.SetCurrentTime(12)
	s, changed := e.SetZoom(80)
	if !changed {
		t.Fatal("SetZoom(80) reported no change")
	}
	if s.HistoryLength != 1 {
		t.Errorf("HistoryLength = %d, want 1", s.HistoryLength)
	}
	if s.Timeline.CurrentTime != 12 || s.Timeline.Zoom != 80 {
		t.Errorf("cursor/zoom = %v/%v, want 12/80", s.Timeline.CurrentTime, s.Timeline.Zoom)
	}

	e.AddClip(domain.KindVideo, videoTrack(e), domain.ClipInput{AssetRef: "a", Duration: 20})
	s, _ = e.Undo()
	if s.Timeline.CurrentTime != 12 {
		t.Errorf("undo moved the cursor to %v", s.Timeline.CurrentTime)
	}
}

func TestSplitUsesCursor(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	track := videoTrack(e)
	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "a", Name: "a", Duration: 10})

	e.SetCurrentTime(4)
	s, changed := e.SplitClip(domain.KindVideo, track, 0)
	if !changed {
		t.Fatal("SplitClip() reported no change")
	}
	clips := s.Timeline.Tracks[domain.KindVideo][0].Clips
	if len(clips) != 2 || clips[1].StartTime != 4 || clips[1].MediaOffset != 4 {
		t.Fatalf("clips = %+v", clips)
	}

	s, changed = e.JoinClips(domain.KindVideo, track, 0)
	if !changed || s.Timeline.ClipCount() != 1 {
		t.Fatalf("JoinClips() changed=%v clips=%d", changed, s.Timeline.ClipCount())
	}
	if got := s.Timeline.Tracks[domain.KindVideo][0].Clips[0].Name; got != "a" {
		t.Errorf("joined name = %q, want %q", got, "a")
	}
}

func TestFindActiveDefaultsToCursor(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	track := videoTrack(e)
	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "a", Duration: 5})
	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "b", Duration: 5})
	e.SetCurrentTime(7)

	got := e.FindActive(domain.KindVideo, nil)
	if got.Clip == nil || got.Clip.AssetRef != "b" {
		t.Fatalf("FindActive(video) = %+v, want clip b", got)
	}

	at := 1.0
	got = e.FindActive(domain.KindVideo, &at)
	if got.Clip == nil || got.Clip.AssetRef != "a" {
		t.Fatalf("FindActive(video, 1) = %+v, want clip a", got)
	}
}

func TestAssetsAndDrop(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	track := videoTrack(e)

	asset, added, err := e.AddAsset(domain.Asset{Name: "intro", Kind: domain.KindVideo, SourceRef: "file:///intro.mp4", Duration: 8})
	if err != nil || !added {
		t.Fatalf("AddAsset() = %v, %v", added, err)
	}
	if asset.ID == "" || asset.AddedAt.IsZero() {
		t.Fatalf("AddAsset() did not fill id/addedAt: %+v", asset)
	}

	// zoom 50 px/s: 100px lands at 2s
	s, changed := e.Drop(DropRequest{Kind: domain.KindVideo, TrackID: track, PixelOffset: 100, AssetID: asset.ID})
	if !changed {
		t.Fatal("asset Drop() reported no change")
	}
	c := s.Timeline.Tracks[domain.KindVideo][0].Clips[0]
	if c.StartTime != 2 || c.Duration != 8 || c.AssetRef != asset.ID || c.SourceRef != asset.SourceRef {
		t.Fatalf("dropped clip = %+v", c)
	}

	s, changed = e.Drop(DropRequest{
		Kind: domain.KindVideo, TrackID: track, PixelOffset: 250,
		From: &ClipRef{Kind: domain.KindVideo, TrackID: track, Index: 0},
	})
	if !changed {
		t.Fatal("move Drop() reported no change")
	}
	if got := s.Timeline.Tracks[domain.KindVideo][0].Clips[0].StartTime; got != 5 {
		t.Errorf("moved start = %v, want 5", got)
	}

	audio := s.Timeline.Tracks[domain.KindAudio][0].ID
	if _, changed := e.Drop(DropRequest{Kind: domain.KindAudio, TrackID: audio, AssetID: asset.ID}); changed {
		t.Error("dropping a video asset on an audio track should be refused")
	}
	if e.DropEligible(domain.KindVideo, domain.KindAudio, audio) {
		t.Error("DropEligible(video → audio) = true")
	}
	if !e.DropEligible(domain.KindVideo, domain.KindVideo, track) {
		t.Error("DropEligible(video → video) = false")
	}
}

func TestAddAssetDuplicateAndInvalid(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())

	a := domain.Asset{ID: "fixed", Name: "n", Kind: domain.KindAudio, Duration: 3}
	if _, added, err := e.AddAsset(a); err != nil || !added {
		t.Fatalf("first AddAsset() = %v, %v", added, err)
	}
	if _, added, err := e.AddAsset(a); err != nil || added {
		t.Fatalf("second AddAsset() = %v, %v, want false, nil", added, err)
	}
	if _, _, err := e.AddAsset(domain.Asset{Name: "bad", Kind: domain.KindAudio}); !errors.Is(err, domain.ErrInvalidAsset) {
		t.Fatalf("AddAsset(zero duration) err = %v, want ErrInvalidAsset", err)
	}
	if len(e.Assets()) != 1 {
		t.Errorf("len(Assets()) = %d, want 1", len(e.Assets()))
	}
}

func TestImportExport(t *testing.T) {
	src := newTestEditor(t, domain.DefaultPolicy())
	track := videoTrack(src)
	src.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "a", Duration: 3})
	src.AddTrack(domain.KindAudio)
	data, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	dst := newTestEditor(t, domain.DefaultPolicy())
	s, err := dst.Import(data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if s.Timeline.ClipCount() != 1 || s.Timeline.TrackCount(domain.KindAudio) != 2 {
		t.Errorf("imported timeline = %+v", s.Timeline.Tracks)
	}
	if !s.CanUndo {
		t.Error("import should be undoable")
	}

	before := dst.State()
	if _, err := dst.Import([]byte(`{"tracks":`)); !errors.Is(err, domain.ErrMalformedDocument) {
		t.Fatalf("Import(garbage) err = %v, want ErrMalformedDocument", err)
	}
	after := dst.State()
	if after.Revision != before.Revision || after.HistoryLength != before.HistoryLength {
		t.Error("failed import changed editor state")
	}
}

func TestRestoreResetsHistory(t *testing.T) {
	src := newTestEditor(t, domain.DefaultPolicy())
	src.AddClip(domain.KindVideo, videoTrack(src), domain.ClipInput{AssetRef: "a", Duration: 3})
	data, _ := src.ExportJSON()

	dst := newTestEditor(t, domain.DefaultPolicy())
	dst.AddTrack(domain.KindVideo)
	if err := dst.Restore(data); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	s := dst.State()
	if s.HistoryLength != 1 || s.CanUndo {
		t.Errorf("history after restore = %d entries, canUndo=%v", s.HistoryLength, s.CanUndo)
	}
	if s.Timeline.ClipCount() != 1 {
		t.Errorf("ClipCount() = %d, want 1", s.Timeline.ClipCount())
	}
}

func TestSubscribeReceivesEdits(t *testing.T) {
	e := newTestEditor(t, domain.DefaultPolicy())
	events, cancel := e.Subscribe(4)
	defer cancel()

	e.AddTrack(domain.KindAudio)
	e.Undo()

	want := []EventType{EventEdit, EventHistory}
	for i, typ := range want {
		select {
		case ev := <-events:
			if ev.Type != typ {
				t.Errorf("event %d = %s, want %s", i, ev.Type, typ)
			}
			if ev.Revision != uint64(i+1) {
				t.Errorf("event %d revision = %d, want %d", i, ev.Revision, i+1)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	cancel()
	if _, ok := <-events; ok {
		t.Error("channel still open after cancel")
	}
}

func TestRejectPolicyRefusesOverlap(t *testing.T) {
	e := newTestEditor(t, domain.Policy{Overlap: domain.OverlapReject})
	track := videoTrack(e)
	e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "a", Duration: 10})

	start := 5.0
	if _, changed := e.AddClip(domain.KindVideo, track, domain.ClipInput{AssetRef: "b", Duration: 2, StartTime: &start}); changed {
		t.Error("overlapping AddClip() under reject policy reported a change")
	}
}
