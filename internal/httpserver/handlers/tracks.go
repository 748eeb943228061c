package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
)

func AddTrack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := kindParam(r, "kind")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s, changed := d.Editor.AddTrack(kind)
		writeMutation(w, s, changed)
	}
}

func RemoveTrack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, ok := trackTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.RemoveTrack(kind, trackID)
		writeMutation(w, s, changed)
	}
}

func DuplicateTrack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, ok := trackTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.DuplicateTrack(kind, trackID)
		writeMutation(w, s, changed)
	}
}

// AlignTrack packs clips back to back. ?from=first keeps the first clip in
// place; the default starts packing at zero.
func AlignTrack(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, ok := trackTarget(w, r)
		if !ok {
			return
		}
		fromFirst := r.URL.Query().Get("from") == "first"
		s, changed := d.Editor.AutoAlign(kind, trackID, fromFirst)
		writeMutation(w, s, changed)
	}
}

func ResolveOverlaps(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, ok := trackTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.ResolveOverlaps(kind, trackID)
		writeMutation(w, s, changed)
	}
}
