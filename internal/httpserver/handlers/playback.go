package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
)

type timeRequest struct {
	Time float64 `json:"time"`
}

type zoomRequest struct {
	Zoom float64 `json:"zoom"`
}

type eligibleResponse struct {
	Eligible bool `json:"eligible"`
}

// SetTime moves the cursor. Playback writes it back here while it runs.
func SetTime(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req timeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeMutation(w, d.Editor.SetCurrentTime(req.Time), true)
	}
}

func SetZoom(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req zoomRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s, changed := d.Editor.SetZoom(req.Zoom)
		writeMutation(w, s, changed)
	}
}

// Active answers ?kind=video|audio&t=seconds; t defaults to the cursor.
func Active(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := domain.ParseKind(r.URL.Query().Get("kind"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		at, err := optionalFloat(r, "t")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Editor.FindActive(kind, at))
	}
}

func Preview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, err := optionalFloat(r, "t")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Editor.Preview(at))
	}
}

var errDropTarget = errors.New("drop needs exactly one of assetId or from")

func Drop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editor.DropRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if (req.AssetID == "") == (req.From == nil) {
			writeError(w, http.StatusBadRequest, errDropTarget)
			return
		}
		s, changed := d.Editor.Drop(req)
		writeMutation(w, s, changed)
	}
}

// DropEligible is the hover-phase check:
// ?drag=video&kind=video&track=<id>.
func DropEligible(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		drag, err := domain.ParseKind(q.Get("drag"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		kind, err := domain.ParseKind(q.Get("kind"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, eligibleResponse{
			Eligible: d.Editor.DropEligible(drag, kind, q.Get("track")),
		})
	}
}
