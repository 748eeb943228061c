package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	"github.com/MrSnakeDoc/splice/internal/logger"
	"github.com/MrSnakeDoc/splice/internal/render"
)

func Timeline(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Editor.State())
	}
}

// TimelineSummary renders the timeline as a text table for terminals.
func TimelineSummary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := render.Timeline(d.Editor.State().Timeline)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write([]byte(out + "\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := d.Editor.ExportJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="timeline.json"`)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

// Import replaces the tracks with an exported document. Malformed input is
// a 422 and leaves the timeline untouched.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readBody(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s, err := d.Editor.Import(data)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrMalformedDocument) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}
		writeMutation(w, s, true)
	}
}
