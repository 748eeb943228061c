package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
)

func Undo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, changed := d.Editor.Undo()
		writeMutation(w, s, changed)
	}
}

func Redo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, changed := d.Editor.Redo()
		writeMutation(w, s, changed)
	}
}
