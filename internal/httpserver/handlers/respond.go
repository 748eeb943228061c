package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/editor"
)

const maxBodyBytes = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// mutationResponse is returned by every editing endpoint. Changed=false
// means the engine refused the edit and State is the untouched state.
type mutationResponse struct {
	Changed bool         `json:"changed"`
	State   editor.State `json:"state"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeMutation(w http.ResponseWriter, s editor.State, changed bool) {
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, State: s})
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a bounded JSON body into v. Unknown fields are refused.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

func kindParam(r *http.Request, name string) (domain.Kind, error) {
	return domain.ParseKind(chi.URLParam(r, name))
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid clip index %q", raw)
	}
	return i, nil
}

// trackTarget resolves the {kind}/{trackID} pair shared by track and clip
// routes.
func trackTarget(w http.ResponseWriter, r *http.Request) (domain.Kind, string, bool) {
	kind, err := kindParam(r, "kind")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", "", false
	}
	return kind, chi.URLParam(r, "trackID"), true
}

// clipTarget resolves {kind}/{trackID}/clips/{index}.
func clipTarget(w http.ResponseWriter, r *http.Request) (domain.Kind, string, int, bool) {
	kind, trackID, ok := trackTarget(w, r)
	if !ok {
		return "", "", 0, false
	}
	i, err := indexParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", "", 0, false
	}
	return kind, trackID, i, true
}

// optionalFloat parses a query parameter; absent means nil.
func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}
