package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	AssetsLoaded  *int   `json:"assets_loaded,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Entries       *int   `json:"entries,omitempty"`
	Revision      uint64 `json:"revision,omitempty"`
	SavedRevision uint64 `json:"saved_revision,omitempty"`
	LastSaved     string `json:"last_saved,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	PersistenceMode string                     `json:"persistence_mode"`
	Components      map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets := d.Editor.Registry()
		assetCount := assets.Count()
		lastReload := "never"
		if t := assets.GetLastReload(); !t.IsZero() {
			lastReload = t.Format("2006-01-02 15:04:05")
		}
		if d.ManifestFile == "" {
			lastReload = "disabled"
		}

		s := d.Editor.State()
		components := map[string]componentStatus{
			"assets": {
				OK:           true,
				AssetsLoaded: &assetCount,
				LastReload:   lastReload,
			},
			"history": {
				OK:       true,
				Entries:  &s.HistoryLength,
				Revision: s.Revision,
				Mode:     string(d.Editor.Policy().Overlap),
			},
			"redis": checkRedis(r.Context(), d, s.Revision),
		}

		response := infraResponse{
			PersistenceMode: determinePersistenceMode(components),
			Components:      components,
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func determinePersistenceMode(components map[string]componentStatus) string {
	redis, exists := components["redis"]
	if !exists || !redis.OK {
		return "memory-only" // edits survive until restart
	}
	if redis.SavedRevision < redis.Revision {
		return "pending" // next snapshot tick will catch up
	}
	return "persisted"
}

func checkRedis(parent context.Context, d deps.Deps, revision uint64) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshots-disabled",
			Error:  "store not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshots-disabled",
			Error:  "timeout",
		}
	}

	status := componentStatus{
		OK:       true,
		Mode:     "optimal",
		Impact:   "snapshots-enabled",
		Revision: revision,
	}
	meta, err := d.Store.TimelineMeta(ctx)
	switch {
	case errors.Is(err, redisstore.ErrSnapshotNotFound):
		status.LastSaved = "never"
	case err != nil:
		status.Error = err.Error()
	default:
		status.SavedRevision = meta.Revision
		status.LastSaved = meta.SavedAt.Format("2006-01-02 15:04:05")
	}
	return status
}
