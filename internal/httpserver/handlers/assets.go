package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	"github.com/MrSnakeDoc/splice/internal/logger"
	"github.com/MrSnakeDoc/splice/internal/render"
)

type addAssetRequest struct {
	Name            string      `json:"name"`
	Kind            domain.Kind `json:"kind"`
	SourceRef       string      `json:"sourceRef"`
	DurationSeconds float64     `json:"durationSeconds"`
	ThumbnailRef    string      `json:"thumbnailRef,omitempty"`
}

type addAssetResponse struct {
	Added bool         `json:"added"`
	Asset domain.Asset `json:"asset"`
}

func ListAssets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Editor.Assets())
	}
}

func AssetsSummary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write([]byte(render.Assets(d.Editor.Assets()) + "\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

// AddAsset is the ingestion callback: the caller has already probed the
// media and supplies its duration.
func AddAsset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAssetRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		asset, added, err := d.Editor.AddAsset(domain.Asset{
			Name:         req.Name,
			Kind:         req.Kind,
			SourceRef:    req.SourceRef,
			Duration:     req.DurationSeconds,
			ThumbnailRef: req.ThumbnailRef,
			AddedAt:      d.Now(),
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrInvalidAsset) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}

		// Persist (best effort)
		if added && d.Store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.Store.SaveAsset(ctx, asset); err != nil {
				d.Logger.Warn("failed to save asset to redis",
					logger.String("asset_id", asset.ID),
					logger.Error(err))
			}
		}

		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		writeJSON(w, status, addAssetResponse{Added: added, Asset: asset})
	}
}
