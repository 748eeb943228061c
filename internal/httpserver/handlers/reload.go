package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	"github.com/MrSnakeDoc/splice/internal/logger"
)

// Reload triggers a manual manifest reload and an immediate snapshot save
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Trigger immediate manifest reload (if enabled)
		assetsTriggered := false
		if d.ReloadTrigger != nil {
			select {
			case d.ReloadTrigger <- struct{}{}:
				assetsTriggered = true
				d.Logger.Info("manual asset reload triggered via endpoint",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("asset reload already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		// Trigger immediate snapshot save
		snapshotTriggered := false
		if d.SnapshotTrigger != nil {
			select {
			case d.SnapshotTrigger <- struct{}{}:
				snapshotTriggered = true
				d.Logger.Info("manual snapshot save triggered via endpoint",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("snapshot save already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		// Determine response based on what was triggered
		if assetsTriggered || snapshotTriggered {
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		} else {
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
