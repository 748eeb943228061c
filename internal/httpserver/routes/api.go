package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	"github.com/MrSnakeDoc/splice/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/splice/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))

		// Reads
		api.Get("/timeline", handlers.Timeline(d))
		api.Get("/timeline/summary", handlers.TimelineSummary(d))
		api.Get("/assets", handlers.ListAssets(d))
		api.Get("/assets/summary", handlers.AssetsSummary(d))
		api.Get("/active", handlers.Active(d))
		api.Get("/preview", handlers.Preview(d))
		api.Get("/drop/eligible", handlers.DropEligible(d))
		api.Get("/export", handlers.Export(d))

		// Cursor moves arrive at playback rate and never touch history
		api.Put("/time", handlers.SetTime(d))
		api.Put("/zoom", handlers.SetZoom(d))

		// Edits
		api.Group(func(m chi.Router) {
			m.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateBurst,
				RefillPerIPPerMin: d.RateRefillPerMin,
				MaxEntries:        10000,
				TrustProxy:        d.TrustProxy,
			}))

			m.Post("/assets", handlers.AddAsset(d))

			m.Post("/tracks/{kind}", handlers.AddTrack(d))
			m.Route("/tracks/{kind}/{trackID}", func(t chi.Router) {
				t.Delete("/", handlers.RemoveTrack(d))
				t.Post("/duplicate", handlers.DuplicateTrack(d))
				t.Post("/align", handlers.AlignTrack(d))
				t.Post("/resolve-overlaps", handlers.ResolveOverlaps(d))

				t.Post("/clips", handlers.AddClip(d))
				t.Route("/clips/{index}", func(c chi.Router) {
					c.Patch("/", handlers.UpdateClip(d))
					c.Delete("/", handlers.DeleteClip(d))
					c.Post("/split", handlers.SplitClip(d))
					c.Post("/join", handlers.JoinClips(d))
					c.Post("/move", handlers.MoveClip(d))
				})
			})

			m.Post("/drop", handlers.Drop(d))

			m.Post("/undo", handlers.Undo(d))
			m.Post("/redo", handlers.Redo(d))
			m.Post("/import", handlers.Import(d))
		})
	})
}
