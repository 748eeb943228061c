package deps

import (
	"time"

	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/logger"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time  // for testing, defaults to time.Now
	AllowedHosts     []string          // Host headers allowed to access the server
	AllowedCIDRS     []string          // IPs allowed to access the API and probes
	TrustProxy       bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst        int               // mutation rate limit bucket size per IP
	RateRefillPerMin int               // mutation rate limit refill per IP per minute
	ManifestFile     string            // Path to the assets manifest (empty = disabled)
	Editor           *editor.Editor    // Timeline state for this process
	Store            *redisstore.Store // Snapshot + asset persistence (nil = disabled)
	ReloadTrigger    chan struct{}     // Channel to trigger manual manifest reload (nil if manifest disabled)
	SnapshotTrigger  chan struct{}     // Channel to trigger an immediate snapshot save
}

// Now returns the injected clock or time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
