package httpserver

import (
	"net/http"
	"time"
)

// Runtime is the minimal interface required by shared HTTP handlers.
// It intentionally matches the interface in internal/server/handlers.
type Runtime interface {
	GetStatus() string
	GetStartTime() time.Time
}

// Options configures additional server wiring that is runtime-specific.
type Options struct {
	// Optional: Prometheus scrape endpoint on the admin server.
	PrometheusHandler http.Handler

	// Optional: static assets served under /static/ on the admin server.
	StaticAssets http.FileSystem
}
