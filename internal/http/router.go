// Package httpapi wires the service's HTTP surface: the closure endpoints,
// health checks, and the Prometheus scrape endpoint.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workhive/internal/closure/handler"
	"workhive/pkg/platform/httputil"
)

// HealthChecker reports readiness of one downstream dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter assembles the full route tree. Health and metrics stay outside
// the authenticated closure router.
func NewRouter(closureHandler *handler.Handler, health map[string]HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	closureHandler.Register(r)
	return r
}

func handleHealth(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		deps := make(map[string]string, len(checkers))
		for name, checker := range checkers {
			if checker == nil {
				continue
			}
			if err := checker.Health(r.Context()); err != nil {
				deps[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":       httpStatusWord(status),
			"dependencies": deps,
		})
	}
}

func httpStatusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
