// Package httpapi assembles the HTTP surface: middleware chain, versioned API
// routes, health, and metrics. Transport concerns stay here; domain logic
// lives in the module services.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	classifierhandler "riskengine/internal/classifier/handler"
	"riskengine/internal/platform/middleware"
	"riskengine/pkg/platform/httputil"
)

// HealthChecker reports the health of one downstream dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs.
type Deps struct {
	Classifier *classifierhandler.Handler
	Validator  middleware.JWTValidator
	Logger     *slog.Logger
	// Checks maps dependency name to its health probe; nil entries are skipped.
	Checks map[string]HealthChecker
	// RulepackVersion is reported on the health endpoint.
	RulepackVersion string
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.RequestLogging(deps.Logger))

	r.Get("/healthz", handleHealth(deps))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Classifier.Register(r)
	})

	return r
}

// handleHealth pings each configured dependency with a short timeout and
// reports per-dependency status. Degraded dependencies return 503 so
// orchestrators can rotate the instance.
func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps.Checks))
		for name, checker := range deps.Checks {
			if checker == nil {
				continue
			}
			if err := checker.Health(ctx); err != nil {
				checks[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		httputil.WriteJSON(w, status, map[string]any{
			"service":          "riskengine",
			"rulepack_version": deps.RulepackVersion,
			"checks":           checks,
		})
	}
}
