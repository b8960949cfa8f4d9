package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docflow/internal/notice"
	"docflow/internal/scheduler"
	"docflow/pkg/platform/httputil"
	"docflow/pkg/platform/middleware"
	"docflow/pkg/requestcontext"
)

// NoticeTriggerPath runs the partner notice job on demand.
const NoticeTriggerPath = "/v1/jobs/partner-notice/run"

// NoticeTrigger starts a partner notice run now.
type NoticeTrigger interface {
	Trigger(ctx context.Context) (*notice.Report, bool, error)
}

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the handlers and probes the router mounts. Nil members
// leave their routes out.
type Dependencies struct {
	Logger    *slog.Logger
	Gatherer  prometheus.Gatherer
	Requests  Registrar
	Documents Registrar
	Notice    NoticeTrigger
	Health    map[string]HealthCheck
}

// NewRouter wires all public endpoints.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", health(deps.Health))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Logger(logger))
		if deps.Requests != nil {
			deps.Requests.Register(r)
		}
		if deps.Documents != nil {
			deps.Documents.Register(r)
		}
		if deps.Notice != nil {
			r.Post(NoticeTriggerPath, triggerNotice(deps.Notice, logger))
		}
	})
	return r
}

func health(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": body})
	}
}

type triggerResponse struct {
	Report *notice.Report `json:"report"`
	Joined bool           `json:"joined"`
}

func triggerNotice(trigger NoticeTrigger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		report, shared, err := trigger.Trigger(ctx)
		switch {
		case errors.Is(err, scheduler.ErrNotRunning):
			httputil.WriteError(w, http.StatusServiceUnavailable, "unavailable", "scheduler is not running")
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			httputil.WriteError(w, http.StatusGatewayTimeout, "timeout", "run did not finish in time")
			return
		case err != nil:
			logger.ErrorContext(ctx, "partner notice run failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, triggerResponse{Report: report, Joined: shared})
	}
}
