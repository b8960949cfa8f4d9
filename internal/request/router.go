package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"docflow/internal/platform/metrics"
	"docflow/pkg/validation"
)

// HandlerFunc serves one request type. Handlers report failures through the
// response validation, never as a panic.
type HandlerFunc func(ctx context.Context, info Info) *Response

type route struct {
	name    string
	handler HandlerFunc
}

// Router dispatches requests to the handler registered for their type. It
// implements Repository for in-process callers.
type Router struct {
	routes  map[uuid.UUID]route
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

func NewRouter(opts ...Option) *Router {
	r := &Router{routes: make(map[uuid.UUID]route), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle registers h for typeID. Registering a type twice panics.
func (r *Router) Handle(typeID uuid.UUID, name string, h HandlerFunc) {
	if _, ok := r.routes[typeID]; ok {
		panic(fmt.Sprintf("request type %s already registered", typeID))
	}
	r.routes[typeID] = route{name: name, handler: h}
}

// Request runs the handler for req.Type. The returned error is always nil;
// unknown types and handler panics become unsuccessful responses.
func (r *Router) Request(ctx context.Context, req Request) (resp *Response, err error) {
	rt, ok := r.routes[req.Type]
	if !ok {
		r.logger.WarnContext(ctx, "unknown request type", "type", req.Type)
		r.metrics.ObserveCrossTierRequest("unknown", false)
		return Failed(CodeUnknownRequestType, fmt.Sprintf("Неизвестный тип запроса: %s", req.Type)), nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "request handler panicked", "type", rt.name, "panic", rec)
			resp, err = Failed(CodeLookupFailed, "Не удалось выполнить запрос"), nil
		}
		r.metrics.ObserveCrossTierRequest(rt.name, resp.Successful())
	}()

	info := req.Info
	if info == nil {
		info = Info{}
	}
	resp = rt.handler(ctx, info)
	if resp == nil {
		resp = &Response{}
	}
	if resp.Validation == nil {
		resp.Validation = validation.Success()
	}
	if resp.Info == nil {
		resp.Info = Info{}
	}
	return resp, nil
}
