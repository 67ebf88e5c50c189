package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/web/middleware"
	"github.com/physical-quantities/units/internal/web/response"
	"github.com/physical-quantities/units/pkg/registry"
)

// NewRouter builds the API routes:
//
//	GET /healthz
//	GET /units            ?prefixed=true
//	GET /units/{name}
//	GET /resolve          ?expr=
//	GET /convert          ?value=&from=&to=
func NewRouter(reg *registry.Registry, logger *zap.Logger, opts ...RouterOption) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}
	h := NewHandler(reg, logger)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger, "/healthz"),
		middleware.Recovery(logger),
	)
	if len(o.corsOrigins) > 0 {
		r.Use(middleware.CORS(o.corsOrigins...))
	}
	r.Use(chimw.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, http.StatusNotFound, fmt.Errorf("no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	})

	r.Get("/healthz", h.Health)
	r.Route("/units", func(r chi.Router) {
		r.Get("/", h.ListUnits)
		r.Get("/{name}", h.GetUnit)
	})
	r.Get("/resolve", h.Resolve)
	r.Get("/convert", h.Convert)

	return r
}

// RouterOption configures NewRouter.
type RouterOption func(*routerOptions)

type routerOptions struct {
	corsOrigins []string
}

// WithCORSOrigins enables CORS for the given browser origins.
func WithCORSOrigins(origins ...string) RouterOption {
	return func(o *routerOptions) {
		o.corsOrigins = append(o.corsOrigins, origins...)
	}
}
