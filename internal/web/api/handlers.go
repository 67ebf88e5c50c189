// Package api serves the unit registry over HTTP as a small read-only JSON
// API.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/web/response"
	"github.com/physical-quantities/units/pkg/registry"
	"github.com/physical-quantities/units/pkg/unit"
)

// Handler holds the registry the endpoints read from.
type Handler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler returns handlers bound to reg.
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{registry: reg, logger: logger}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Phase  string `json:"phase"`
	Units  int    `json:"units"`
}

// ConversionResponse is the body of GET /convert.
type ConversionResponse struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
}

// Health reports liveness and the registry size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := HealthResponse{Status: "ok", Phase: h.registry.Phase().String(), Units: h.registry.Len()}
	if h.registry.Phase() != registry.PhaseLive {
		status = http.StatusServiceUnavailable
		body.Status = "starting"
	}
	response.RenderJSON(w, status, body)
}

// ListUnits returns every registered unit; prefixed variants only with
// ?prefixed=true.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	includePrefixed := false
	if v := r.URL.Query().Get("prefixed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.RenderBadRequest(w, "prefixed must be a boolean")
			return
		}
		includePrefixed = b
	}

	units := h.registry.Units(includePrefixed)
	out := make([]unit.Description, len(units))
	for i, u := range units {
		out[i] = u.Describe()
	}
	response.RenderJSON(w, http.StatusOK, out)
}

// GetUnit returns a single registered unit by name.
func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	name := unit.Normalize(chi.URLParam(r, "name"))
	u, ok := h.registry.Lookup(name)
	if !ok {
		response.RenderUnitError(w, &unit.UnknownUnitError{Token: name, Suggestions: h.registry.Suggest(name)})
		return
	}
	response.RenderJSON(w, http.StatusOK, u.Describe())
}

// Resolve evaluates ?expr= and describes the resulting unit.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("expr")
	if text == "" {
		response.RenderBadRequest(w, "missing query parameter: expr")
		return
	}

	u, err := h.registry.Resolve(text)
	if err != nil {
		h.logger.Debug("resolve failed", zap.String("expr", text), zap.Error(err))
		response.RenderUnitError(w, err)
		return
	}
	response.RenderJSON(w, http.StatusOK, u.Describe())
}

// Convert converts ?value= from ?from= to ?to=.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		response.RenderBadRequest(w, "missing query parameter: from and to are required")
		return
	}

	value := 1.0
	if v := q.Get("value"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.RenderBadRequest(w, "value must be a number")
			return
		}
		value = parsed
	}

	src, err := h.registry.Resolve(from)
	if err != nil {
		response.RenderUnitError(w, err)
		return
	}
	dst, err := h.registry.Resolve(to)
	if err != nil {
		response.RenderUnitError(w, err)
		return
	}

	scale, offset, err := src.ConversionTupleTo(dst)
	if err != nil {
		response.RenderUnitError(w, err)
		return
	}

	response.RenderJSON(w, http.StatusOK, ConversionResponse{
		Value:  value,
		From:   src.Display(),
		To:     dst.Display(),
		Result: (value + offset) * scale,
		Scale:  scale,
		Offset: offset,
	})
}
