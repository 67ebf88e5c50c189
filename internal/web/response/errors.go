// Package response writes JSON bodies and maps unit errors onto HTTP status
// codes.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/physical-quantities/units/pkg/unit"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Code        string   `json:"code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// RenderJSON writes v as JSON with the given status.
func RenderJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// RenderError renders a standard error response
func RenderError(w http.ResponseWriter, statusCode int, err error) {
	RenderErrorWithCode(w, statusCode, err, "")
}

// RenderErrorWithCode renders an error with a specific error code
func RenderErrorWithCode(w http.ResponseWriter, statusCode int, err error, code string) {
	if code == "" {
		code = errorCodeFromStatus(statusCode)
	}
	RenderJSON(w, statusCode, &ErrorResponse{
		Error:   "error",
		Message: err.Error(),
		Code:    code,
	})
}

// RenderBadRequest renders a 400 Bad Request error
func RenderBadRequest(w http.ResponseWriter, message string) {
	RenderError(w, http.StatusBadRequest, fmt.Errorf("%s", message))
}

// RenderUnitError renders an error returned by the unit algebra or the
// registry, choosing status and code from the error kind. Unknown-unit
// errors carry their suggestions.
func RenderUnitError(w http.ResponseWriter, err error) {
	status, code := Classify(err)
	resp := &ErrorResponse{
		Error:   "error",
		Message: err.Error(),
		Code:    code,
	}
	var unknown *unit.UnknownUnitError
	if errors.As(err, &unknown) {
		resp.Suggestions = unknown.Suggestions
	}
	RenderJSON(w, status, resp)
}

// Classify maps an error onto an HTTP status and a machine-readable code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, unit.ErrUnknownUnit):
		return http.StatusNotFound, "unknown_unit"
	case errors.Is(err, unit.ErrInvalidExpression):
		return http.StatusBadRequest, "invalid_expression"
	case errors.Is(err, unit.ErrIllegalExponent):
		return http.StatusBadRequest, "illegal_exponent"
	case errors.Is(err, unit.ErrIncompatibleDimensions):
		return http.StatusBadRequest, "incompatible_dimensions"
	case errors.Is(err, unit.ErrNonAffineCombination):
		return http.StatusBadRequest, "non_affine_combination"
	case errors.Is(err, unit.ErrNonExpressibleConversion):
		return http.StatusBadRequest, "non_expressible_conversion"
	case errors.Is(err, unit.ErrNotAUnit):
		return http.StatusBadRequest, "not_a_unit"
	case errors.Is(err, unit.ErrDuplicateUnit):
		return http.StatusConflict, "duplicate_unit"
	default:
		return http.StatusInternalServerError, "internal_server_error"
	}
}

// errorCodeFromStatus generates an error code from HTTP status
func errorCodeFromStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusConflict:
		return "conflict"
	case http.StatusInternalServerError:
		return "internal_server_error"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "error"
	}
}
