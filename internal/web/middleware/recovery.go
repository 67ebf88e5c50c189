package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/physical-quantities/units/internal/web/response"
)

// Recovery turns a panic in a handler into a logged error and a JSON 500.
func Recovery(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				logger.Error("panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Error(err),
					zap.Stack("stack"),
				)
				response.RenderErrorWithCode(w, http.StatusInternalServerError,
					fmt.Errorf("an unexpected error occurred"), "internal_server_error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
