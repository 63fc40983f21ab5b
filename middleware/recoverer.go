package middleware

import (
	"net/http"

	"github.com/elinonga/company-service/utils"
	"go.uber.org/zap"
)

// Recoverer turns a panic in next into a logged 500 with the usual JSON error body
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					// the server suppresses the stack trace for this one
					panic(rvr)
				}

				logger.Error("panic recovered",
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rvr),
					zap.StackSkip("stack", 1))

				if r.Header.Get("Connection") != "Upgrade" {
					_ = utils.WriteInternalServerError(w, "")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
