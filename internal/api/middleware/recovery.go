package middleware

import (
	"net/http"
	"runtime/debug"

	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

// Recovery logs panics and answers with a 500 error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				writeError(w, appErr.New(appErr.CodeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
