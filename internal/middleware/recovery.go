package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					requestID, _ := auth.GetRequestID(r)
					utils.LogPanic(requestID, r.Method, r.URL.Path, rec, debug.Stack())

					utils.Error(
						w,
						constants.StatusInternalServerError,
						constants.CodeInternalError,
						"An unexpected error occurred while processing your request",
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
