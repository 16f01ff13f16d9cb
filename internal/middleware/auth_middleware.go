package middleware

import (
	"net/http"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/utils"
)

// JWTAuth requires a valid bearer token and stores its subject as the user ID.
// When the validator has no secret configured the API is open: requests pass
// through unauthenticated and share the anonymous history.
func JWTAuth(validator auth.JWTValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !validator.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.Authenticate(r, validator)
			if err != nil {
				utils.LogAuth("token_rejected", "", false, err.Error())
				utils.ErrorFromAppError(w, utils.ParseError(err))
				return
			}

			utils.LogAuth("token_accepted", claims.Subject, true, "")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.Subject)))
		})
	}
}
