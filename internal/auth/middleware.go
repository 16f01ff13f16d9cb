// Package auth verifies the bearer tokens issued by the external auth provider
// and carries the resulting identity through the request context.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// UserIDContextKey is the context key for the authenticated user ID (the token subject).
	UserIDContextKey ContextKey = constants.UserIDContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// ErrMissingToken is returned when a request carries no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// BearerToken extracts the token from the Authorization header.
//
// Parameters:
//   - r: The HTTP request
//
// Returns:
//   - The raw token
//   - ErrMissingToken when the header is absent or not a bearer credential
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(constants.HeaderAuthorization)
	if !strings.HasPrefix(header, constants.BearerTokenPrefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerTokenPrefix))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Authenticate verifies the request's bearer token.
//
// Returns:
//   - The verified claims
//   - An unauthorized, expired or invalid token error
func Authenticate(r *http.Request, validator JWTValidator) (*Claims, error) {
	token, err := BearerToken(r)
	if err != nil {
		return nil, utils.NewUnauthorizedError(constants.MsgAuthRequired)
	}
	return validator.ValidateToken(token)
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetUserID extracts the user ID from the request context.
//
// Returns:
//   - The user ID if present
//   - A boolean indicating if the user ID was found
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request is authenticated.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}

// Owner returns the history owner of the request: the authenticated user ID,
// or the empty string for anonymous requests.
func Owner(r *http.Request) string {
	userID, _ := GetUserID(r)
	return userID
}
