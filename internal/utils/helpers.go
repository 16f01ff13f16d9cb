// Package utils provides utility functions and helpers for common operations
// used throughout the application. It includes error types, JSON response
// writers, request validation, structured logging and small string helpers.
package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/productforge/backend/internal/constants"
)

// SanitizeKeys returns a copy of data with credential-like values redacted.
// Nested maps and slices of maps are sanitized recursively.
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	sensitiveKeys := map[string]bool{
		"password":      true,
		"token":         true,
		"secret":        true,
		"jwt_secret":    true,
		"authorization": true,
		"dsn":           true,
	}

	result := make(map[string]interface{}, len(data))

	for k, v := range data {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = constants.LogRedactedValue
			continue
		}

		if nestedMap, ok := v.(map[string]interface{}); ok {
			result[k] = SanitizeKeys(nestedMap)
			continue
		}

		if nestedMapSlice, ok := v.([]map[string]interface{}); ok {
			sanitizedSlice := make([]map[string]interface{}, len(nestedMapSlice))
			for i, nestedMap := range nestedMapSlice {
				sanitizedSlice[i] = SanitizeKeys(nestedMap)
			}
			result[k] = sanitizedSlice
			continue
		}

		result[k] = v
	}

	return result
}

// ClientIP returns the host part of the request's remote address.
// chi's RealIP middleware has already applied proxy headers by the time this
// runs, so RemoteAddr is trusted as is.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
