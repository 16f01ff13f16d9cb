package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/middleware"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.Handler
		expectedStatus int
		expectPanicLog bool
	}{
		{
			name:           "No panic occurs",
			handler:        okHandler(),
			expectedStatus: http.StatusOK,
		},
		{
			name: "Panic with error",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(errors.New("test error"))
			}),
			expectedStatus: http.StatusInternalServerError,
			expectPanicLog: true,
		},
		{
			name: "Panic with string",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			}),
			expectedStatus: http.StatusInternalServerError,
			expectPanicLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest("POST", "/api/export", nil)
			req = req.WithContext(auth.WithRequestID(req.Context(), "req-42"))
			rr := httptest.NewRecorder()

			middleware.Recovery()(tt.handler).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectPanicLog {
				body := decodeError(t, rr)
				assert.Equal(t, "internal_error", body.Error.Code)
				assert.Contains(t, logs.String(), "Panic recovered")
				assert.Contains(t, logs.String(), "req-42")
			} else {
				assert.Equal(t, "ok", rr.Body.String())
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	captureLogs(t)
	handler := middleware.Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}
