package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/utils"
)

// GenericHandler serves the service-level endpoints that are not tied to a feature.
type GenericHandler struct {
	app *config.AppSettings
	db  HealthChecker
}

// NewGenericHandler creates a new GenericHandler.
// db may be nil when history is kept in memory; health then reports the
// process only.
func NewGenericHandler(app *config.AppSettings, db HealthChecker) *GenericHandler {
	return &GenericHandler{
		app: app,
		db:  db,
	}
}

// Health reports whether the service and its database are reachable
func (h *GenericHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.HealthCheck(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			utils.Error(w, constants.StatusServiceUnavailable, constants.CodeServiceUnavailable, "Service is not healthy", nil)
			return
		}
	}

	utils.JSON(w, constants.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.app.Version,
	})
}

// Version returns the running version and environment
func (h *GenericHandler) Version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, map[string]string{
		"name":        h.app.Name,
		"version":     h.app.Version,
		"environment": h.app.Environment,
	})
}
