package handlers

import (
	"net/http"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/service"
	"github.com/productforge/backend/internal/utils"
)

// HumanizeHandler handles humanization routes
type HumanizeHandler struct {
	humanizeService HumanizeServiceInterface
}

// NewHumanizeHandler creates a new HumanizeHandler
func NewHumanizeHandler(humanizeService HumanizeServiceInterface) *HumanizeHandler {
	return &HumanizeHandler{
		humanizeService: humanizeService,
	}
}

// Humanize rewrites the posted text
func (h *HumanizeHandler) Humanize(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req HumanizeRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	out, err := h.humanizeService.Humanize(r.Context(), service.HumanizeInput{
		Text:    req.Text,
		Profile: req.Profile,
		Options: req.Options,
	})
	if err != nil {
		requestID, _ := auth.GetRequestID(r)
		logger := utils.RequestLogger(requestID, auth.Owner(r), r.Method, r.URL.Path)
		if utils.IsValidationError(err) {
			logger.Debug().Err(err).Msg("Humanize request rejected")
		} else {
			logger.Error().Err(err).Msg("Humanize request failed")
		}

		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, out)
}

// ListProfiles returns the predefined profiles and their flags
func (h *HumanizeHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.humanizeService.Profiles())
}
