package handlers

import (
	"net/http"

	"github.com/productforge/backend/internal/auth"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/utils"
)

// ExportHandler handles export and export history routes
type ExportHandler struct {
	exportService ExportServiceInterface
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService ExportServiceInterface) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export renders the posted project and returns it as a file download.
//
// On success the body is the document itself and the outcome message is sent
// in the X-Export-Message header. On failure the standard error envelope
// carries the outcome message: 400 when the request could not be exported at
// all (no project, unsupported format), 500 when rendering failed.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	// Project records come from the project store and may carry extra fields
	var req ExportRequest
	if err := utils.DecodeAndValidateLenient(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	artifact, result := h.exportService.Export(r.Context(), auth.Owner(r), req.Project, req.Format, req.Options)
	if !result.Success {
		requestID, _ := auth.GetRequestID(r)
		logger := utils.RequestLogger(requestID, auth.Owner(r), r.Method, r.URL.Path)
		logger.Warn().Str("format", req.Format).Msg(result.Message)

		utils.ErrorFromAppError(w, exportError(result))
		return
	}

	w.Header().Set(constants.HeaderXExportMessage, result.Message)
	utils.Attachment(w, artifact.Filename, artifact.ContentType, artifact.Data)
}

// exportError maps a failed export result to an error response.
func exportError(result exporter.Result) *utils.AppError {
	switch result.Message {
	case exporter.MessageNoProject, exporter.MessageUnsupportedFormat:
		return utils.NewBadRequestError(result.Message)
	default:
		return utils.NewExportFailedError(result.Message)
	}
}

// ListFormats returns the supported export formats
func (h *ExportHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, constants.StatusOK, h.exportService.Formats())
}

// GetHistory returns the caller's export history, newest first
func (h *ExportHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.exportService.History(r.Context(), auth.Owner(r))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Get pagination parameters
	params := utils.GetPaginationParams(r)

	// Compare page numbers before multiplying so a huge page cannot overflow
	start := len(entries)
	if params.Page-1 <= len(entries)/params.PageSize {
		start = min((params.Page-1)*params.PageSize, len(entries))
	}
	end := start + params.PageSize
	if end > len(entries) {
		end = len(entries)
	}

	utils.Paginated(w, constants.StatusOK, entries[start:end], params.Page, params.PageSize, len(entries))
}

// GetHistoryStats returns counts over the caller's export history
func (h *ExportHandler) GetHistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.exportService.Stats(r.Context(), auth.Owner(r))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, stats)
}
