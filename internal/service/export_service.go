package service

import (
	"context"
	"fmt"
	"time"

	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/history"
	"github.com/productforge/backend/internal/models"
	"github.com/productforge/backend/internal/utils"
)

// Exporter renders projects into downloadable artifacts.
// It is implemented by *exporter.Engine.
type Exporter interface {
	Export(project *models.ExportableProject, format string, opts exporter.Options) (*exporter.Artifact, exporter.Result)
}

// ExportService runs exports and keeps a per-owner history of every attempt.
type ExportService struct {
	engine Exporter
	book   *history.Book
	now    func() time.Time
}

// NewExportService creates a new ExportService.
//
// Parameters:
//   - engine: The export engine
//   - book: The history book attempts are recorded in
//
// Returns:
//   - A configured ExportService
func NewExportService(engine Exporter, book *history.Book) *ExportService {
	return &ExportService{
		engine: engine,
		book:   book,
		now:    time.Now,
	}
}

// Export renders a project and records the attempt in the owner's history.
// Failed attempts are recorded as well. A history write failure is logged
// and does not change the outcome returned to the caller.
//
// Parameters:
//   - ctx: Context for the history write
//   - owner: The user the history belongs to; empty for the shared history
//   - project: The project to render, may be nil
//   - format: The requested format name
//   - opts: Rendering options
//
// Returns:
//   - The artifact, nil unless the export succeeded
//   - The outcome of the attempt
func (s *ExportService) Export(ctx context.Context, owner string, project *models.ExportableProject, format string, opts exporter.Options) (*exporter.Artifact, exporter.Result) {
	artifact, result := s.engine.Export(project, format, opts)

	entry := models.NewExportHistoryEntry(project, format, result.Success, result.Message, s.now())
	if err := s.book.For(owner).Append(ctx, entry); err != nil {
		utils.LogError(err, map[string]interface{}{
			"operation": "append_export_history",
			"owner":     owner,
			"format":    format,
		})
	}

	size := 0
	if artifact != nil {
		size = len(artifact.Data)
	}
	utils.LogExport(owner, format, result.Success, result.Message, size)

	return artifact, result
}

// History returns the owner's export history, newest first.
func (s *ExportService) History(ctx context.Context, owner string) ([]models.ExportHistoryEntry, error) {
	entries, err := s.book.For(owner).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load export history: %w", err)
	}
	return entries, nil
}

// Stats summarizes the owner's export history.
func (s *ExportService) Stats(ctx context.Context, owner string) (*models.ExportStats, error) {
	entries, err := s.History(ctx, owner)
	if err != nil {
		return nil, err
	}
	stats := models.NewExportStats(entries)
	return &stats, nil
}

// Formats lists the supported export formats.
func (s *ExportService) Formats() []exporter.FormatInfo {
	return exporter.Formats()
}

// HistoryCapacity is the number of attempts kept per owner.
func (s *ExportService) HistoryCapacity() int {
	return s.book.Capacity()
}
