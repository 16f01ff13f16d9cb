// Package handlers provides HTTP request handlers for the ProductForge API.
package handlers

import (
	"context"

	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/models"
	"github.com/productforge/backend/internal/service"
)

// HumanizeServiceInterface defines methods required from the humanize service.
type HumanizeServiceInterface interface {
	// Humanize rewrites text with a named profile or explicit options.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - in: The text and profile selection
	//
	// Returns:
	//   - The rewritten text and the profile name used
	//   - A validation error for an unknown profile or conflicting selection
	Humanize(ctx context.Context, in service.HumanizeInput) (*service.HumanizeOutput, error)

	// Profiles lists the predefined profiles.
	Profiles() []service.ProfileInfo
}

// ExportServiceInterface defines methods required from the export service.
type ExportServiceInterface interface {
	// Export renders a project and records the attempt in the owner's history.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - owner: The history owner, empty for anonymous requests
	//   - project: The project to render, may be nil
	//   - format: The requested format
	//   - opts: Rendering options
	//
	// Returns:
	//   - The artifact on success, nil otherwise
	//   - The outcome of the attempt
	Export(ctx context.Context, owner string, project *models.ExportableProject, format string, opts exporter.Options) (*exporter.Artifact, exporter.Result)

	// History returns the owner's export history, newest first.
	History(ctx context.Context, owner string) ([]models.ExportHistoryEntry, error)

	// Stats summarizes the owner's export history.
	Stats(ctx context.Context, owner string) (*models.ExportStats, error)

	// Formats lists the supported export formats.
	Formats() []exporter.FormatInfo
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
