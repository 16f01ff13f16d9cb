package handlers

import (
	"github.com/productforge/backend/internal/exporter"
	"github.com/productforge/backend/internal/humanizer"
	"github.com/productforge/backend/internal/models"
)

// HumanizeRequest is the body of POST /api/humanize.
// Profile and Options are mutually exclusive; with neither the default profile applies.
type HumanizeRequest struct {
	Text    string             `json:"text" validate:"max=200000"`
	Profile string             `json:"profile,omitempty" validate:"omitempty,humanize_profile"`
	Options *humanizer.Options `json:"options,omitempty"`
}

// ExportRequest is the body of POST /api/export.
// The format is checked by the export engine so that unsupported formats are
// recorded in the history like any other failed attempt.
type ExportRequest struct {
	Project *models.ExportableProject `json:"project"`
	Format  string                    `json:"format"`
	Options exporter.Options          `json:"options"`
}
