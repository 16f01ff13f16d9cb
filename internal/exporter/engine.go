// Package exporter renders project records into downloadable documents.
//
// Each output format is produced by a Renderer registered with an Engine under
// its Format. Renderers normalize the project themselves, so every format sees
// the same fallback values.
package exporter

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/productforge/backend/internal/models"
)

// Outcome messages that do not depend on the format.
const (
	MessageNoProject         = "No project data provided"
	MessageUnsupportedFormat = "Unsupported export format"
)

// Options controls optional parts of a rendered document.
// IncludeImages and OptimizeForPrint are accepted for compatibility but have no effect.
type Options struct {
	IncludeImages    bool `json:"includeImages"`
	IncludeMetadata  bool `json:"includeMetadata"`
	OptimizeForPrint bool `json:"optimizeForPrint"`
}

// Result is the outcome of an export attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Artifact is a rendered document ready to be offered as a download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Renderer produces the bytes of one export format.
type Renderer interface {
	// Format returns the format this renderer produces.
	Format() Format
	// Render normalizes the project and renders it.
	Render(project *models.ExportableProject, opts Options) ([]byte, error)
}

// Engine dispatches export requests to the renderer registered for each format.
type Engine struct {
	byFormat map[Format]Renderer
}

// NewEngine creates an engine with no renderers registered.
func NewEngine() *Engine {
	return &Engine{byFormat: map[Format]Renderer{}}
}

// NewDefaultEngine creates an engine with all built-in renderers registered.
func NewDefaultEngine() *Engine {
	e := NewEngine()
	e.Register(NewPDFRenderer())
	e.Register(NewDOCXRenderer())
	e.Register(NewHTMLRenderer())
	e.Register(NewMarkdownRenderer())
	e.Register(NewTextRenderer())
	return e
}

// Register adds r, replacing any renderer already registered for its format.
func (e *Engine) Register(r Renderer) { e.byFormat[r.Format()] = r }

// Get returns the renderer registered for f.
func (e *Engine) Get(f Format) (Renderer, bool) {
	r, ok := e.byFormat[f]
	return r, ok
}

// Export renders a project in the requested format.
//
// Export never panics and never returns an error: every failure is reported
// through the Result, and an Artifact is returned only when Result.Success is true.
//
// Parameters:
//   - project: The project to export, may be nil
//   - format: The requested format name
//   - opts: Rendering options
//
// Returns:
//   - The rendered artifact, or nil on failure
//   - The outcome of the attempt
func (e *Engine) Export(project *models.ExportableProject, format string, opts Options) (artifact *Artifact, result Result) {
	if project == nil {
		return nil, Result{Success: false, Message: MessageNoProject}
	}

	f := Format(format)
	info, known := Lookup(f)
	renderer, registered := e.Get(f)
	if !known || !registered {
		return nil, Result{Success: false, Message: MessageUnsupportedFormat}
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("format", format).
				Interface("panic", rec).
				Msg("Renderer panicked during export")
			artifact = nil
			result = failure(info, fmt.Errorf("%v", rec))
		}
	}()

	data, err := renderer.Render(project, opts)
	if err != nil {
		return nil, failure(info, err)
	}

	return &Artifact{
		Filename:    FilenameStem(Normalize(project).Title) + info.Extension,
		ContentType: info.ContentType,
		Data:        data,
	}, Result{Success: true, Message: info.displayName + " exported successfully"}
}

func failure(info FormatInfo, err error) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("Failed to export %s: %v", info.failureName, err),
	}
}
