package exporter

import (
	"strings"

	"github.com/productforge/backend/internal/models"
)

// docxRenderer writes a plain-text approximation of a Word document.
// The bytes are not an OOXML package; only the name and MIME type say DOCX.
type docxRenderer struct{}

// NewDOCXRenderer returns the renderer for FormatDOCX.
func NewDOCXRenderer() Renderer { return docxRenderer{} }

func (docxRenderer) Format() Format { return FormatDOCX }

func (docxRenderer) Render(project *models.ExportableProject, opts Options) ([]byte, error) {
	n := Normalize(project)

	var b strings.Builder
	b.WriteString(n.Title)
	b.WriteString("\n\n")
	if opts.IncludeMetadata {
		b.WriteString("Type: " + n.Type + "\n")
		b.WriteString("Created: " + n.Date + "\n\n")
	}
	b.WriteString(n.Content)
	return []byte(b.String()), nil
}

type markdownRenderer struct{}

// NewMarkdownRenderer returns the renderer for FormatMarkdown.
func NewMarkdownRenderer() Renderer { return markdownRenderer{} }

func (markdownRenderer) Format() Format { return FormatMarkdown }

func (markdownRenderer) Render(project *models.ExportableProject, opts Options) ([]byte, error) {
	n := Normalize(project)

	var b strings.Builder
	b.WriteString("# " + n.Title + "\n\n")
	if opts.IncludeMetadata {
		// Two trailing spaces force a markdown line break.
		b.WriteString("**Type:** " + n.Type + "  \n")
		b.WriteString("**Created:** " + n.Date + "\n\n")
		b.WriteString("---\n\n")
	}
	b.WriteString(n.Content)
	return []byte(b.String()), nil
}

type textRenderer struct{}

// NewTextRenderer returns the renderer for FormatText.
func NewTextRenderer() Renderer { return textRenderer{} }

func (textRenderer) Format() Format { return FormatText }

func (textRenderer) Render(project *models.ExportableProject, opts Options) ([]byte, error) {
	n := Normalize(project)

	var b strings.Builder
	b.WriteString(n.Title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(n.Title))) + "\n\n")
	if opts.IncludeMetadata {
		b.WriteString("Type: " + n.Type + "\n")
		b.WriteString("Created: " + n.Date + "\n\n")
	}
	b.WriteString(n.Content)
	return []byte(b.String()), nil
}
