package exporter

import "strings"

// Format identifies an export output format.
type Format string

// Supported export formats.
const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// FormatInfo describes an export format for format pickers and downloads.
type FormatInfo struct {
	Format      Format `json:"format"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	ContentType string `json:"contentType"`

	// displayName is used in outcome messages ("PDF exported successfully").
	displayName string
	// failureName is used in failure messages ("Failed to export text file: ...").
	failureName string
}

// catalogue lists the formats in the order they are offered to users.
var catalogue = []FormatInfo{
	{
		Format:      FormatPDF,
		Label:       "PDF Document",
		Description: "Professional PDF with styling",
		Extension:   ".pdf",
		ContentType: "application/pdf",
		displayName: "PDF",
		failureName: "PDF",
	},
	{
		Format:      FormatDOCX,
		Label:       "Word Document",
		Description: "Microsoft Word compatible",
		Extension:   ".docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		displayName: "DOCX",
		failureName: "DOCX",
	},
	{
		Format:      FormatHTML,
		Label:       "HTML Page",
		Description: "Responsive web page",
		Extension:   ".html",
		ContentType: "text/html",
		displayName: "HTML",
		failureName: "HTML",
	},
	{
		Format:      FormatMarkdown,
		Label:       "Markdown",
		Description: "Perfect for Notion/GitHub",
		Extension:   ".md",
		ContentType: "text/markdown",
		displayName: "Markdown",
		failureName: "Markdown",
	},
	{
		Format:      FormatText,
		Label:       "Plain Text",
		Description: "Simple text file",
		Extension:   ".txt",
		ContentType: "text/plain",
		displayName: "Text file",
		failureName: "text file",
	},
}

// Formats returns the format catalogue in display order.
func Formats() []FormatInfo {
	out := make([]FormatInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the catalogue entry for f.
func Lookup(f Format) (FormatInfo, bool) {
	for _, info := range catalogue {
		if info.Format == f {
			return info, true
		}
	}
	return FormatInfo{}, false
}

// ParseFormat converts a user-supplied format name. Matching ignores case and
// surrounding whitespace.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	_, ok := Lookup(f)
	return f, ok
}

// Names returns the format identifiers in display order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for _, info := range catalogue {
		names = append(names, string(info.Format))
	}
	return names
}
