package exporter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/productforge/backend/internal/models"
)

// Page geometry and typography of the PDF export, in millimetres and points.
const (
	pdfMargin          = 20.0
	pdfTitleY          = 30.0
	pdfMetadataY       = 50.0
	pdfMetadataStep    = 10.0
	pdfMetadataGap     = 20.0
	pdfLineStep        = 7.0
	pdfFooterInset     = 40.0
	pdfFooterBaseline  = 10.0
	pdfTitleFontSize   = 20.0
	pdfMetaFontSize    = 10.0
	pdfBodyFontSize    = 12.0
	pdfFooterFontSize  = 8.0
	pdfFontFamily      = "Helvetica"
	pdfPageSize        = "A4"
	pdfUnit            = "mm"
	pdfOrientation     = "P"
	pdfCodePage        = "cp1252"
	pdfFooterFormatStr = "Page %d of %d"
)

// placedLine is a body line with its baseline position on a page.
type placedLine struct {
	Text string
	Y    float64
}

// paginate assigns wrapped body lines to pages. The first page starts at startY;
// a new page starting at the top margin is opened whenever the next baseline
// would fall below pageHeight minus the margin. The result always has at least one page.
func paginate(lines []string, startY, pageHeight float64) [][]placedLine {
	pages := [][]placedLine{{}}
	y := startY
	for _, line := range lines {
		if y > pageHeight-pdfMargin {
			pages = append(pages, []placedLine{})
			y = pdfMargin
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], placedLine{Text: line, Y: y})
		y += pdfLineStep
	}
	return pages
}

// wrapText breaks text into lines no wider than width. Explicit newlines are
// kept as line breaks and empty lines survive as blank lines. A single word
// wider than width is split across lines.
func wrapText(text string, width float64, measure func(string) float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			for measure(word) > width && len(word) > 1 {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				cut := fitPrefix(word, width, measure)
				lines = append(lines, word[:cut])
				word = word[cut:]
			}

			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= width || current == "" {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

// fitPrefix returns the length of the longest prefix of word that fits width,
// never less than one byte. Words are single-byte encoded at this point.
func fitPrefix(word string, width float64, measure func(string) float64) int {
	n := 1
	for n < len(word) && measure(word[:n+1]) <= width {
		n++
	}
	return n
}

// pdfRenderer lays out an A4 document with a title, an optional metadata
// block and the wrapped body text, then stamps "Page X of N" footers.
type pdfRenderer struct {
	compress bool
}

// NewPDFRenderer returns the renderer for FormatPDF.
func NewPDFRenderer() Renderer { return &pdfRenderer{compress: true} }

func (r *pdfRenderer) Format() Format { return FormatPDF }

func (r *pdfRenderer) Render(project *models.ExportableProject, opts Options) ([]byte, error) {
	n := Normalize(project)

	pdf := fpdf.New(pdfOrientation, pdfUnit, pdfPageSize, "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(n.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor(pdfCodePage)
	pageWidth, pageHeight := pdf.GetPageSize()

	// Lay out the body before drawing so the page count is known up front.
	pdf.SetFont(pdfFontFamily, "", pdfBodyFontSize)
	lines := wrapText(tr(n.Content), pageWidth-2*pdfMargin, pdf.GetStringWidth)

	bodyY := pdfMetadataY
	if opts.IncludeMetadata {
		bodyY += pdfMetadataStep + pdfMetadataGap
	}
	pages := paginate(lines, bodyY, pageHeight)

	for i, page := range pages {
		pdf.AddPage()

		if i == 0 {
			pdf.SetFont(pdfFontFamily, "B", pdfTitleFontSize)
			pdf.Text(pdfMargin, pdfTitleY, tr(n.Title))

			if opts.IncludeMetadata {
				pdf.SetFont(pdfFontFamily, "", pdfMetaFontSize)
				pdf.Text(pdfMargin, pdfMetadataY, tr("Type: "+n.Type))
				pdf.Text(pdfMargin, pdfMetadataY+pdfMetadataStep, tr("Created: "+n.Date))
			}
		}

		pdf.SetFont(pdfFontFamily, "", pdfBodyFontSize)
		for _, line := range page {
			pdf.Text(pdfMargin, line.Y, line.Text)
		}

		pdf.SetFont(pdfFontFamily, "", pdfFooterFontSize)
		pdf.Text(pageWidth-pdfFooterInset, pageHeight-pdfFooterBaseline,
			fmt.Sprintf(pdfFooterFormatStr, i+1, len(pages)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
