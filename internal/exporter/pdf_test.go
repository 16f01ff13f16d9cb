package exporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productforge/backend/internal/models"
)

// charWidth measures every byte as one unit.
func charWidth(s string) float64 { return float64(len(s)) }

func TestWrapText(t *testing.T) {
	lines := wrapText("aaa bbb ccc\n\ndd", 7, charWidth)

	assert.Equal(t, []string{"aaa bbb", "ccc", "", "dd"}, lines)
}

func TestWrapText_LongWord(t *testing.T) {
	lines := wrapText("ab abcdefghij", 4, charWidth)

	assert.Equal(t, []string{"ab", "abcd", "efgh", "ij"}, lines)
}

func TestWrapText_CRLF(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, wrapText("a\r\nb", 10, charWidth))
}

func TestPaginate(t *testing.T) {
	const pageHeight = 297.0

	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "line"
	}

	pages := paginate(lines, 80, pageHeight)

	require.Len(t, pages, 2)
	// Baselines 80, 87, ... 276 fit on the first page; 283 exceeds 297-20.
	assert.Len(t, pages[0], 29)
	assert.Equal(t, 80.0, pages[0][0].Y)
	assert.Equal(t, 276.0, pages[0][28].Y)
	assert.Len(t, pages[1], 11)
	assert.Equal(t, 20.0, pages[1][0].Y)
	assert.Equal(t, 27.0, pages[1][1].Y)
}

func TestPaginate_Empty(t *testing.T) {
	pages := paginate(nil, 50, 297)

	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])
}

func TestPDFRenderer_Fallbacks(t *testing.T) {
	r := &pdfRenderer{compress: false}

	data, err := r.Render(&models.ExportableProject{
		Title:     "undefined",
		Content:   "null",
		CreatedAt: "not-a-date",
	}, Options{IncludeMetadata: true})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "(Untitled Project) Tj")
	assert.Contains(t, out, "(No content available) Tj")
	assert.Contains(t, out, "(Type: Digital Product) Tj")
	assert.Contains(t, out, "(Created: Invalid Date) Tj")
	assert.Contains(t, out, "(Page 1 of 1) Tj")
}

func TestPDFRenderer_MultiPageFooters(t *testing.T) {
	r := &pdfRenderer{compress: false}

	paragraphs := make([]string, 120)
	for i := range paragraphs {
		paragraphs[i] = "Paragraph text"
	}

	data, err := r.Render(&models.ExportableProject{
		Title:   "Long Guide",
		Content: strings.Join(paragraphs, "\n"),
	}, Options{})
	require.NoError(t, err)

	// 120 lines from y=50 on A4: 33 on page one, 37 on each following page.
	out := string(data)
	assert.Contains(t, out, "(Page 1 of 4) Tj")
	assert.Contains(t, out, "(Page 4 of 4) Tj")
	assert.NotContains(t, out, "of 5")
}

func TestPDFRenderer_Compressed(t *testing.T) {
	data, err := NewPDFRenderer().Render(&models.ExportableProject{Title: "Secret Title", Content: "body"}, Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	assert.NotContains(t, string(data), "(Secret Title) Tj")
}
