package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/productforge/backend/internal/models"
)

// Fallback values substituted for missing project fields.
const (
	FallbackTitle   = "Untitled Project"
	FallbackContent = "No content available"
	FallbackType    = "Digital Product"
	UnknownDate     = "Unknown Date"
	InvalidDate     = "Invalid Date"
)

// dateLayouts are tried in order when parsing a project's creation date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalized holds the display-safe values every renderer works from.
type Normalized struct {
	Title   string
	Content string
	Type    string
	Date    string
}

// Normalize applies the fallback rules to a project.
// A nil project normalizes to all fallbacks.
func Normalize(p *models.ExportableProject) Normalized {
	if p == nil {
		p = &models.ExportableProject{}
	}
	return Normalized{
		Title:   orFallback(p.Title, FallbackTitle),
		Content: orFallback(p.Content, FallbackContent),
		Type:    orFallback(p.Type, FallbackType),
		Date:    FormatDate(p.CreatedAt),
	}
}

// isMissing treats serialization placeholders as absent values.
func isMissing(s string) bool {
	return s == "" || s == "undefined" || s == "null"
}

func orFallback(s, fallback string) string {
	if isMissing(s) {
		return fallback
	}
	return s
}

// FormatDate renders an ISO-8601 timestamp as a US short date (M/D/YYYY, UTC).
// Missing values yield "Unknown Date" and unparseable ones "Invalid Date".
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if isMissing(raw) {
		return UnknownDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
		}
	}
	return InvalidDate
}

// FilenameStem derives a download filename stem from a display title.
// The title is lower-cased and every character outside [a-z0-9] becomes "_",
// one underscore per character.
func FilenameStem(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
