// Package models provides data structures shared by the ProductForge service layers.
// This file contains models related to project export and export history.
package models

import (
	"time"

	"github.com/productforge/backend/internal/constants"
)

// ExportableProject is a project record as it is handed to the export engine.
// The project store lives in the external backend; this service only receives
// already-fetched records, so every field may be missing or malformed.
type ExportableProject struct {
	// ID is the identifier assigned by the project store
	ID string `json:"id"`

	// Title is the human-readable project name
	Title string `json:"title"`

	// Content is the generated body text, usually multi-paragraph
	Content string `json:"content"`

	// Type is the kind of digital product (e-book, course, checklist, ...)
	Type string `json:"type"`

	// CreatedAt is an ISO-8601 timestamp string as stored by the project store
	CreatedAt string `json:"createdAt"`

	// Metadata carries free-form attributes; renderers ignore it
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ExportHistoryEntry records a single export attempt.
// The JSON shape matches the records the browser client keeps, so histories
// written by either side can be read by the other.
type ExportHistoryEntry struct {
	// ProjectID is empty when the attempt had no project
	ProjectID string `json:"projectId"`

	// ProjectTitle is the title as supplied, before fallback substitution
	ProjectTitle string `json:"projectTitle"`

	// Format is the requested export format
	Format string `json:"format"`

	// Timestamp is the ISO-8601 time of the attempt
	Timestamp string `json:"timestamp"`

	// Success reports whether an artifact was produced
	Success bool `json:"success"`

	// Message is the human-readable outcome
	Message string `json:"message"`
}

// NewExportHistoryEntry builds a history entry for an export attempt made at the given time.
//
// Parameters:
//   - project: The project that was exported, may be nil
//   - format: The requested export format
//   - success: Whether the export produced an artifact
//   - message: The outcome message returned to the caller
//   - at: The time of the attempt
//
// Returns:
//   - A new ExportHistoryEntry with the timestamp in UTC RFC 3339 form
func NewExportHistoryEntry(project *ExportableProject, format string, success bool, message string, at time.Time) ExportHistoryEntry {
	entry := ExportHistoryEntry{
		Format:    format,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Success:   success,
		Message:   message,
	}
	if project != nil {
		entry.ProjectID = project.ID
		entry.ProjectTitle = project.Title
	}
	return entry
}

// KeyValue is a single row of the generic key-value store backing export history.
type KeyValue struct {
	Key       string    `json:"key" db:"store_key"`
	Value     []byte    `json:"value" db:"store_value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the KeyValue model.
func (kv *KeyValue) TableName() string {
	return constants.TableKeyValueStore
}

// ExportStats summarizes an export history.
type ExportStats struct {
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	ByFormat   map[string]int `json:"byFormat"`

	// LastExportAt is the timestamp of the newest entry, empty when there is none
	LastExportAt string `json:"lastExportAt,omitempty"`
}

// NewExportStats counts the entries of a newest-first history.
func NewExportStats(entries []ExportHistoryEntry) ExportStats {
	stats := ExportStats{ByFormat: map[string]int{}}
	for _, e := range entries {
		stats.Total++
		if e.Success {
			stats.Successful++
		} else {
			stats.Failed++
		}
		stats.ByFormat[e.Format]++
	}
	if len(entries) > 0 {
		stats.LastExportAt = entries[0].Timestamp
	}
	return stats
}
