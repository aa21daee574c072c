// Package model provides value objects for input validation.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectID is the opaque identifier of a project.
type ProjectID string

// NewProjectID generates a fresh collision-resistant project ID.
func NewProjectID() ProjectID {
	return ProjectID(uuid.NewString())
}

// ParseProjectID validates a caller-supplied project ID.
func ParseProjectID(s string) (ProjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError("id", "project ID is required")
	}
	return ProjectID(s), nil
}

// String returns the ID string.
func (id ProjectID) String() string {
	return string(id)
}

// ProjectName represents a project name value object.
type ProjectName struct {
	value string
}

// NewProjectName creates a new project name value object.
func NewProjectName(name string) (*ProjectName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "project name is required")
	}
	return &ProjectName{value: name}, nil
}

// String returns the project name string.
func (p *ProjectName) String() string {
	return p.value
}

// dateLayout is the persisted form of a wedding date.
const dateLayout = "2006-01-02"

// displayLayout is the human readable form of a wedding date.
const displayLayout = "January 2, 2006"

// WeddingDate represents a calendar date without time of day.
type WeddingDate struct {
	value time.Time
}

// ParseWeddingDate parses YYYY-MM-DD or an RFC3339 timestamp.
func ParseWeddingDate(s string) (WeddingDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WeddingDate{}, NewValidationError("date", "wedding date is required")
	}
	t, err := parseDateTime(s)
	if err != nil {
		return WeddingDate{}, NewValidationError("date", "invalid date. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
	}
	return WeddingDate{value: normalizeToBeginOfDay(t)}, nil
}

// Time returns the date at midnight UTC.
func (d WeddingDate) Time() time.Time {
	return d.value
}

// IsZero reports whether the date is unset.
func (d WeddingDate) IsZero() bool {
	return d.value.IsZero()
}

// Before reports whether d is strictly earlier than other.
func (d WeddingDate) Before(other WeddingDate) bool {
	return d.value.Before(other.value)
}

// String returns the date as YYYY-MM-DD.
func (d WeddingDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.value.Format(dateLayout)
}

// Formatted returns the display string, e.g. "June 1, 2025".
func (d WeddingDate) Formatted() string {
	if d.IsZero() {
		return ""
	}
	return d.value.Format(displayLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d WeddingDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a date string.
func (d *WeddingDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseWeddingDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as a YYYY-MM-DD string.
func (d WeddingDate) MarshalYAML() (any, error) {
	return d.String(), nil
}

// normalizeToBeginOfDay keeps the calendar date of t and drops its time and zone.
func normalizeToBeginOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDateTime parses date string with flexible format support.
func parseDateTime(dateStr string) (time.Time, error) {
	// Try RFC3339 format first (with time)
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	// Try date-only format (YYYY-MM-DD)
	if t, err := time.Parse(dateLayout, dateStr); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date")
}
