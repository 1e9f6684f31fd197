package domain

import (
	"strings"
	"time"
)

// ReportDayLayout is how report days are written on the command line.
const ReportDayLayout = "2006-01-02"

// ReportFilter narrows archived summaries. Zero fields match everything.
// Since and Until are service days, both inclusive.
type ReportFilter struct {
	Till  *int64
	Since time.Time
	Until time.Time
}

// ParseReportDay parses a YYYY-MM-DD day. Empty input is the zero time.
func ParseReportDay(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(ReportDayLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError(field, "want YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

// Match reports whether e falls inside the filter. Entries with an
// unreadable timestamp never match a date bound.
func (f ReportFilter) Match(e SummaryEntry) bool {
	if f.Till != nil && e.Till != *f.Till {
		return false
	}
	if f.Since.IsZero() && f.Until.IsZero() {
		return true
	}
	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return false
	}
	// the day the till was closed, in the till's own zone
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	if !f.Since.IsZero() && day.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && day.After(f.Until) {
		return false
	}
	return true
}

// Apply returns the matching entries in archive order.
func (f ReportFilter) Apply(entries []SummaryEntry) []SummaryEntry {
	out := make([]SummaryEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
