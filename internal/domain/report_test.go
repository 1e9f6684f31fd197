package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brintopos/brintopos/internal/domain"
)

func closing(ts string, till int64) domain.SummaryEntry {
	return domain.SummaryEntry{Timestamp: ts, Till: till}
}

func TestParseReportDay(t *testing.T) {
	d, err := domain.ParseReportDay("since", "2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	d, err = domain.ParseReportDay("since", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = domain.ParseReportDay("since", "01/05/2026")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportFilter_Match(t *testing.T) {
	since, _ := domain.ParseReportDay("since", "2026-05-01")
	until, _ := domain.ParseReportDay("until", "2026-05-02")
	front := int64(1)

	tests := []struct {
		name   string
		filter domain.ReportFilter
		entry  domain.SummaryEntry
		want   bool
	}{
		{"empty filter", domain.ReportFilter{}, closing("garbage", 7), true},
		{"till matches", domain.ReportFilter{Till: &front}, closing("2026-05-01T23:00:00Z", 1), true},
		{"other till", domain.ReportFilter{Till: &front}, closing("2026-05-01T23:00:00Z", 2), false},
		{"first day", domain.ReportFilter{Since: since, Until: until}, closing("2026-05-01T00:10:00Z", 1), true},
		{"last day late", domain.ReportFilter{Since: since, Until: until}, closing("2026-05-02T23:59:00Z", 1), true},
		{"local day kept", domain.ReportFilter{Since: since, Until: until}, closing("2026-05-02T23:30:00+06:00", 1), true},
		{"before", domain.ReportFilter{Since: since}, closing("2026-04-30T23:59:00Z", 1), false},
		{"after", domain.ReportFilter{Until: until}, closing("2026-05-03T00:01:00Z", 1), false},
		{"unreadable timestamp", domain.ReportFilter{Since: since}, closing("yesterday", 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.entry))
		})
	}
}

func TestReportFilter_ApplyKeepsOrder(t *testing.T) {
	bar := int64(2)
	entries := []domain.SummaryEntry{
		closing("2026-05-01T23:00:00Z", 2),
		closing("2026-05-01T23:05:00Z", 1),
		closing("2026-05-02T23:00:00Z", 2),
	}
	got := domain.ReportFilter{Till: &bar}.Apply(entries)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-05-01T23:00:00Z", got[0].Timestamp)
	assert.Equal(t, "2026-05-02T23:00:00Z", got[1].Timestamp)
}
