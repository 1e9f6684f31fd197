package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/brintopos/brintopos/internal/adapters/inbound/cli"
	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArchive(t *testing.T, dir string) {
	t.Helper()
	a := reports.New()
	for _, e := range []domain.SummaryEntry{
		{Timestamp: "2026-05-01T22:00:00Z", Till: 1},
		{Timestamp: "2026-05-01T22:10:00Z", Till: 2},
		{Timestamp: "2026-05-02T22:00:00Z", Till: 1},
	} {
		require.NoError(t, a.Save(dir, e))
	}
}

func runReport(t *testing.T, dir string, args ...string) ([]domain.SummaryEntry, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", dir, "report", "--json"}, args...))
	if err := root.Execute(); err != nil {
		return nil, err
	}
	var entries []domain.SummaryEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	return entries, nil
}

func TestReportCmd_Filters(t *testing.T) {
	dir := t.TempDir()
	seedArchive(t, dir)

	all, err := runReport(t, dir)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byTill, err := runReport(t, dir, "--till", "1")
	require.NoError(t, err)
	require.Len(t, byTill, 2)
	assert.Equal(t, "2026-05-02T22:00:00Z", byTill[1].Timestamp)

	byDay, err := runReport(t, dir, "--since", "2026-05-01", "--until", "2026-05-01")
	require.NoError(t, err)
	assert.Len(t, byDay, 2)

	both, err := runReport(t, dir, "--till", "2", "--since", "2026-05-02")
	require.NoError(t, err)
	assert.Empty(t, both)
}

func TestReportCmd_BadDay(t *testing.T) {
	dir := t.TempDir()
	seedArchive(t, dir)

	_, err := runReport(t, dir, "--since", "May 1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
