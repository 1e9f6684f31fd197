package reports_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(ts, revenue string, count int) domain.SummaryEntry {
	return domain.SummaryEntry{
		Timestamp: ts,
		Till:      1,
		Summary: domain.LedgerSummary{
			InvoiceCount: count,
			ActiveCount:  count,
			Revenue:      domain.MustMoney(revenue),
			ByMethod: map[domain.PaymentMethod]domain.MethodTotal{
				domain.PaymentCash: {Count: count, Total: domain.MustMoney(revenue)},
			},
		},
	}
}

func TestArchive_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	a := reports.New()

	require.NoError(t, a.Save(dir, entry("2026-02-25T22:00:00Z", "1050.00", 1)))

	entries, err := a.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1050", entries[0].Summary.Revenue.String())
	assert.Equal(t, 1, entries[0].Summary.ByMethod[domain.PaymentCash].Count)
}

func TestArchive_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	a := reports.New()

	require.NoError(t, a.Save(dir, entry("t1", "100", 1)))
	require.NoError(t, a.Save(dir, entry("t2", "250.50", 2)))
	require.NoError(t, a.Save(dir, entry("t3", "900", 5)))

	entries, err := a.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "t1", entries[0].Timestamp)
	assert.Equal(t, 5, entries[2].Summary.InvoiceCount)
}

func TestArchive_LoadEmpty(t *testing.T) {
	entries, err := reports.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchive_CreatesDirectory(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "deep", "nested")
	a := reports.New()

	require.NoError(t, a.Save(nestedDir, entry("t1", "1", 1)))

	entries, err := a.Load(nestedDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestArchive_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, reports.ArchiveFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0644))

	_, err := reports.New().Load(dir)
	assert.Error(t, err)
}

func TestArchive_WritesVersionedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, reports.New().Save(dir, entry("t1", "5", 1)))

	data, err := os.ReadFile(filepath.Join(dir, reports.ArchiveFile))
	require.NoError(t, err)

	var doc struct {
		Version int               `json:"version"`
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Entries, 1)

	// nothing staged is left next to the archive
	files, err := os.ReadDir(filepath.Dir(filepath.Join(dir, reports.ArchiveFile)))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestArchive_UnknownVersion(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, reports.ArchiveFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte(`{"version": 7, "entries": []}`), 0644))

	_, err := reports.New().Load(dir)
	assert.ErrorContains(t, err, "unsupported archive version 7")

	// a bad archive is never overwritten
	assert.Error(t, reports.New().Save(dir, entry("t1", "1", 1)))
	data, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 7`)
}

func TestArchive_LegacyArrayRejected(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, reports.ArchiveFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte(`[]`), 0644))

	_, err := reports.New().Load(dir)
	assert.Error(t, err)
}
