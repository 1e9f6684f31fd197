package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brintopos/brintopos/internal/domain"
)

// ArchiveFile is where closing summaries are kept, relative to the config
// directory. Several tills may share one directory; entries carry the node.
const ArchiveFile = ".brintopos/reports/summaries.json"

// archiveVersion is bumped when the on-disk layout changes.
const archiveVersion = 1

type archiveDoc struct {
	Version int                   `json:"version"`
	Entries []domain.SummaryEntry `json:"entries"`
}

// FileArchive implements domain.SummaryArchive. It holds closing totals
// only; invoices are never written out.
type FileArchive struct{}

func New() *FileArchive {
	return &FileArchive{}
}

// Save appends entry. The file is replaced through a temp file so a crash
// mid-write leaves the previous closings intact.
func (a *FileArchive) Save(projectPath string, entry domain.SummaryEntry) error {
	doc, err := read(projectPath)
	if err != nil {
		return err
	}
	doc.Entries = append(doc.Entries, entry)

	fp := filepath.Join(projectPath, ArchiveFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp), ".summaries-*.json")
	if err != nil {
		return fmt.Errorf("staging %s: %w", ArchiveFile, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("staging %s: %w", ArchiveFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("staging %s: %w", ArchiveFile, err)
	}
	return os.Rename(tmp.Name(), fp)
}

// Load returns every closing in the order they were archived.
func (a *FileArchive) Load(projectPath string) ([]domain.SummaryEntry, error) {
	doc, err := read(projectPath)
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func read(projectPath string) (archiveDoc, error) {
	doc := archiveDoc{Version: archiveVersion}

	data, err := os.ReadFile(filepath.Join(projectPath, ArchiveFile))
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return archiveDoc{}, err
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return archiveDoc{}, fmt.Errorf("parsing %s: %w", ArchiveFile, err)
	}
	if doc.Version != archiveVersion {
		return archiveDoc{}, fmt.Errorf("%s: unsupported archive version %d", ArchiveFile, doc.Version)
	}
	return doc, nil
}
