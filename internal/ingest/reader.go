// Package ingest reads evidence rows from delimited tabular files,
// normalizing heterogeneous column names into canonical evidence records.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/evidentiary/gavel/internal/common"
	"github.com/evidentiary/gavel/internal/model"
)

// Reader loads evidence records from every CSV file in a directory.
type Reader struct {
	aliases AliasTable
}

// NewReader creates a reader with the default column-alias table.
func NewReader() *Reader {
	return &Reader{aliases: DefaultAliases()}
}

// NewReaderWithAliases creates a reader with a custom alias table.
func NewReaderWithAliases(aliases AliasTable) *Reader {
	return &Reader{aliases: aliases}
}

// ReadDir reads all tabular files under dir. A malformed or unreadable
// file is skipped with a warning on the run log; only a missing directory
// listing is an error. Output order is file discovery order then row order.
func (r *Reader) ReadDir(ctx context.Context, dir string, runLog *common.RunLog) ([]model.EvidenceRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			runLog.Warnf("evidence directory not found: %s", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list evidence directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var records []model.EvidenceRecord
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := filepath.Join(dir, name)
		fileRecords, err := r.readFile(path)
		if err != nil {
			runLog.Warnf("skipping %s: %v", name, err)
			continue
		}
		records = append(records, fileRecords...)
		slog.Debug("loaded evidence file", "file", name, "records", len(fileRecords))
	}

	slog.Info("evidence ingest complete", "files", len(names), "records", len(records))
	return records, nil
}

// readFile parses one CSV file into evidence records.
func (r *Reader) readFile(path string) ([]model.EvidenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := r.aliases.resolve(header)

	base := filepath.Base(path)
	var records []model.EvidenceRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed row: %w", err)
		}

		rec := model.EvidenceRecord{
			SourceID:        cols.get(row, fieldSource),
			TextContent:     cols.get(row, fieldText),
			CapturedAt:      parseCaptureDate(cols.get(row, fieldDate)),
			Priority:        model.ParsePriority(cols.get(row, fieldPriority)),
			ContentHash:     strings.ToLower(cols.get(row, fieldHash)),
			PeopleMentioned: cols.get(row, fieldPeople),
			FilePath:        cols.get(row, fieldPath),
			FolderCategory:  cols.get(row, fieldFolder),
			SourceFile:      base,
		}
		records = append(records, rec)
	}

	return records, nil
}

// captureDateLayouts are tried in order. Year granularity is the minimum
// the score engine needs, so a bare year is accepted.
var captureDateLayouts = []string{
	"20060102",
	"2006-01-02",
	time.RFC3339,
	"2006",
}

func parseCaptureDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range captureDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
