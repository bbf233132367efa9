// Package index assembles finalized evidence records into the exhibit
// catalog and its companion defensibility statement.
package index

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/evidentiary/gavel/internal/model"
)

// Columns is the fixed column set of the exhibit index, in output order.
var Columns = []string{
	"exhibit_number",
	"exhibit_name",
	"case_id",
	"priority",
	"weighted_score",
	"categories",
	"captured_at",
	"content_hash",
	"verification_status",
	"source_id",
	"file_path",
	"folder_category",
	"people_mentioned",
	"source_file",
	"text_preview",
	"verification_notes",
	"generation_date",
}

// categoryDelimiter joins multiple categories in one index cell.
const categoryDelimiter = "; "

// Builder writes the exhibit index CSV and the defensibility statement.
type Builder struct {
	outputDir  string
	caseID     string
	previewLen int
}

// NewBuilder creates a builder writing into outputDir.
func NewBuilder(outputDir, caseID string, previewLen int) *Builder {
	if previewLen <= 0 {
		previewLen = 200
	}
	return &Builder{
		outputDir:  outputDir,
		caseID:     caseID,
		previewLen: previewLen,
	}
}

// Write serializes the ordered record collection as one index CSV and one
// statement text file, both stamped with the same run timestamp so the pair
// is never split across runs. Files are written atomically: a partial
// output never replaces or masquerades as a complete index.
func (b *Builder) Write(records []model.EvidenceRecord, generatedAt time.Time, runID string) (indexPath, statementPath string, err error) {
	if err := os.MkdirAll(b.outputDir, 0o750); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := generatedAt.Format("20060102_150405")
	indexPath = filepath.Join(b.outputDir, fmt.Sprintf("EXHIBIT_INDEX_%s_%s.csv", b.caseID, stamp))
	statementPath = filepath.Join(b.outputDir, fmt.Sprintf("DEFENSIBILITY_STATEMENT_%s_%s.txt", b.caseID, stamp))

	if err := b.writeIndex(indexPath, records, generatedAt); err != nil {
		return "", "", err
	}

	statement := b.Statement(records, generatedAt, runID)
	if err := atomicWrite(statementPath, []byte(statement)); err != nil {
		return "", "", fmt.Errorf("failed to write defensibility statement: %w", err)
	}

	return indexPath, statementPath, nil
}

func (b *Builder) writeIndex(path string, records []model.EvidenceRecord, generatedAt time.Time) error {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}

	generated := generatedAt.Format(time.RFC3339)
	for i := range records {
		if err := w.Write(b.row(&records[i], generated)); err != nil {
			return fmt.Errorf("failed to write index row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush index: %w", err)
	}

	if err := atomicWrite(path, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to write exhibit index: %w", err)
	}
	return nil
}

func (b *Builder) row(rec *model.EvidenceRecord, generated string) []string {
	capturedAt := ""
	if !rec.CapturedAt.IsZero() {
		capturedAt = rec.CapturedAt.Format("2006-01-02")
	}

	return []string{
		strconv.Itoa(rec.ExhibitNumber),
		rec.ExhibitName,
		b.caseID,
		string(rec.Priority),
		strconv.FormatFloat(rec.WeightedScore, 'f', 2, 64),
		strings.Join(rec.Categories, categoryDelimiter),
		capturedAt,
		rec.ContentHash,
		string(rec.VerificationStatus),
		rec.SourceID,
		rec.FilePath,
		rec.FolderCategory,
		rec.PeopleMentioned,
		rec.SourceFile,
		truncate(rec.TextContent, b.previewLen),
		rec.VerificationNotes,
		generated,
	}
}

// atomicWrite writes via a temp file in the same directory and renames it
// into place, so abnormal termination never leaves a partial file under
// the final name.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gavel-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
