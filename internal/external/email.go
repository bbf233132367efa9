package external

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/evidentiary/gavel/internal/model"
)

// dateHeaders are the column names recognized as a message date in email
// export tables.
var dateHeaders = []string{"date", "timestamp", "sent", "sent_at"}

// emailRecord summarizes an email export table as a single evidence
// record: message count plus the date range across all rows.
func (a *Adapter) emailRecord(path string) (model.EvidenceRecord, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return model.EvidenceRecord{}, err
	}
	if len(rows) == 0 {
		return model.EvidenceRecord{}, fmt.Errorf("empty email table")
	}

	header, body := rows[0], rows[1:]
	dateCol := findDateColumn(header)

	dates := make([]string, 0, len(body))
	if dateCol >= 0 {
		for _, row := range body {
			if dateCol < len(row) && strings.TrimSpace(row[dateCol]) != "" {
				dates = append(dates, strings.TrimSpace(row[dateCol]))
			}
		}
	}
	sort.Strings(dates)

	summary := fmt.Sprintf("%d email messages", len(body))
	var capturedAt time.Time
	if len(dates) > 0 {
		first, last := dates[0], dates[len(dates)-1]
		summary = fmt.Sprintf("%d email messages from %s to %s", len(body), first, last)
		if t, ok := parseEmailDate(last); ok {
			capturedAt = t
		}
	}

	hash, err := hashFile(path)
	if err != nil {
		return model.EvidenceRecord{}, err
	}

	return model.EvidenceRecord{
		SourceID:       filepath.Base(path),
		TextContent:    summary,
		CapturedAt:     capturedAt,
		Priority:       model.PriorityHigh,
		ContentHash:    hash,
		FilePath:       path,
		FolderCategory: "communication",
		SourceFile:     sourceEmail,
		Categories:     []string{"COMMUNICATION"},
	}, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open email export: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse email export: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open email workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("email workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read email worksheet: %w", err)
	}
	return rows, nil
}

func findDateColumn(header []string) int {
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, candidate := range dateHeaders {
			if name == candidate {
				return i
			}
		}
	}
	return -1
}

var emailDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEmailDate(s string) (time.Time, bool) {
	for _, layout := range emailDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
