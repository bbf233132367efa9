package ingest

import "strings"

// field identifies a logical column of an evidence table.
type field int

const (
	fieldHash field = iota
	fieldText
	fieldDate
	fieldPriority
	fieldSource
	fieldPath
	fieldFolder
	fieldPeople
)

// AliasTable maps each logical field to an ordered list of recognized
// header names. The first alias present in a file's header wins; the
// resolution happens once per file, not per row.
type AliasTable map[field][]string

// DefaultAliases covers the header drift observed across upstream OCR
// exports.
func DefaultAliases() AliasTable {
	return AliasTable{
		fieldHash:     {"file_hash", "original_file_sha256", "sha256", "content_hash"},
		fieldText:     {"text_content", "extracted_text", "ocr_text", "text"},
		fieldDate:     {"date_extracted", "capture_date", "captured_at", "date"},
		fieldPriority: {"priority", "priority_level"},
		fieldSource:   {"filename", "file_name", "source_file"},
		fieldPath:     {"file_path", "filepath", "path"},
		fieldFolder:   {"folder_category", "folder", "category_folder"},
		fieldPeople:   {"people_mentioned", "people", "names_mentioned"},
	}
}

// columnMap holds the resolved header position of each logical field for
// one input file. Missing fields map to -1.
type columnMap map[field]int

// resolve matches a header row against the alias table. Header comparison
// is case-insensitive and ignores surrounding whitespace.
func (t AliasTable) resolve(header []string) columnMap {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(columnMap, len(t))
	for f, aliases := range t {
		cols[f] = -1
		for _, alias := range aliases {
			if idx, ok := positions[alias]; ok {
				cols[f] = idx
				break
			}
		}
	}
	return cols
}

// get returns the value of a logical field from a row, or "" when the
// field is unmapped or the row is short.
func (c columnMap) get(row []string, f field) string {
	idx, ok := c[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
