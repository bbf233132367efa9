// Package external converts auxiliary evidence sources — geodata tracks and
// email-export tables — into canonical evidence records with synthesized
// identity.
package external

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evidentiary/gavel/internal/common"
	"github.com/evidentiary/gavel/internal/model"
)

// Source labels recorded in SourceFile for synthesized records.
const (
	sourceGeoJSON = "EXTERNAL_GEOJSON"
	sourceEmail   = "EXTERNAL_EMAIL"
)

// Adapter scans a directory for external evidence files. Detection is
// heuristic and documented as best-effort: geodata by extension, email
// exports by filename substring.
type Adapter struct{}

// NewAdapter creates an external source adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Scan walks dir and synthesizes one evidence record per recognized file.
// An absent or empty directory contributes zero records. Per-file parse
// failures are warnings, not fatal.
func (a *Adapter) Scan(ctx context.Context, dir string, runLog *common.RunLog) ([]model.EvidenceRecord, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("external data directory not found", "path", dir)
		return nil, nil
	}

	var geoFiles, emailFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case isGeoFile(path):
			geoFiles = append(geoFiles, path)
		case isEmailFile(path):
			emailFiles = append(emailFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan external directory: %w", err)
	}
	sort.Strings(geoFiles)
	sort.Strings(emailFiles)

	var records []model.EvidenceRecord
	for _, path := range geoFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rec, err := a.geoRecord(path)
		if err != nil {
			runLog.Warnf("skipping geodata file %s: %v", filepath.Base(path), err)
			continue
		}
		records = append(records, rec)
	}
	for _, path := range emailFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rec, err := a.emailRecord(path)
		if err != nil {
			runLog.Warnf("skipping email export %s: %v", filepath.Base(path), err)
			continue
		}
		records = append(records, rec)
	}

	slog.Info("external scan complete",
		"geodata_files", len(geoFiles),
		"email_files", len(emailFiles),
		"records", len(records))
	return records, nil
}

func isGeoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return true
	}
	return false
}

func isEmailFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
	return strings.Contains(stem, "email") || strings.Contains(stem, "gmail")
}

// hashFile computes the full-file SHA-256 digest. No upstream hash exists
// for external sources, so this becomes the record's content hash.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file for hashing: %w", err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}
