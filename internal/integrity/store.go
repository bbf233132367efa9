// Package integrity cross-references evidence content hashes against the
// external integrity-scanning database.
package integrity

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Record is one integrity validation entry, keyed by content hash.
type Record struct {
	Hash        string
	Status      string
	ValidatedAt string
	Notes       string
}

// Snapshot is an immutable in-memory view of the integrity store, loaded
// once per run. Re-verifying against the same snapshot always reproduces
// the same result.
type Snapshot struct {
	records map[string]Record
}

// EmptySnapshot returns a snapshot with no records; every lookup misses.
func EmptySnapshot() *Snapshot {
	return &Snapshot{records: map[string]Record{}}
}

// NewSnapshot builds a snapshot from explicit records, for tests and
// non-SQLite stores. Later records win on hash collision.
func NewSnapshot(records []Record) *Snapshot {
	byHash := make(map[string]Record, len(records))
	for _, r := range records {
		byHash[normalizeHash(r.Hash)] = r
	}
	return &Snapshot{records: byHash}
}

// LoadSnapshot reads the integrity database at dbPath. The store is
// external and read-only from this pipeline's perspective; a missing file
// is not an error and yields an empty snapshot.
func LoadSnapshot(ctx context.Context, dbPath string) (*Snapshot, error) {
	if dbPath == "" {
		return EmptySnapshot(), nil
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		slog.Info("integrity database not found, verification disabled", "path", dbPath)
		return EmptySnapshot(), nil
	}

	db, err := sql.Open("sqlite3", dbPath+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open integrity database: %w", err)
	}
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping integrity database: %w", err)
	}

	// Ascending validation date so the newest row per hash wins.
	query := `
		SELECT file_hash, status, validation_date, COALESCE(notes, '')
		FROM integrity_validation
		ORDER BY validation_date`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query integrity records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make(map[string]Record)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Hash, &r.Status, &r.ValidatedAt, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan integrity record: %w", err)
		}
		records[normalizeHash(r.Hash)] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating integrity records: %w", err)
	}

	slog.Info("loaded integrity snapshot", "path", dbPath, "hashes", len(records))
	return &Snapshot{records: records}, nil
}

// Lookup returns the newest integrity record for a hash. Lookups are by
// exact hash match only; a miss is not an error.
func (s *Snapshot) Lookup(hash string) (Record, bool) {
	r, ok := s.records[normalizeHash(hash)]
	return r, ok
}

// Len returns the number of distinct hashes in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

func normalizeHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}
