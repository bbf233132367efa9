package integrity

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/evidentiary/gavel/internal/model"
)

func snapshotFixture() *Snapshot {
	return NewSnapshot([]Record{
		{Hash: "abc123", Status: "clean", ValidatedAt: "2024-01-01T00:00:00", Notes: "validated at capture"},
		{Hash: "fADE01", Status: "VALID", ValidatedAt: "2024-02-01T00:00:00"},
		{Hash: "bad999", Status: "suspicious", ValidatedAt: "2024-03-01T00:00:00", Notes: "truncated JPEG header"},
		{Hash: "corr00", Status: "corrupted", ValidatedAt: "2024-03-02T00:00:00", Notes: "size mismatch"},
	})
}

func TestVerify(t *testing.T) {
	verifier := NewVerifier(snapshotFixture())

	tests := []struct {
		name       string
		hash       string
		wantStatus model.VerificationStatus
		wantNotes  string
	}{
		{"absent hash", "", model.StatusUnknown, ""},
		{"whitespace hash", "   ", model.StatusUnknown, ""},
		{"lookup miss", "deadbeef", model.StatusUnknown, ""},
		{"clean status", "abc123", model.StatusVerified, "validated at capture"},
		{"clean status is case-insensitive", "fade01", model.StatusVerified, ""},
		{"hash match is case-insensitive", "ABC123", model.StatusVerified, "validated at capture"},
		{"suspicious status", "bad999", model.StatusWarning, "truncated JPEG header"},
		{"corrupted status", "corr00", model.StatusWarning, "size mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, notes := verifier.Verify(tt.hash)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if notes != tt.wantNotes {
				t.Errorf("notes = %q, want %q", notes, tt.wantNotes)
			}
		})
	}
}

// Re-verifying the same hash against an unchanged snapshot must yield the
// same status on every call.
func TestVerifyIdempotent(t *testing.T) {
	verifier := NewVerifier(snapshotFixture())

	for _, hash := range []string{"abc123", "bad999", "deadbeef", ""} {
		firstStatus, firstNotes := verifier.Verify(hash)
		for i := 0; i < 20; i++ {
			status, notes := verifier.Verify(hash)
			if status != firstStatus || notes != firstNotes {
				t.Fatalf("verify(%q) call %d = (%s, %q), first call = (%s, %q)",
					hash, i, status, notes, firstStatus, firstNotes)
			}
		}
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	snapshot, err := LoadSnapshot(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	if err != nil {
		t.Fatalf("missing database should not be an error: %v", err)
	}
	if snapshot.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d records", snapshot.Len())
	}

	status, _ := NewVerifier(snapshot).Verify("abc123")
	if status != model.StatusUnknown {
		t.Errorf("status against empty snapshot = %s, want UNKNOWN", status)
	}
}

func TestLoadSnapshotEmptyPath(t *testing.T) {
	snapshot, err := LoadSnapshot(context.Background(), "")
	if err != nil {
		t.Fatalf("empty path should not be an error: %v", err)
	}
	if snapshot.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d records", snapshot.Len())
	}
}

func TestLoadSnapshotLatestRowWins(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "integrity.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	setup := []string{
		`CREATE TABLE integrity_validation (
			file_hash TEXT NOT NULL,
			status TEXT NOT NULL,
			validation_date TEXT NOT NULL,
			notes TEXT
		)`,
		`INSERT INTO integrity_validation VALUES ('abc123', 'VALID', '2024-01-01T00:00:00', NULL)`,
		`INSERT INTO integrity_validation VALUES ('abc123', 'suspicious', '2024-05-01T00:00:00', 'reprocessed with errors')`,
		`INSERT INTO integrity_validation VALUES ('def456', 'VALID', '2024-02-01T00:00:00', 'ok')`,
	}
	for _, stmt := range setup {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("fixture setup failed: %v", err)
		}
	}

	snapshot, err := LoadSnapshot(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("expected 2 distinct hashes, got %d", snapshot.Len())
	}

	verifier := NewVerifier(snapshot)

	status, notes := verifier.Verify("abc123")
	if status != model.StatusWarning {
		t.Errorf("latest row for abc123 should win: status = %s, want WARNING", status)
	}
	if notes != "reprocessed with errors" {
		t.Errorf("notes = %q", notes)
	}

	status, _ = verifier.Verify("def456")
	if status != model.StatusVerified {
		t.Errorf("status for def456 = %s, want VERIFIED", status)
	}
}
