package triage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidentiary/gavel/internal/common"
	"github.com/evidentiary/gavel/internal/model"
)

type fixture struct {
	cfg Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	evidenceDir := filepath.Join(root, "output")
	externalDir := filepath.Join(root, "external_data")
	outputDir := filepath.Join(root, "legal_exhibits")
	require.NoError(t, os.MkdirAll(evidenceDir, 0o750))
	require.NoError(t, os.MkdirAll(externalDir, 0o750))

	return &fixture{cfg: Config{
		EvidenceDir:   evidenceDir,
		ExternalDir:   externalDir,
		OutputDir:     outputDir,
		IntegrityDB:   filepath.Join(root, "evidence_integrity.db"),
		CaseID:        "FDSJ739",
		PreviewLength: 200,
	}}
}

func (f *fixture) writeEvidence(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.EvidenceDir, name), []byte(content), 0o600))
}

func (f *fixture) writeExternal(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.ExternalDir, name), []byte(content), 0o600))
}

func (f *fixture) seedIntegrity(t *testing.T, statements ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", f.cfg.IntegrityDB)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE integrity_validation (
		file_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		validation_date TEXT NOT NULL,
		notes TEXT
	)`)
	require.NoError(t, err)
	for _, stmt := range statements {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
}

const evidenceCSV = "filename,text_content,priority,date_extracted,file_hash\n" +
	"shot_001.png,physical assault occurred,HIGH,20240315,abc123\n" +
	"note_002.png,,UNKNOWN,20190101,\n" +
	"doc_003.pdf,missed support payment again,MEDIUM,20220601,deadbeef\n"

func TestRunFullTriage(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "batch.csv", evidenceCSV)
	f.seedIntegrity(t,
		`INSERT INTO integrity_validation VALUES ('abc123', 'VALID', '2024-04-01T00:00:00', 'validated at capture')`)

	summary, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.IngestedRecords)
	assert.Equal(t, 0, summary.ExternalRecords)
	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.Stats.Verified)
	assert.NotEmpty(t, summary.RunID)
	assert.FileExists(t, summary.IndexPath)
	assert.FileExists(t, summary.StatementPath)

	idx, err := os.Open(summary.IndexPath)
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	rows, err := csv.NewReader(idx).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Highest score first: HIGH assault 2024 = 10*10 + 2 = 102.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "102.00", rows[1][4])
	assert.Equal(t, "ASSAULT", rows[1][5])
	assert.Equal(t, "VERIFIED", rows[1][8])

	// MEDIUM financial 2022 = 5*5 + 1 = 26, hash missing from store.
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "26.00", rows[2][4])
	assert.Equal(t, "UNKNOWN", rows[2][8])

	// Empty text falls back to GENERAL, UNKNOWN priority, 2019 = 1.
	assert.Equal(t, "3", rows[3][0])
	assert.Equal(t, "1.00", rows[3][4])
	assert.Equal(t, "GENERAL", rows[3][5])
}

func TestRunWithExternalSources(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "batch.csv", "filename,text_content\nshot.png,general note\n")
	f.writeExternal(t, "gmail_messages.csv", "date,subject\n2023-01-05,hello\n2023-02-10,again\n")
	f.writeExternal(t, "takeout.geojson", `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},
		 "properties":{"timestamp":"2024-01-01T00:00:00Z"}}]}`)

	summary, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.IngestedRecords)
	assert.Equal(t, 2, summary.ExternalRecords)
	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.Stats.ByCategory["LOCATION"])
	assert.Equal(t, 1, summary.Stats.ByCategory["COMMUNICATION"])
}

func TestRunNoEvidenceIsFatal(t *testing.T) {
	f := newFixture(t)

	_, err := New(f.cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoEvidence))
}

func TestRunMissingCaseIDIsFatal(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "records.csv", "file_hash,text_content\nabc123,custody hearing notes\n")
	f.cfg.CaseID = ""

	_, err := New(f.cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}

func TestStatsWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "batch.csv", evidenceCSV)

	summary, err := New(f.cfg).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.Stats.ByCategory["ASSAULT"])
	assert.Equal(t, 1, summary.Stats.ByPriority[model.PriorityHigh])
	assert.Empty(t, summary.IndexPath)
	assert.NoDirExists(t, f.cfg.OutputDir)
}

// Two full runs over identical input must produce identical indices except
// for the embedded generation timestamp and run id columns/footer.
func TestRunDeterminism(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "batch.csv", evidenceCSV)

	first, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	firstRows := readIndex(t, first.IndexPath)
	secondRows := readIndex(t, second.IndexPath)
	require.Equal(t, len(firstRows), len(secondRows))

	for i := range firstRows {
		// Last column is the generation timestamp.
		assert.Equal(t, firstRows[i][:len(firstRows[i])-1], secondRows[i][:len(secondRows[i])-1],
			"row %d differs beyond the timestamp", i)
	}
}

func TestRunPartialFileFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	f.writeEvidence(t, "bad.csv", "text_content\n\"unterminated\n")
	f.writeEvidence(t, "good.csv", "text_content\ncustody order breach\n")

	summary, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Stats.Total)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "bad.csv")
}

func readIndex(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = fh.Close() }()

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}
