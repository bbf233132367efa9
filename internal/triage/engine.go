// Package triage orchestrates the evidence pipeline: ingest, classify,
// score, verify, name, and index.
package triage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/evidentiary/gavel/internal/classify"
	"github.com/evidentiary/gavel/internal/common"
	"github.com/evidentiary/gavel/internal/external"
	"github.com/evidentiary/gavel/internal/index"
	"github.com/evidentiary/gavel/internal/ingest"
	"github.com/evidentiary/gavel/internal/integrity"
	"github.com/evidentiary/gavel/internal/model"
	"github.com/evidentiary/gavel/internal/naming"
	"github.com/evidentiary/gavel/internal/score"
)

// Config holds the directories and identifiers of one triage run.
type Config struct {
	EvidenceDir   string
	ExternalDir   string
	OutputDir     string
	IntegrityDB   string
	CaseID        string
	PreviewLength int
	ShowProgress  bool
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID           string
	GeneratedAt     time.Time
	IndexPath       string
	StatementPath   string
	Warnings        []string
	Stats           index.Stats
	IngestedRecords int
	ExternalRecords int
}

// Engine wires the pipeline stages together. Each stage produces new,
// fully-formed records; no stage mutates another's output in place.
type Engine struct {
	cfg        Config
	catalog    model.Catalog
	reader     *ingest.Reader
	adapter    *external.Adapter
	classifier *classify.Classifier
	scorer     *score.Engine
	assigner   *naming.Assigner
}

// New creates a triage engine over the default category catalog.
func New(cfg Config) *Engine {
	return NewWithCatalog(cfg, model.DefaultCatalog())
}

// NewWithCatalog creates a triage engine with an injected catalog.
func NewWithCatalog(cfg Config, catalog model.Catalog) *Engine {
	return &Engine{
		cfg:        cfg,
		catalog:    catalog,
		reader:     ingest.NewReader(),
		adapter:    external.NewAdapter(),
		classifier: classify.New(catalog),
		scorer:     score.New(catalog),
		assigner:   naming.New(catalog, cfg.CaseID),
	}
}

// Run executes the full triage: every record is classified, scored,
// verified, ranked, and written to the exhibit index with its paired
// defensibility statement.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	// The case identifier is embedded in every exhibit name; an empty
	// one would produce malformed names across the whole index.
	if e.cfg.CaseID == "" {
		return nil, fmt.Errorf("%w: case.id", common.ErrMissingConfig)
	}

	runLog := common.NewRunLog()

	records, ingested, externalCount, err := e.load(ctx, runLog)
	if err != nil {
		return nil, err
	}

	verifier, err := e.newVerifier(ctx)
	if err != nil {
		return nil, err
	}

	enriched, err := e.enrich(ctx, records, verifier)
	if err != nil {
		return nil, err
	}

	ranked := e.assigner.Assign(enriched)

	generatedAt := time.Now()
	runID := uuid.NewString()

	builder := index.NewBuilder(e.cfg.OutputDir, e.cfg.CaseID, e.cfg.PreviewLength)
	indexPath, statementPath, err := builder.Write(ranked, generatedAt, runID)
	if err != nil {
		return nil, common.NewUserError("failed to write exhibit index", err)
	}

	summary := &Summary{
		RunID:           runID,
		GeneratedAt:     generatedAt,
		IndexPath:       indexPath,
		StatementPath:   statementPath,
		Warnings:        runLog.Warnings(),
		Stats:           index.ComputeStats(ranked),
		IngestedRecords: ingested,
		ExternalRecords: externalCount,
	}

	slog.Info("triage complete",
		"run_id", runID,
		"exhibits", summary.Stats.Total,
		"verified", summary.Stats.Verified,
		"warnings", len(summary.Warnings))
	return summary, nil
}

// Stats runs the pipeline through verification and aggregates counts
// without assigning exhibit identity or writing any files.
func (e *Engine) Stats(ctx context.Context) (*Summary, error) {
	runLog := common.NewRunLog()

	records, ingested, externalCount, err := e.load(ctx, runLog)
	if err != nil {
		return nil, err
	}

	verifier, err := e.newVerifier(ctx)
	if err != nil {
		return nil, err
	}

	enriched, err := e.enrich(ctx, records, verifier)
	if err != nil {
		return nil, err
	}

	return &Summary{
		GeneratedAt:     time.Now(),
		Warnings:        runLog.Warnings(),
		Stats:           index.ComputeStats(enriched),
		IngestedRecords: ingested,
		ExternalRecords: externalCount,
	}, nil
}

// load gathers records from the tabular evidence directory and the
// external data directory. Zero records from every source is fatal: an
// empty index would look complete while proving nothing.
func (e *Engine) load(ctx context.Context, runLog *common.RunLog) ([]model.EvidenceRecord, int, int, error) {
	ingested, err := e.reader.ReadDir(ctx, e.cfg.EvidenceDir, runLog)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read evidence tables: %w", err)
	}

	externalRecords, err := e.adapter.Scan(ctx, e.cfg.ExternalDir, runLog)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to scan external data: %w", err)
	}

	records := append(ingested, externalRecords...)
	if len(records) == 0 {
		return nil, 0, 0, common.NewUserError(
			fmt.Sprintf("no evidence records found under %s or %s", e.cfg.EvidenceDir, e.cfg.ExternalDir),
			common.ErrNoEvidence)
	}

	return records, len(ingested), len(externalRecords), nil
}

func (e *Engine) newVerifier(ctx context.Context) (*integrity.Verifier, error) {
	snapshot, err := integrity.LoadSnapshot(ctx, e.cfg.IntegrityDB)
	if err != nil {
		return nil, fmt.Errorf("failed to load integrity store: %w", err)
	}
	return integrity.NewVerifier(snapshot), nil
}

// enrich classifies, scores, and verifies every record, returning a new
// collection.
func (e *Engine) enrich(ctx context.Context, records []model.EvidenceRecord, verifier *integrity.Verifier) ([]model.EvidenceRecord, error) {
	var bar *progressbar.ProgressBar
	if e.cfg.ShowProgress {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Triaging evidence..."),
		)
	}

	enriched := make([]model.EvidenceRecord, 0, len(records))
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec.Categories = e.classifier.Classify(rec)
		rec.WeightedScore = e.scorer.Score(rec)
		rec.VerificationStatus, rec.VerificationNotes = verifier.Verify(rec.ContentHash)
		enriched = append(enriched, rec)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return enriched, nil
}
