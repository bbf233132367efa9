// Package model defines the core domain types shared across the triage pipeline.
package model

import (
	"strings"
	"time"
)

// Priority is the upstream-assigned urgency tier of an evidence record.
type Priority string

const (
	// PriorityCritical marks evidence requiring immediate attention.
	PriorityCritical Priority = "CRITICAL"
	// PriorityHigh marks evidence of high legal relevance.
	PriorityHigh Priority = "HIGH"
	// PriorityMedium marks evidence of moderate legal relevance.
	PriorityMedium Priority = "MEDIUM"
	// PriorityLow marks evidence of low legal relevance.
	PriorityLow Priority = "LOW"
	// PriorityUnknown is the default when upstream processing supplied no tier.
	PriorityUnknown Priority = "UNKNOWN"
)

// ParsePriority normalizes a raw priority string from an input file.
// Unrecognized or empty values map to PriorityUnknown.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityCritical:
		return PriorityCritical
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityUnknown
	}
}

// VerificationStatus is the outcome of cross-referencing a record's content
// hash against the integrity store.
type VerificationStatus string

const (
	// StatusVerified means the hash matched a clean integrity record.
	StatusVerified VerificationStatus = "VERIFIED"
	// StatusWarning means the integrity store flagged the hash.
	StatusWarning VerificationStatus = "WARNING"
	// StatusUnknown means no hash was available or no integrity record matched.
	StatusUnknown VerificationStatus = "UNKNOWN"
)

// EvidenceRecord is the canonical unit processed by the pipeline.
//
// Records are created once by the ingestor or the external adapter and then
// enriched stage by stage: the classifier fills Categories, the score engine
// fills WeightedScore, the verifier fills VerificationStatus and
// VerificationNotes, and the naming assigner fills ExhibitNumber and
// ExhibitName. No stage overwrites a field set by an earlier one.
type EvidenceRecord struct {
	// SourceID is the opaque identifier of origin, usually the original
	// filename. Immutable once created.
	SourceID string

	// TextContent is the extracted or raw text used for classification.
	// May be empty.
	TextContent string

	// CapturedAt is the best-known capture date of the evidence. Year
	// granularity is sufficient; the zero value means unknown.
	CapturedAt time.Time

	Priority Priority

	// ContentHash is the hex SHA-256 digest of the underlying file, or
	// empty when no upstream hash exists.
	ContentHash string

	// Pass-through metadata, never used in scoring.
	PeopleMentioned string
	FilePath        string
	FolderCategory  string

	// SourceFile names the input table (or external source kind) the
	// record came from.
	SourceFile string

	// Enrichment fields, in pipeline order.
	Categories         []string
	WeightedScore      float64
	VerificationStatus VerificationStatus
	VerificationNotes  string
	ExhibitNumber      int
	ExhibitName        string
}

// CaptureYear returns the capture year, or 0 when the date is unknown.
func (r *EvidenceRecord) CaptureYear() int {
	if r.CapturedAt.IsZero() {
		return 0
	}
	return r.CapturedAt.Year()
}

// HasCategory reports whether the record carries the named category.
func (r *EvidenceRecord) HasCategory(name string) bool {
	for _, c := range r.Categories {
		if c == name {
			return true
		}
	}
	return false
}
