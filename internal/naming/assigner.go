// Package naming assigns exhibit numbers and deterministic display names to
// scored evidence records.
package naming

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evidentiary/gavel/internal/model"
)

// exhibitPrefix is the fixed leading token of every exhibit name.
const exhibitPrefix = "EXHIBIT"

// maxDescriptorLen caps the sanitized descriptor embedded in a name.
const maxDescriptorLen = 30

// Assigner ranks records by weighted score and produces the exhibit
// numbering and naming scheme.
type Assigner struct {
	catalog model.Catalog
	caseID  string
}

// New creates an assigner for the given case.
func New(catalog model.Catalog, caseID string) *Assigner {
	return &Assigner{catalog: catalog, caseID: caseID}
}

// Assign sorts records descending by weighted score and fills ExhibitNumber
// and ExhibitName. The sort is stable, with ties broken by original
// ingestion order, so reruns over identical input are deterministic. The
// returned slice is a new ordering; input records are not mutated.
func (a *Assigner) Assign(records []model.EvidenceRecord) []model.EvidenceRecord {
	ranked := make([]model.EvidenceRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeightedScore > ranked[j].WeightedScore
	})

	for i := range ranked {
		ranked[i].ExhibitNumber = i + 1
		ranked[i].ExhibitName = a.name(&ranked[i])
	}
	return ranked
}

// name builds EXHIBIT-<case>-<NNN><suffix>-<CATEGORY>-<DESCRIPTOR>.
// The zero-padded exhibit number makes the name collision-free by
// construction.
func (a *Assigner) name(record *model.EvidenceRecord) string {
	primary := a.catalog.Primary(record.Categories)
	descriptor := describeRecord(record)
	return fmt.Sprintf("%s-%s-%03d%s-%s-%s",
		exhibitPrefix,
		a.caseID,
		record.ExhibitNumber,
		prioritySuffix(record.Priority),
		primary,
		descriptor,
	)
}

// prioritySuffix encodes the priority tier as a single letter. CRITICAL
// shares the A tier with HIGH.
func prioritySuffix(p model.Priority) string {
	switch p {
	case model.PriorityCritical, model.PriorityHigh:
		return "A"
	case model.PriorityMedium:
		return "B"
	case model.PriorityLow:
		return "C"
	default:
		return "X"
	}
}

// describeRecord derives a short descriptor from the record's source
// identifier, falling back to the first words of its text content.
func describeRecord(record *model.EvidenceRecord) string {
	if record.SourceID != "" {
		stem := strings.TrimSuffix(record.SourceID, filepath.Ext(record.SourceID))
		parts := strings.Split(stem, "_")
		if len(parts) > 3 {
			parts = parts[:3]
		}
		return sanitizeDescriptor(strings.Join(parts, "-"))
	}

	words := strings.Fields(record.TextContent)
	if len(words) > 3 {
		words = words[:3]
	}
	return sanitizeDescriptor(strings.Join(words, "-"))
}

// sanitizeDescriptor uppercases, replaces non-alphanumerics with dashes,
// and caps the length. An empty result becomes EVIDENCE so names keep
// their fixed shape.
func sanitizeDescriptor(s string) string {
	s = strings.ToUpper(s)
	if len(s) > maxDescriptorLen {
		s = s[:maxDescriptorLen]
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "EVIDENCE"
	}
	return out
}
