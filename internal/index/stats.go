package index

import (
	"github.com/evidentiary/gavel/internal/model"
)

// Stats holds aggregate counts over a record collection. Computing stats
// never writes files; the stats-only mode short-circuits here.
type Stats struct {
	ByCategory map[string]int
	ByPriority map[model.Priority]int
	Total      int
	Verified   int
}

// ComputeStats aggregates category, priority, and verification counts.
func ComputeStats(records []model.EvidenceRecord) Stats {
	stats := Stats{
		ByCategory: make(map[string]int),
		ByPriority: make(map[model.Priority]int),
		Total:      len(records),
	}

	for i := range records {
		rec := &records[i]
		for _, cat := range rec.Categories {
			stats.ByCategory[cat]++
		}
		stats.ByPriority[rec.Priority]++
		if rec.VerificationStatus == model.StatusVerified {
			stats.Verified++
		}
	}
	return stats
}

// VerificationRate returns the percentage of VERIFIED records, 0 for an
// empty collection.
func (s Stats) VerificationRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Verified) / float64(s.Total) * 100
}
