// Package score computes the composite weighted score that ranks evidence
// records in the exhibit index.
package score

import (
	"math"

	"github.com/evidentiary/gavel/internal/model"
)

// baseYear is the pivot for the recency bonus. Evidence captured at or
// before this year earns no bonus.
const baseYear = 2020

// recencyStep is the per-year bonus above baseYear.
const recencyStep = 0.5

// DefaultPriorityWeights returns the multiplier applied for each priority
// tier.
func DefaultPriorityWeights() map[model.Priority]int {
	return map[model.Priority]int{
		model.PriorityCritical: 12,
		model.PriorityHigh:     10,
		model.PriorityMedium:   5,
		model.PriorityLow:      2,
		model.PriorityUnknown:  1,
	}
}

// Engine computes weighted evidence scores. Scores are a pure function of
// the record, so identical inputs always produce identical scores.
type Engine struct {
	catalog         model.Catalog
	priorityWeights map[model.Priority]int
}

// New creates a score engine over the given catalog with default priority
// weights.
func New(catalog model.Catalog) *Engine {
	return &Engine{
		catalog:         catalog,
		priorityWeights: DefaultPriorityWeights(),
	}
}

// Score returns the weighted evidence score:
//
//	priority_weight * max(category_weight) + recency_bonus
//
// The multiplicative term uses the single highest-weighted category of the
// record, so the dominant legal category drives the score. The result is
// rounded to two decimals and is never negative.
func (e *Engine) Score(record model.EvidenceRecord) float64 {
	priorityWeight, ok := e.priorityWeights[record.Priority]
	if !ok {
		priorityWeight = e.priorityWeights[model.PriorityUnknown]
	}

	categoryWeight := e.catalog.MaxWeight(record.Categories)

	base := float64(priorityWeight * categoryWeight)
	return math.Round((base+recencyBonus(record.CaptureYear()))*100) / 100
}

// recencyBonus rewards newer evidence at whole-year granularity.
func recencyBonus(year int) float64 {
	if year <= baseYear {
		return 0
	}
	return recencyStep * float64(year-baseYear)
}
