// Package classify maps evidence text to legal categories using keyword
// membership rules.
package classify

import (
	"strings"

	"github.com/evidentiary/gavel/internal/model"
)

// Classifier assigns legal categories to evidence records by exact,
// case-insensitive substring matching against each category's keyword set.
// No fuzzy or partial-word matching is performed, so classification is
// reproducible without any model.
type Classifier struct {
	catalog model.Catalog
}

// New creates a classifier over the given category catalog.
func New(catalog model.Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// Classify returns the record's category set: any pre-seeded categories the
// record already carries, plus every catalog category with at least one
// keyword present in the text. The result is ordered by catalog table
// order, never empty; GENERAL is the fallback.
func (c *Classifier) Classify(record model.EvidenceRecord) []string {
	seeded := make(map[string]bool, len(record.Categories))
	for _, name := range record.Categories {
		seeded[name] = true
	}

	searchText := strings.ToLower(record.TextContent)

	var categories []string
	for _, cat := range c.catalog.Categories() {
		if seeded[cat.Name] {
			categories = append(categories, cat.Name)
			delete(seeded, cat.Name)
			continue
		}
		if matchesAny(searchText, cat.Keywords) {
			categories = append(categories, cat.Name)
		}
	}

	// Seeded names outside the catalog are kept unconditionally, in the
	// record's own order.
	for _, name := range record.Categories {
		if seeded[name] {
			categories = append(categories, name)
			delete(seeded, name)
		}
	}

	if len(categories) == 0 {
		categories = []string{model.CatalogGeneral}
	}
	return categories
}

func matchesAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
