package model

// Category is a named legal relevance bucket with a keyword set and an
// integer weight used by the score engine.
type Category struct {
	Name     string
	Keywords []string
	Weight   int
}

// CatalogGeneral is the catch-all category assigned when no keyword matches.
const CatalogGeneral = "GENERAL"

// Catalog is an immutable table of legal categories. It is constructed once
// at pipeline start and passed explicitly into the classifier and the score
// engine, so tests can inject alternate category sets.
type Catalog struct {
	byName     map[string]Category
	categories []Category
}

// NewCatalog builds a catalog from an ordered category list. Order is
// significant: it decides the output ordering of assigned categories and
// breaks weight ties when selecting a primary category.
func NewCatalog(categories []Category) Catalog {
	byName := make(map[string]Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}
	return Catalog{
		categories: categories,
		byName:     byName,
	}
}

// DefaultCatalog returns the standard legal category table, ordered by
// descending weight.
func DefaultCatalog() Catalog {
	return NewCatalog([]Category{
		{Name: "ASSAULT", Weight: 10, Keywords: []string{"assault", "violence", "physical", "injury", "hurt", "hit", "attack"}},
		{Name: "ENDANGERMENT", Weight: 9, Keywords: []string{"endangerment", "danger", "unsafe", "risk", "neglect", "welfare", "safety"}},
		{Name: "CONTEMPT", Weight: 8, Keywords: []string{"contempt", "violation", "custody", "order", "breach", "non-compliance"}},
		{Name: "HARASSMENT", Weight: 7, Keywords: []string{"harassment", "threatening", "intimidation", "abuse", "stalking"}},
		{Name: "MEDICAL", Weight: 6, Keywords: []string{"medical", "health", "therapy", "doctor", "hospital", "treatment"}},
		{Name: "FINANCIAL", Weight: 5, Keywords: []string{"financial", "money", "support", "payment", "expense", "cost"}},
		{Name: "COMMUNICATION", Weight: 4, Keywords: []string{"email", "text", "message", "communication", "correspondence"}},
		{Name: "EDUCATION", Weight: 4, Keywords: []string{"school", "education", "teacher", "academic", "learning"}},
		{Name: "TIMELINE", Weight: 3, Keywords: []string{"timeline", "chronology", "sequence", "events", "history"}},
		{Name: "LOCATION", Weight: 3, Keywords: []string{"location", "gps", "geolocation", "whereabouts", "travel"}},
		{Name: CatalogGeneral, Weight: 1},
	})
}

// Categories returns the catalog's category list in table order.
func (c Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Lookup returns the named category and whether it exists in the catalog.
func (c Catalog) Lookup(name string) (Category, bool) {
	cat, ok := c.byName[name]
	return cat, ok
}

// Weight returns the weight of the named category. Unknown categories weigh
// the same as GENERAL so they never dominate a known one.
func (c Catalog) Weight(name string) int {
	if cat, ok := c.byName[name]; ok {
		return cat.Weight
	}
	return 1
}

// MaxWeight returns the highest category weight among names. A record with
// multiple categories is scored by its single dominant category, not a sum;
// summing would inflate multi-tagged records disproportionately.
func (c Catalog) MaxWeight(names []string) int {
	maxWeight := 1
	for _, n := range names {
		if w := c.Weight(n); w > maxWeight {
			maxWeight = w
		}
	}
	return maxWeight
}

// Primary returns the highest-weighted category among names, breaking weight
// ties by catalog table order. Names outside the catalog are considered last,
// in their given order.
func (c Catalog) Primary(names []string) string {
	if len(names) == 0 {
		return CatalogGeneral
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	best := ""
	bestWeight := -1
	for _, cat := range c.categories {
		if present[cat.Name] && cat.Weight > bestWeight {
			best = cat.Name
			bestWeight = cat.Weight
		}
	}
	if best != "" {
		return best
	}
	return names[0]
}
