package classify

import (
	"reflect"
	"testing"

	"github.com/evidentiary/gavel/internal/model"
)

func TestClassify(t *testing.T) {
	classifier := New(model.DefaultCatalog())

	tests := []struct {
		name   string
		record model.EvidenceRecord
		want   []string
	}{
		{
			name:   "single keyword match",
			record: model.EvidenceRecord{TextContent: "physical assault occurred"},
			want:   []string{"ASSAULT"},
		},
		{
			name:   "empty text falls back to general",
			record: model.EvidenceRecord{TextContent: ""},
			want:   []string{"GENERAL"},
		},
		{
			name:   "no keyword match falls back to general",
			record: model.EvidenceRecord{TextContent: "quarterly newsletter"},
			want:   []string{"GENERAL"},
		},
		{
			name:   "multiple categories may apply",
			record: model.EvidenceRecord{TextContent: "the attack left the child in an unsafe home"},
			want:   []string{"ASSAULT", "ENDANGERMENT"},
		},
		{
			name:   "matching is case-insensitive",
			record: model.EvidenceRecord{TextContent: "REPEATED HARASSMENT AND STALKING"},
			want:   []string{"HARASSMENT"},
		},
		{
			name: "pre-seeded category kept alongside text matches",
			record: model.EvidenceRecord{
				TextContent: "missed support payment",
				Categories:  []string{"LOCATION"},
			},
			want: []string{"FINANCIAL", "LOCATION"},
		},
		{
			name: "pre-seeded category kept with empty text",
			record: model.EvidenceRecord{
				TextContent: "",
				Categories:  []string{"COMMUNICATION"},
			},
			want: []string{"COMMUNICATION"},
		},
		{
			name: "pre-seeded non-catalog name passes through",
			record: model.EvidenceRecord{
				TextContent: "",
				Categories:  []string{"TRANSCRIPT"},
			},
			want: []string{"TRANSCRIPT"},
		},
		{
			name:   "substring only, no fuzzy matching",
			record: model.EvidenceRecord{TextContent: "assau lt"},
			want:   []string{"GENERAL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.record)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every record ends up with at least one category, whatever the input.
func TestClassifyTotality(t *testing.T) {
	classifier := New(model.DefaultCatalog())

	inputs := []string{"", " ", "zzzz", "assault", "école"}
	for _, text := range inputs {
		got := classifier.Classify(m(text))
		if len(got) < 1 {
			t.Errorf("Classify(%q) returned no categories", text)
		}
	}
}

func TestClassifyDeterminism(t *testing.T) {
	classifier := New(model.DefaultCatalog())
	record := m("doctor visit after the attack, school was notified")

	first := classifier.Classify(record)
	for i := 0; i < 10; i++ {
		if got := classifier.Classify(record); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}

func TestClassifyInjectedCatalog(t *testing.T) {
	catalog := model.NewCatalog([]model.Category{
		{Name: "WEATHER", Weight: 5, Keywords: []string{"rain"}},
		{Name: model.CatalogGeneral, Weight: 1},
	})
	classifier := New(catalog)

	got := classifier.Classify(m("heavy rain all week"))
	if !reflect.DeepEqual(got, []string{"WEATHER"}) {
		t.Errorf("Classify() = %v, want [WEATHER]", got)
	}
}

func m(text string) model.EvidenceRecord {
	return model.EvidenceRecord{TextContent: text}
}
