package external

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	geojson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/evidentiary/gavel/internal/model"
)

// geoRecord summarizes a whole GeoJSON track file as a single evidence
// record: point count plus the timestamp range across all features.
func (a *Adapter) geoRecord(path string) (model.EvidenceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("failed to read geodata file: %w", err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return model.EvidenceRecord{}, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	timestamps := make([]string, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature == nil {
			continue
		}
		if ts, ok := feature.Properties["timestamp"].(string); ok && ts != "" {
			timestamps = append(timestamps, ts)
		}
	}
	sort.Strings(timestamps)

	summary := fmt.Sprintf("%d location points", len(fc.Features))
	var capturedAt time.Time
	if len(timestamps) > 0 {
		first, last := timestamps[0], timestamps[len(timestamps)-1]
		summary = fmt.Sprintf("%d location points from %s to %s", len(fc.Features), first, last)
		if t, err := time.Parse(time.RFC3339, last); err == nil {
			capturedAt = t
		}
	}

	hash, err := hashFile(path)
	if err != nil {
		return model.EvidenceRecord{}, err
	}

	return model.EvidenceRecord{
		SourceID:       filepath.Base(path),
		TextContent:    summary,
		CapturedAt:     capturedAt,
		Priority:       model.PriorityHigh,
		ContentHash:    hash,
		FilePath:       path,
		FolderCategory: "location",
		SourceFile:     sourceGeoJSON,
		Categories:     []string{"LOCATION"},
	}, nil
}
