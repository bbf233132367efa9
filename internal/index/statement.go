package index

import (
	"fmt"
	"time"

	"github.com/evidentiary/gavel/internal/model"
)

// Statement renders the defensibility statement for a finalized catalog.
// It is purely a function of aggregate statistics over the records.
func (b *Builder) Statement(records []model.EvidenceRecord, generatedAt time.Time, runID string) string {
	total := len(records)
	verified := 0
	for i := range records {
		if records[i].VerificationStatus == model.StatusVerified {
			verified++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(verified) / float64(total) * 100
	}

	return fmt.Sprintf(`DEFENSIBILITY STATEMENT - EVIDENCE INTEGRITY CERTIFICATION

Case ID: %s
Date: %s
Total Exhibits: %d
Verified Exhibits: %d (%.1f%%)

I hereby certify that the evidence presented in this matter has been processed, verified, and packaged using industry-standard cryptographic hashing (SHA-256) and chain of custody protocols. Each exhibit has been assigned a unique cryptographic fingerprint at the time of original capture, and this fingerprint has been preserved throughout all processing stages. The integrity verification database maintains a complete audit trail of all file validations, timestamps, and processing operations.

Evidence is categorized by legal relevance using deterministic keyword rules and ranked by a weighted scoring algorithm that combines substantive importance, upstream priority, and temporal relevance. External data sources, including geolocation tracks and email transcripts, are hashed upon ingestion and integrated under the same integrity verification protocols.

The SHA-256 cryptographic hash function is a one-way function that produces a unique 64-character hexadecimal fingerprint for each file. Any modification to a file, no matter how minor, produces a completely different hash value. This property allows the court to verify at any time that the evidence has not been altered since initial capture, by recomputing the hash and comparing it to the recorded value.

This evidence package has been prepared in accordance with best practices for digital evidence handling and is suitable for admission in legal proceedings.

Run ID: %s
Generated: %s
`,
		b.caseID,
		generatedAt.Format("January 2, 2006"),
		total,
		verified,
		rate,
		runID,
		generatedAt.Format(time.RFC3339),
	)
}
