package integrity

import (
	"strings"

	"github.com/evidentiary/gavel/internal/model"
)

// cleanStatuses are the integrity-store statuses meaning the file passed
// validation. Comparison is case-insensitive.
var cleanStatuses = map[string]bool{
	"valid":    true,
	"clean":    true,
	"verified": true,
}

// Verifier assigns a verification status to evidence hashes using a fixed
// store snapshot. Verification is a pure function of (hash, snapshot).
type Verifier struct {
	snapshot *Snapshot
}

// NewVerifier creates a verifier over the given snapshot.
func NewVerifier(snapshot *Snapshot) *Verifier {
	return &Verifier{snapshot: snapshot}
}

// Verify cross-references a content hash against the snapshot.
//
//	absent hash            -> UNKNOWN
//	no matching record     -> UNKNOWN
//	clean status           -> VERIFIED, notes copied
//	anything else          -> WARNING, notes copied
func (v *Verifier) Verify(hash string) (model.VerificationStatus, string) {
	if strings.TrimSpace(hash) == "" {
		return model.StatusUnknown, ""
	}

	record, ok := v.snapshot.Lookup(hash)
	if !ok {
		return model.StatusUnknown, ""
	}

	if cleanStatuses[strings.ToLower(strings.TrimSpace(record.Status))] {
		return model.StatusVerified, record.Notes
	}
	return model.StatusWarning, record.Notes
}
