package answer

import (
	"github.com/kailas-cloud/atlas/internal/domain/business"
)

// Eligible reports whether a candidate may ever appear in a spatial
// response: the tier must be paid and the coordinate must be valid.
// Rating is deliberately not consulted here; a zero rating marks a new
// business, not an ineligible one. Pure and total: malformed input
// yields false, never a panic.
func Eligible(c business.Candidate) bool {
	return c.Tier().Paid() && c.Coordinate().Valid()
}

// guard re-validates every fetched candidate against Eligible. The scoped
// fetch already excludes ineligible rows structurally, so violations
// indicate a defect in the upstream data source; they are stripped
// unconditionally and returned for escalation. The guard runs even when
// violations are expected to always be empty.
func guard(candidates []business.Candidate) (safe, violations []business.Candidate) {
	safe = make([]business.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Eligible(c) {
			safe = append(safe, c)
			continue
		}
		violations = append(violations, c)
	}
	return safe, violations
}
