package answer

import (
	"sort"

	"github.com/kailas-cloud/atlas/internal/domain/business"
)

// rank orders eligible candidates by the fixed three-key comparator:
// tier priority ascending, then rating descending, then relevance
// descending. The sort is stable so that full ties keep fetch order and
// identical inputs always produce identical output.
func rank(safe []business.Candidate, relevance map[string]float64) []business.Ranked {
	ranked := make([]business.Ranked, len(safe))
	for i, c := range safe {
		ranked[i] = business.NewRanked(c, relevance[c.ID()])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.TierPriority() != b.TierPriority() {
			return a.TierPriority() < b.TierPriority()
		}
		if a.Rating() != b.Rating() {
			return a.Rating() > b.Rating()
		}
		return a.Relevance() > b.Relevance()
	})

	return ranked
}

// topN truncates a ranked list to the tenant's result budget.
func topN(ranked []business.Ranked, n int) []business.Ranked {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
