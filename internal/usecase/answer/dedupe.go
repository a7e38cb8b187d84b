package answer

import "github.com/kailas-cloud/atlas/internal/domain/query"

// dedupeMatches collapses knowledge matches per business, keeping the
// maximum relevance observed for each id. Max is commutative, so the
// result does not depend on match order. Matches without a business id
// cannot be surfaced and are skipped.
func dedupeMatches(matches []query.KnowledgeMatch) map[string]float64 {
	best := make(map[string]float64, len(matches))
	for _, m := range matches {
		if m.BusinessID == "" {
			continue
		}
		if score, ok := best[m.BusinessID]; !ok || m.Relevance > score {
			best[m.BusinessID] = m.Relevance
		}
	}
	return best
}

// matchOrder returns distinct business ids in first-seen order, so the
// fetch receives a deterministic id list for identical inputs.
func matchOrder(matches []query.KnowledgeMatch) []string {
	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.BusinessID == "" {
			continue
		}
		if _, ok := seen[m.BusinessID]; ok {
			continue
		}
		seen[m.BusinessID] = struct{}{}
		ids = append(ids, m.BusinessID)
	}
	return ids
}
