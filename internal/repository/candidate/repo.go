// Package candidate implements the eligibility-scoped business fetch.
package candidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/atlas/internal/db"
	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/tier"
)

// store is the consumer interface for scoped candidate fetch (ISP).
type store interface {
	SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error)
}

// Repo implements answer.CandidateFetcher. The FT.SEARCH query is
// structurally scoped: it only matches paid tiers and rating >= minRating,
// so an unpaid business cannot come back from the data source even if the
// in-process leak guard were removed. Both layers stay in place.
type Repo struct {
	store store
}

// New creates a candidate fetch repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var returnFields = []string{"id", "name", "rating", "tier", "lat", "lng"}

// Fetch loads business records for the given ids, scoped to tenant, paid
// tiers, and the minimum rating. Results are reordered to the requested
// id order so downstream tie-breaks stay deterministic.
func (r *Repo) Fetch(ctx context.Context, ids []string, tenantID string, minRating float64) ([]business.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := &db.FilterQuery{
		IndexName:    domain.BusinessIndex,
		Query:        buildScopedQuery(ids, tenantID, minRating),
		Limit:        len(ids),
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchFilter(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates %s: %w", tenantID, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	byID := make(map[string]business.Candidate, len(sr.Entries))
	for _, entry := range sr.Entries {
		c, err := candidateFromFields(entry.Fields)
		if err != nil {
			continue
		}
		byID[c.ID()] = c
	}

	out := make([]business.Candidate, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// buildScopedQuery renders the structurally scoped FT.SEARCH query:
// tenant, id membership, paid tiers only, rating floor.
func buildScopedQuery(ids []string, tenantID string, minRating float64) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = db.EscapeTag(id)
	}

	return fmt.Sprintf("@tenant:{%s} @id:{%s} @tier:{%s|%s} @rating:[%g +inf]",
		db.EscapeTag(tenantID),
		strings.Join(escaped, "|"),
		tier.Featured, tier.Spotlight,
		minRating,
	)
}
