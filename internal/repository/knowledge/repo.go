// Package knowledge implements the semantic knowledge search over
// indexed business facts.
package knowledge

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/atlas/internal/db"
	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/query"
)

// store is the consumer interface for fact search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements answer.KnowledgeSearcher: it embeds the query text and
// runs a tenant-scoped KNN search over the fact index. Several facts may
// reference the same business; deduplication happens in the pipeline.
type Repo struct {
	store store
	embed domain.Embedder
}

// New creates a knowledge search repository.
func New(s store, embed domain.Embedder) *Repo {
	return &Repo{store: s, embed: embed}
}

// Search returns scored business matches for a free-text query, scoped to
// one tenant. Facts without a business id are dropped here; they cannot
// be attributed to a business.
func (r *Repo) Search(ctx context.Context, queryText, tenantID string, limit int) ([]query.KnowledgeMatch, error) {
	embResult, err := r.embed.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	q := &db.KNNQuery{
		IndexName:    domain.FactIndex,
		Filter:       fmt.Sprintf("@tenant:{%s}", db.EscapeTag(tenantID)),
		Vector:       embResult.Embedding,
		K:            limit,
		ReturnFields: []string{"business_id", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search facts %s: %w", tenantID, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]query.KnowledgeMatch, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		businessID := entry.Fields["business_id"]
		if businessID == "" {
			continue
		}
		matches = append(matches, query.KnowledgeMatch{
			BusinessID: businessID,
			Relevance:  entry.Score,
		})
	}
	return matches, nil
}
