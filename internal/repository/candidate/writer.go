package candidate

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/atlas/internal/db"
	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/business"
)

// writeStore is the consumer interface for business ingestion.
type writeStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// Writer ingests business records. Used by the offline indexer; the query
// path never writes.
type Writer struct {
	store writeStore
}

// NewWriter creates a business ingestion writer.
func NewWriter(s writeStore) *Writer {
	return &Writer{store: s}
}

// UpsertBatch stores a batch of businesses for one tenant in a single
// pipelined round-trip.
func (w *Writer) UpsertBatch(ctx context.Context, tenantID string, candidates []business.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(candidates))
	for i, c := range candidates {
		items[i] = db.HashSetItem{
			Key:    domain.BusinessKey(tenantID, c.ID()),
			Fields: hashFromCandidate(tenantID, c),
		}
	}

	if err := w.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert businesses %s: %w", tenantID, err)
	}
	return nil
}

// EnsureIndex creates the business FT index if it does not exist yet.
func (w *Writer) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        domain.BusinessIndex,
		StorageType: db.StorageHash,
		Prefixes:    []string{domain.KeyPrefix + "biz:"},
		Fields: []db.IndexField{
			{Name: "id", Type: db.IndexFieldTag},
			{Name: "tenant", Type: db.IndexFieldTag},
			{Name: "tier", Type: db.IndexFieldTag},
			{Name: "rating", Type: db.IndexFieldNumeric},
		},
	}

	err := w.store.CreateIndex(ctx, def)
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create business index: %w", err)
	}
	return nil
}
