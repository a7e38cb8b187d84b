package tenantconfig

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
)

// writeStore is the consumer interface for tenant config writes.
type writeStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
}

// Writer stores per-tenant pipeline configuration. Used by the offline
// indexer.
type Writer struct {
	store writeStore
}

// NewWriter creates a tenant config writer.
func NewWriter(s writeStore) *Writer {
	return &Writer{store: s}
}

// Set stores a tenant's result shaping config.
func (w *Writer) Set(ctx context.Context, tenantID string, cfg tenant.Config) error {
	fields := map[string]string{
		"min_rating":  strconv.FormatFloat(cfg.MinRating(), 'f', -1, 64),
		"max_results": strconv.Itoa(cfg.MaxResults()),
	}
	if err := w.store.HSet(ctx, domain.TenantKey(tenantID), fields); err != nil {
		return fmt.Errorf("set tenant config %s: %w", tenantID, err)
	}
	return nil
}
