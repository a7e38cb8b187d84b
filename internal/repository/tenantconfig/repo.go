// Package tenantconfig loads per-tenant pipeline configuration.
package tenantconfig

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
)

// store is the consumer interface for tenant config reads (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Repo implements answer.TenantConfigStore over tenant config hashes.
type Repo struct {
	store    store
	defaults tenant.Config
}

// New creates a tenant config repository.
func New(s store, defaults tenant.Config) *Repo {
	return &Repo{store: s, defaults: defaults}
}

// Get returns the stored config for a tenant, with defaults applied when
// nothing (or only part) is stored. HGETALL on a missing key returns an
// empty map, so an unconfigured tenant is not an error.
func (r *Repo) Get(ctx context.Context, tenantID string) (tenant.Config, error) {
	m, err := r.store.HGetAll(ctx, domain.TenantKey(tenantID))
	if err != nil {
		return tenant.Config{}, fmt.Errorf("get tenant config %s: %w", tenantID, err)
	}
	if len(m) == 0 {
		return r.defaults, nil
	}

	minRating := r.defaults.MinRating()
	if s, ok := m["min_rating"]; ok && s != "" {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			minRating = parsed
		}
	}

	maxResults := r.defaults.MaxResults()
	if s, ok := m["max_results"]; ok && s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			maxResults = parsed
		}
	}

	return tenant.New(minRating, maxResults), nil
}
