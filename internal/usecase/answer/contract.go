package answer

import (
	"context"

	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/query"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
)

// KnowledgeSearcher runs the semantic search over indexed business facts.
// It may return several matches for the same business.
type KnowledgeSearcher interface {
	Search(ctx context.Context, queryText, tenantID string, limit int) ([]query.KnowledgeMatch, error)
}

// CandidateFetcher loads full business records for an id set. The
// implementation is structurally scoped: it must exclude unpaid tiers and
// require rating >= minRating at the data-source boundary, independent of
// the in-process leak guard.
type CandidateFetcher interface {
	Fetch(ctx context.Context, ids []string, tenantID string, minRating float64) ([]business.Candidate, error)
}

// TenantConfigStore returns per-tenant pipeline configuration,
// with defaults applied when none is stored.
type TenantConfigStore interface {
	Get(ctx context.Context, tenantID string) (tenant.Config, error)
}

// LanguageModel is the prompt-in / text-out collaborator. One call per
// request, structured-output mode, bounded tokens; retries belong to the
// implementation's caller, never to the pipeline.
type LanguageModel interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Alerter receives leak violations. Implementations must escalate
// out-of-band (operator alert), never merely log at a soft level.
type Alerter interface {
	LeakDetected(ctx context.Context, tenantID string, c business.Candidate)
}
