package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/atlas/internal/domain"
	"github.com/kailas-cloud/atlas/internal/domain/query"
	"github.com/kailas-cloud/atlas/internal/domain/response"
	"github.com/kailas-cloud/atlas/internal/domain/tenant"
	"github.com/kailas-cloud/atlas/internal/metrics"
)

// fetchFactor over-fetches candidate ids relative to the tenant's result
// budget to absorb post-fetch filtering losses.
const fetchFactor = 2

// Service runs the spatial answer pipeline: knowledge search, dedup,
// eligibility-scoped fetch, leak guard, ranking, prompt planning, model
// call, validation, and assembly. Stateless per request; all collaborators
// are constructed once at process start and injected here.
type Service struct {
	searcher KnowledgeSearcher
	fetcher  CandidateFetcher
	tenants  TenantConfigStore
	model    LanguageModel
	alerter  Alerter
	logger   *zap.Logger
}

// New creates the answer service. model may be nil when the language model
// collaborator is not configured; every query then resolves to the
// model-unavailable fallback.
func New(
	searcher KnowledgeSearcher,
	fetcher CandidateFetcher,
	tenants TenantConfigStore,
	model LanguageModel,
	alerter Alerter,
	logger *zap.Logger,
) *Service {
	return &Service{
		searcher: searcher,
		fetcher:  fetcher,
		tenants:  tenants,
		model:    model,
		alerter:  alerter,
		logger:   logger,
	}
}

// Answer resolves a free-text spatial query to an AtlasResponse. The
// response is always usable: failure branches return a fallback body
// together with a sentinel error so the transport can pick the status
// code. A nil error means a normal (or benign-fallback) outcome.
func (s *Service) Answer(ctx context.Context, req query.Request) (response.AtlasResponse, error) {
	if req.Text() == "" {
		return Fallback(response.ReasonInternalError), domain.ErrEmptyQuery
	}

	cfg := s.tenantConfig(ctx, req.TenantID())

	matches, err := s.searcher.Search(ctx, req.Text(), req.TenantID(), cfg.MaxResults()*fetchFactor)
	if err != nil {
		s.logger.Error("knowledge search failed",
			zap.String("tenant", req.TenantID()), zap.Error(err))
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonFetchError)).Inc()
		return Fallback(response.ReasonFetchError),
			fmt.Errorf("%w: %w", domain.ErrKnowledgeSearch, err)
	}

	if len(matches) == 0 {
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonNoQueryMatch)).Inc()
		return Fallback(response.ReasonNoQueryMatch), nil
	}

	relevance := dedupeMatches(matches)
	ids := matchOrder(matches)
	if max := cfg.MaxResults() * fetchFactor; len(ids) > max {
		ids = ids[:max]
	}

	candidates, err := s.fetcher.Fetch(ctx, ids, req.TenantID(), cfg.MinRating())
	if err != nil {
		s.logger.Error("candidate fetch failed",
			zap.String("tenant", req.TenantID()), zap.Error(err))
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonFetchError)).Inc()
		return Fallback(response.ReasonFetchError),
			fmt.Errorf("%w: %w", domain.ErrCandidateFetch, err)
	}

	safe, violations := guard(candidates)
	for _, v := range violations {
		s.alerter.LeakDetected(ctx, req.TenantID(), v)
	}

	ranked := topN(rank(safe, relevance), cfg.MaxResults())
	if len(ranked) == 0 {
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonNoEligibleCandidates)).Inc()
		return Fallback(response.ReasonNoEligibleCandidates), nil
	}

	if s.model == nil {
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonModelUnavailable)).Inc()
		return Fallback(response.ReasonModelUnavailable), domain.ErrModelUnavailable
	}

	raw, err := s.model.Complete(ctx, systemPrompt, buildUserPrompt(req.Text(), ranked))
	if err != nil {
		s.logger.Error("model call failed",
			zap.String("tenant", req.TenantID()), zap.Error(err))
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonModelUnavailable)).Inc()
		return Fallback(response.ReasonModelUnavailable),
			fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	validated := validateModelOutput(raw)
	if validated == nil {
		s.logger.Warn("model output failed validation",
			zap.String("tenant", req.TenantID()), zap.Int("raw_len", len(raw)))
		metrics.FallbacksTotal.WithLabelValues(string(response.ReasonMalformedModelOutput)).Inc()
		return Fallback(response.ReasonMalformedModelOutput), domain.ErrMalformedModelOutput
	}

	return assemble(validated, ranked), nil
}

// tenantConfig loads tenant configuration, degrading to defaults if the
// config store is unreachable; a config hiccup must not drop the query.
func (s *Service) tenantConfig(ctx context.Context, tenantID string) tenant.Config {
	cfg, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		s.logger.Warn("tenant config unavailable, using defaults",
			zap.String("tenant", tenantID), zap.Error(err))
		return tenant.Default()
	}
	return cfg
}
