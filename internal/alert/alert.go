// Package alert escalates trust-boundary violations out-of-band.
package alert

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/metrics"
)

// LeakAlerter reports leak-guard violations through the critical alert
// path: an error-level canonical log line plus the leak violation counter
// operators page on. It must never be downgraded to a soft warning.
type LeakAlerter struct {
	logger *zap.Logger
}

// NewLeakAlerter creates the default leak alerter.
func NewLeakAlerter(l *zap.Logger) *LeakAlerter {
	return &LeakAlerter{logger: l}
}

// LeakDetected records one ineligible candidate that reached the guard.
// The candidate never appears in the response; this call exists purely so
// the broken upstream scoping gets operator attention.
func (a *LeakAlerter) LeakDetected(ctx context.Context, tenantID string, c business.Candidate) {
	cause := "invalid_coordinate"
	if !c.Tier().Paid() {
		cause = "unpaid_tier"
	}

	metrics.LeakViolationsTotal.WithLabelValues(tenantID, cause).Inc()

	a.logger.Error("leak guard violation: ineligible candidate returned by scoped fetch",
		zap.String("tenant", tenantID),
		zap.String("business_id", c.ID()),
		zap.String("tier", string(c.Tier())),
		zap.String("cause", cause),
	)
}
