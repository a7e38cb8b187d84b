package health

import "context"

// StorePinger checks search store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks language model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}
