package tenant

// Default limits applied when a tenant has no stored configuration.
const (
	DefaultMinRating  = 0.0
	DefaultMaxResults = 5
	// MaxResultsCeiling caps stored max_results against misconfiguration.
	MaxResultsCeiling = 10
)

// Config is the per-tenant read-only pipeline configuration.
type Config struct {
	minRating  float64
	maxResults int
}

// New creates a tenant config, clamping values into their legal ranges.
func New(minRating float64, maxResults int) Config {
	if minRating < 0 {
		minRating = 0
	}
	if minRating > 5 {
		minRating = 5
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResultsCeiling {
		maxResults = MaxResultsCeiling
	}
	return Config{minRating: minRating, maxResults: maxResults}
}

// Default returns the configuration used when a tenant has none stored.
func Default() Config {
	return New(DefaultMinRating, DefaultMaxResults)
}

// MinRating is the minimum rating required by the scoped fetch.
func (c Config) MinRating() float64 { return c.minRating }

// MaxResults is the maximum number of business ids in a response.
func (c Config) MaxResults() int { return c.maxResults }
