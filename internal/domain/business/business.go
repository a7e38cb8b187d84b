package business

import (
	"github.com/kailas-cloud/atlas/internal/domain/geo"
	"github.com/kailas-cloud/atlas/internal/domain/tier"
)

// Candidate is a single business record returned by the scoped fetch.
type Candidate struct {
	id          string
	displayName string
	rating      float64
	tier        tier.Tier
	coordinate  geo.Coordinate
}

// New creates a business candidate.
func New(id, displayName string, rating float64, t tier.Tier, coord geo.Coordinate) Candidate {
	return Candidate{
		id:          id,
		displayName: displayName,
		rating:      rating,
		tier:        t,
		coordinate:  coord,
	}
}

// ID returns the business identifier.
func (c *Candidate) ID() string { return c.id }

// DisplayName returns the business display name.
func (c *Candidate) DisplayName() string { return c.displayName }

// Rating returns the average rating in [0,5]; 0 means unrated.
func (c *Candidate) Rating() float64 { return c.rating }

// Tier returns the subscription tier.
func (c *Candidate) Tier() tier.Tier { return c.tier }

// Coordinate returns the business location.
func (c *Candidate) Coordinate() geo.Coordinate { return c.coordinate }

// Ranked is a candidate joined with its query relevance and tier priority.
type Ranked struct {
	Candidate
	relevance    float64
	tierPriority int
}

// NewRanked attaches a relevance score to a candidate.
func NewRanked(c Candidate, relevance float64) Ranked {
	return Ranked{
		Candidate:    c,
		relevance:    relevance,
		tierPriority: c.Tier().Priority(),
	}
}

// Relevance returns the semantic relevance score in [0,1].
func (r *Ranked) Relevance() float64 { return r.relevance }

// TierPriority returns the tier ranking priority, lower first.
func (r *Ranked) TierPriority() int { return r.tierPriority }
