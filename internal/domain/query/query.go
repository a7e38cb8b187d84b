package query

import (
	"strings"

	"github.com/kailas-cloud/atlas/internal/domain/geo"
)

// Request is a single free-text spatial query. Created once per call,
// never persisted.
type Request struct {
	text         string
	tenantID     string
	userLocation *geo.Coordinate
	viewport     *geo.BoundingBox
}

// New creates a query request. The tenant id comes from the transport-layer
// resolver, never from client-supplied fields.
func New(text, tenantID string) Request {
	return Request{text: strings.TrimSpace(text), tenantID: tenantID}
}

// WithUserLocation attaches the caller's map location.
func (r Request) WithUserLocation(c geo.Coordinate) Request {
	r.userLocation = &c
	return r
}

// WithViewport attaches the caller's map viewport.
func (r Request) WithViewport(b geo.BoundingBox) Request {
	r.viewport = &b
	return r
}

// Text returns the trimmed query text.
func (r *Request) Text() string { return r.text }

// TenantID returns the resolved tenant identifier.
func (r *Request) TenantID() string { return r.tenantID }

// UserLocation returns the caller's location, or nil.
func (r *Request) UserLocation() *geo.Coordinate { return r.userLocation }

// Viewport returns the caller's viewport, or nil.
func (r *Request) Viewport() *geo.BoundingBox { return r.viewport }

// KnowledgeMatch is one scored hit from the semantic knowledge store.
// Several matches may reference the same business.
type KnowledgeMatch struct {
	BusinessID string
	Relevance  float64
}
