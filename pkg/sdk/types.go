package atlas

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox is a rectangular map viewport.
type BoundingBox struct {
	SouthWest Coordinate `json:"southWest"`
	NorthEast Coordinate `json:"northEast"`
}

// QueryRequest is a free-text spatial query. The tenant is resolved
// server-side from the API key.
type QueryRequest struct {
	QueryText    string       `json:"queryText"`
	UserLocation *Coordinate  `json:"userLocation,omitempty"`
	Viewport     *BoundingBox `json:"viewport,omitempty"`
}

// UI carries map presentation directives.
type UI struct {
	Focus         string `json:"focus"`
	AutoDismissMs int    `json:"autoDismissMs"`
}

// Response is the assistant's answer: a short summary, the businesses to
// pin, and presentation directives. Degraded requests still return a
// usable Response with an empty business list.
type Response struct {
	Summary           string   `json:"summary"`
	BusinessIDs       []string `json:"businessIds"`
	PrimaryBusinessID *string  `json:"primaryBusinessId,omitempty"`
	UI                UI       `json:"ui"`
}

// HealthReport is the GET /health body.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
