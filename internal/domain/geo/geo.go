package geo

import "math"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are finite and within
// latitude [-90,90] and longitude [-180,180].
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) ||
		math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// BoundingBox is a rectangular map viewport.
type BoundingBox struct {
	SouthWest Coordinate
	NorthEast Coordinate
}

// Valid reports whether both corners are valid coordinates.
func (b BoundingBox) Valid() bool {
	return b.SouthWest.Valid() && b.NorthEast.Valid()
}
