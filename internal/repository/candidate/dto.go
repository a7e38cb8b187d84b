package candidate

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/geo"
	"github.com/kailas-cloud/atlas/internal/domain/tier"
)

// candidateFromFields hydrates a business candidate from FT.SEARCH return
// fields. A row without an id is unusable; numeric fields that fail to
// parse keep their zero value, which the leak guard then rejects for
// coordinates.
func candidateFromFields(fields map[string]string) (business.Candidate, error) {
	id := fields["id"]
	if id == "" {
		return business.Candidate{}, fmt.Errorf("missing id field")
	}

	rating, _ := strconv.ParseFloat(fields["rating"], 64)

	coord := geo.Coordinate{}
	var latErr, lngErr error
	coord.Lat, latErr = strconv.ParseFloat(fields["lat"], 64)
	coord.Lng, lngErr = strconv.ParseFloat(fields["lng"], 64)
	if latErr != nil || lngErr != nil {
		// Mark the coordinate invalid rather than failing the row; the
		// guard strips it and raises the alert.
		coord = geo.Coordinate{Lat: 91, Lng: 181}
	}

	return business.New(
		id,
		fields["name"],
		rating,
		tier.Parse(fields["tier"]),
		coord,
	), nil
}

// hashFromCandidate converts a candidate to stored hash fields. Used by
// the indexer; the read path goes through candidateFromFields.
func hashFromCandidate(tenantID string, c business.Candidate) map[string]string {
	return map[string]string{
		"id":     c.ID(),
		"tenant": tenantID,
		"name":   c.DisplayName(),
		"rating": strconv.FormatFloat(c.Rating(), 'f', -1, 64),
		"tier":   string(c.Tier()),
		"lat":    strconv.FormatFloat(c.Coordinate().Lat, 'f', -1, 64),
		"lng":    strconv.FormatFloat(c.Coordinate().Lng, 'f', -1, 64),
	}
}
