package answer

import (
	"testing"

	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/geo"
	"github.com/kailas-cloud/atlas/internal/domain/response"
	"github.com/kailas-cloud/atlas/internal/domain/tier"
)

func TestAssemble_OverridesIdentity(t *testing.T) {
	fake := "fake-id"
	validated := &response.AtlasResponse{
		Summary:           "Nice places.",
		BusinessIDs:       []string{"fake-id", "other-fake"},
		PrimaryBusinessID: &fake,
		UI:                response.UI{Focus: response.FocusRoute, AutoDismissMs: 3000},
	}
	ranked := rank([]business.Candidate{
		business.New("real-1", "R1", 4.8, tier.Spotlight, geo.Coordinate{Lat: 1, Lng: 1}),
		business.New("real-2", "R2", 4.2, tier.Featured, geo.Coordinate{Lat: 1, Lng: 1}),
	}, nil)

	out := assemble(validated, ranked)
	if out.Summary != "Nice places." {
		t.Errorf("summary must come from the model, got %q", out.Summary)
	}
	if out.UI != validated.UI {
		t.Errorf("ui must come from the model, got %+v", out.UI)
	}
	if len(out.BusinessIDs) != 2 || out.BusinessIDs[0] != "real-1" || out.BusinessIDs[1] != "real-2" {
		t.Errorf("ids must come from ranking, got %v", out.BusinessIDs)
	}
	if out.PrimaryBusinessID == nil || *out.PrimaryBusinessID != "real-1" {
		t.Errorf("primary must be the top ranked id, got %v", out.PrimaryBusinessID)
	}
}

func TestAssemble_EmptyRanked(t *testing.T) {
	validated := &response.AtlasResponse{
		Summary: "hi",
		UI:      response.UI{Focus: response.FocusPins, AutoDismissMs: 1000},
	}
	out := assemble(validated, nil)
	if len(out.BusinessIDs) != 0 {
		t.Errorf("expected no ids, got %v", out.BusinessIDs)
	}
	if out.PrimaryBusinessID != nil {
		t.Errorf("expected nil primary, got %v", out.PrimaryBusinessID)
	}
}
