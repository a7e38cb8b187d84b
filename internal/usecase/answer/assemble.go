package answer

import (
	"github.com/kailas-cloud/atlas/internal/domain/business"
	"github.com/kailas-cloud/atlas/internal/domain/response"
)

// assemble overwrites the identity fields of a validated model response
// with the pipeline's own ranked, eligible ids. The model is trusted only
// for summary and ui; it can never add, remove, or promote a business.
func assemble(validated *response.AtlasResponse, ranked []business.Ranked) response.AtlasResponse {
	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].ID()
	}

	out := response.AtlasResponse{
		Summary:     validated.Summary,
		BusinessIDs: ids,
		UI:          validated.UI,
	}
	if len(ids) > 0 {
		primary := ids[0]
		out.PrimaryBusinessID = &primary
	}
	return out
}
