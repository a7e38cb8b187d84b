package answer

import "github.com/kailas-cloud/atlas/internal/domain/response"

// fallbackAutoDismissMs keeps fallback bubbles short-lived on the map.
const fallbackAutoDismissMs = 4000

var fallbackSummaries = map[response.Reason]string{
	response.ReasonNoQueryMatch:         "No nearby matches for that search.",
	response.ReasonNoEligibleCandidates: "No businesses available for that search right now.",
	response.ReasonFetchError:           "Search is having trouble right now. Please try again.",
	response.ReasonModelUnavailable:     "The assistant is temporarily unavailable.",
	response.ReasonMalformedModelOutput: "Something went wrong summarizing the results. Please try again.",
	response.ReasonInternalError:        "Something went wrong. Please try again.",
}

// Fallback synthesizes the deterministic minimal response for a failure
// branch. It performs no I/O and never fails; unknown reasons collapse to
// the internal-error variant.
func Fallback(reason response.Reason) response.AtlasResponse {
	summary, ok := fallbackSummaries[reason]
	if !ok {
		summary = fallbackSummaries[response.ReasonInternalError]
	}
	return response.AtlasResponse{
		Summary:     summary,
		BusinessIDs: []string{},
		UI: response.UI{
			Focus:         response.FocusPins,
			AutoDismissMs: fallbackAutoDismissMs,
		},
	}
}
