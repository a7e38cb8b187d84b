package response

// Focus tells the map UI what to emphasize when rendering the response.
type Focus string

const (
	// FocusPins renders pin annotations for the returned businesses.
	FocusPins Focus = "pins"
	// FocusRoute renders a route overlay.
	FocusRoute Focus = "route"
	// FocusDetail opens the primary business detail bubble.
	FocusDetail Focus = "detail"
)

// ValidFocus reports whether f is one of the recognized focus values.
func ValidFocus(f Focus) bool {
	return f == FocusPins || f == FocusRoute || f == FocusDetail
}

// Bounds enforced by the response validator. Out-of-bound model output is
// rejected wholesale, never clamped.
const (
	// SummaryMaxRunes is the hard ceiling on the summary length.
	SummaryMaxRunes = 240
	// AutoDismissMaxMs is the hard ceiling on the auto-dismiss timer.
	AutoDismissMaxMs = 60_000
)

// UI carries rendering hints for the map layer.
type UI struct {
	Focus         Focus `json:"focus"`
	AutoDismissMs int   `json:"autoDismissMs"`
}

// AtlasResponse is the wire contract returned to the map UI. Every id in
// BusinessIDs passed the eligibility filter and the leak guard;
// PrimaryBusinessID, when non-empty, equals BusinessIDs[0].
type AtlasResponse struct {
	Summary           string   `json:"summary"`
	BusinessIDs       []string `json:"businessIds"`
	PrimaryBusinessID *string  `json:"primaryBusinessId"`
	UI                UI       `json:"ui"`
}

// Reason is a fallback reason code.
type Reason string

const (
	// ReasonNoQueryMatch means the knowledge search returned nothing.
	ReasonNoQueryMatch Reason = "no-query-match"
	// ReasonNoEligibleCandidates means no candidate survived filtering.
	ReasonNoEligibleCandidates Reason = "no-eligible-candidates"
	// ReasonFetchError means the knowledge store or candidate fetch failed.
	ReasonFetchError Reason = "fetch-error"
	// ReasonModelUnavailable means the language model is not configured or offline.
	ReasonModelUnavailable Reason = "model-unavailable"
	// ReasonMalformedModelOutput means the model responded but failed validation.
	ReasonMalformedModelOutput Reason = "malformed-model-output"
	// ReasonInternalError covers unexpected faults.
	ReasonInternalError Reason = "internal-error"
)

// Reasons lists every fallback reason code.
func Reasons() []Reason {
	return []Reason{
		ReasonNoQueryMatch,
		ReasonNoEligibleCandidates,
		ReasonFetchError,
		ReasonModelUnavailable,
		ReasonMalformedModelOutput,
		ReasonInternalError,
	}
}
