package answer

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/atlas/internal/domain/response"
)

// rawResponse mirrors the AtlasResponse wire shape with pointer fields so
// that missing keys are distinguishable from zero values.
type rawResponse struct {
	Summary           *string   `json:"summary"`
	BusinessIDs       *[]string `json:"businessIds"`
	PrimaryBusinessID *string   `json:"primaryBusinessId"`
	UI                *rawUI    `json:"ui"`
}

type rawUI struct {
	Focus         *string `json:"focus"`
	AutoDismissMs *int    `json:"autoDismissMs"`
}

// validateModelOutput parses raw model text as an AtlasResponse and
// enforces the full contract: non-empty bounded summary, string id list,
// recognized focus value, positive bounded autoDismissMs. Any missing
// field, wrong type, or out-of-bound value rejects the whole response —
// no partial acceptance.
func validateModelOutput(raw string) *response.AtlasResponse {
	text := stripFences(raw)
	if text == "" {
		return nil
	}

	var parsed rawResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil
	}

	if parsed.Summary == nil || parsed.UI == nil || parsed.BusinessIDs == nil {
		return nil
	}

	// primaryBusinessId may legitimately be null, so the pointer field
	// cannot tell null from absent; require the key itself to be present.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil
	}
	if _, ok := keys["primaryBusinessId"]; !ok {
		return nil
	}

	summary := strings.TrimSpace(*parsed.Summary)
	if summary == "" || utf8.RuneCountInString(summary) > response.SummaryMaxRunes {
		return nil
	}

	if parsed.UI.Focus == nil || parsed.UI.AutoDismissMs == nil {
		return nil
	}
	focus := response.Focus(*parsed.UI.Focus)
	if !response.ValidFocus(focus) {
		return nil
	}
	dismiss := *parsed.UI.AutoDismissMs
	if dismiss <= 0 || dismiss > response.AutoDismissMaxMs {
		return nil
	}

	return &response.AtlasResponse{
		Summary:           summary,
		BusinessIDs:       *parsed.BusinessIDs,
		PrimaryBusinessID: parsed.PrimaryBusinessID,
		UI: response.UI{
			Focus:         focus,
			AutoDismissMs: dismiss,
		},
	}
}

// stripFences removes a surrounding markdown code fence, which some models
// emit even in structured-output mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
