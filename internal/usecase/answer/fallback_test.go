package answer

import (
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/atlas/internal/domain/response"
)

func TestFallback_TotalOverAllReasons(t *testing.T) {
	for _, reason := range response.Reasons() {
		t.Run(string(reason), func(t *testing.T) {
			resp := Fallback(reason)
			if resp.Summary == "" {
				t.Error("empty summary")
			}
			if resp.BusinessIDs == nil || len(resp.BusinessIDs) != 0 {
				t.Errorf("fallback must carry an empty (non-nil) id list, got %v", resp.BusinessIDs)
			}
			if resp.PrimaryBusinessID != nil {
				t.Errorf("fallback must have no primary, got %v", resp.PrimaryBusinessID)
			}
			if !response.ValidFocus(resp.UI.Focus) {
				t.Errorf("invalid focus %q", resp.UI.Focus)
			}
			if resp.UI.AutoDismissMs <= 0 || resp.UI.AutoDismissMs > response.AutoDismissMaxMs {
				t.Errorf("autoDismissMs out of bounds: %d", resp.UI.AutoDismissMs)
			}
		})
	}
}

func TestFallback_UnknownReasonCollapses(t *testing.T) {
	resp := Fallback(response.Reason("totally-made-up"))
	if resp.Summary != fallbackSummaries[response.ReasonInternalError] {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
}

func TestFallback_SerializesWithEmptyIDList(t *testing.T) {
	// The wire shape must show "businessIds": [] rather than null.
	data, err := json.Marshal(Fallback(response.ReasonNoQueryMatch))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !json.Valid(data) {
		t.Fatal("invalid json")
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["businessIds"].([]any); !ok {
		t.Errorf("businessIds not an array: %s", data)
	}
}
