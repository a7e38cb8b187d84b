package answer

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/atlas/internal/domain/response"
)

const goodOutput = `{"summary": "Two sushi places nearby.", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`

func TestValidateModelOutput_Accepts(t *testing.T) {
	got := validateModelOutput(goodOutput)
	if got == nil {
		t.Fatal("expected valid response")
	}
	if got.Summary != "Two sushi places nearby." {
		t.Errorf("unexpected summary %q", got.Summary)
	}
	if got.UI.Focus != response.FocusPins || got.UI.AutoDismissMs != 4000 {
		t.Errorf("unexpected ui %+v", got.UI)
	}
}

func TestValidateModelOutput_StripsCodeFence(t *testing.T) {
	fenced := "```json\n" + goodOutput + "\n```"
	if validateModelOutput(fenced) == nil {
		t.Error("fenced JSON must be accepted")
	}
}

func TestValidateModelOutput_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "here are your results!"},
		{"truncated", `{"summary": "hi"`},
		{"prose around json", `Sure! {"summary": "hi", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}} Hope that helps.`},
		{"missing summary", `{"businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
		{"empty summary", `{"summary": "  ", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
		{"summary too long", `{"summary": "` + strings.Repeat("x", 241) + `", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
		{"missing ui", `{"summary": "hi", "businessIds": [], "primaryBusinessId": null}`},
		{"missing businessIds", `{"summary": "hi", "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
		{"missing primaryBusinessId", `{"summary": "hi", "businessIds": [], "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
		{"unknown focus", `{"summary": "hi", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "fly-to-the-moon", "autoDismissMs": 4000}}`},
		{"zero autoDismiss", `{"summary": "hi", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 0}}`},
		{"negative autoDismiss", `{"summary": "hi", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": -5}}`},
		{"autoDismiss above cap", `{"summary": "hi", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 60001}}`},
		{"wrong id type", `{"summary": "hi", "businessIds": [1, 2], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateModelOutput(tt.raw); got != nil {
				t.Errorf("expected rejection, got %+v", got)
			}
		})
	}
}

func TestValidateModelOutput_SummaryAtLimit(t *testing.T) {
	// 240 runes exactly, multibyte to exercise rune counting
	summary := strings.Repeat("ы", response.SummaryMaxRunes)
	raw := `{"summary": "` + summary + `", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "detail", "autoDismissMs": 1}}`
	if validateModelOutput(raw) == nil {
		t.Error("summary at the rune limit must be accepted")
	}
}

func TestValidateModelOutput_NullPrimaryIsValid(t *testing.T) {
	// Explicit null is a legitimate "no primary"; only an absent key rejects.
	got := validateModelOutput(goodOutput)
	if got == nil {
		t.Fatal("explicit null primaryBusinessId must be accepted")
	}
	if got.PrimaryBusinessID != nil {
		t.Errorf("expected nil primary, got %v", *got.PrimaryBusinessID)
	}
}
