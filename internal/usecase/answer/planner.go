package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/atlas/internal/domain/business"
)

// systemPrompt instructs the model to return strict JSON in the
// AtlasResponse shape. The id fields are requested only to keep the shape
// stable; the assembler overwrites them regardless.
const systemPrompt = `You are a concise local guide for a map assistant.
You are given a short list of businesses. Answer with strict JSON only, no prose, no markdown, in this exact shape:
{"summary": "<one sentence, at most 200 characters>", "businessIds": [], "primaryBusinessId": null, "ui": {"focus": "pins", "autoDismissMs": 4000}}
"focus" must be one of "pins", "route", "detail". Never invent businesses that are not in the list.`

// buildUserPrompt renders the display-only context for the top-N
// candidates: name, rounded rating, tier label. Internal ids, coordinates
// and raw tier enums deliberately never reach the model.
func buildUserPrompt(queryText string, ranked []business.Ranked) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n\nMatching businesses, best first:\n", queryText)
	for i := range ranked {
		r := &ranked[i]
		if r.Rating() > 0 {
			fmt.Fprintf(&b, "%d. %s — rated %.1f — %s\n",
				i+1, r.DisplayName(), r.Rating(), r.Tier().Label())
		} else {
			fmt.Fprintf(&b, "%d. %s — not yet rated — %s\n",
				i+1, r.DisplayName(), r.Tier().Label())
		}
	}
	b.WriteString("\nSummarize what was found in one friendly sentence.")
	return b.String()
}
