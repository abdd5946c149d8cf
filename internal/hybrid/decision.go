// Package hybrid combines heuristic keyword scoring with selective
// arbitration. The heuristic path is the fast common case; an external
// arbiter is consulted only when the scoring leaves room for doubt, and
// it may only pick from the heuristic candidate list.
package hybrid

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/Samy8769/mail-classifier-3/internal/arbiter"
	"github.com/Samy8769/mail-classifier-3/internal/heuristic"
)

// Resolution methods recorded on every axis result.
const (
	MethodHeuristic = "heuristic"
	MethodLLM       = "llm"
	MethodNone      = "none"
)

// confidenceCutoff is the minimum normalized confidence for accepting a
// clear heuristic winner without arbitration.
const confidenceCutoff = 0.55

// Arbitrated-result confidences. A confident negative is still a
// meaningful answer, hence the small gap between the two.
const (
	chosenConfidence   = 0.9
	negativeConfidence = 0.85
)

// AxisDebug carries the scoring detail plus any arbitration trace for one
// axis decision. It is audit data, never consulted by the pipeline itself.
type AxisDebug struct {
	RawHits map[string][]string `json:"raw_hits"`
	Scores  map[string]float64  `json:"scores"`

	Note                string `json:"note,omitempty"`
	ArbitrationReason   string `json:"llm_reason,omitempty"`
	ArbitrationResponse string `json:"llm_response,omitempty"`
	ArbitrationError    string `json:"llm_error,omitempty"`
}

// AxisResult is the final decision for one axis: a label (empty when no
// label applies), how it was obtained, and with what confidence.
type AxisResult struct {
	Axis       string
	Prefix     string
	Value      string
	Confidence float64
	Method     string
	Candidates []heuristic.Candidate
	Debug      AxisDebug
}

// Resolved is one already-decided axis, passed in processing order as
// disambiguating context to the axes that follow it.
type Resolved struct {
	Axis  string
	Value string
}

// AxisClassifier decides one axis from its heuristic result, escalating
// to the arbiter only when the heuristic is not trusted on its own.
type AxisClassifier struct {
	arb arbiter.Arbiter
}

func NewAxisClassifier(arb arbiter.Arbiter) *AxisClassifier {
	if arb == nil {
		arb = arbiter.Disabled()
	}
	return &AxisClassifier{arb: arb}
}

// Classify applies the decision tree:
//
//  1. no candidates: arbitrate if possible, otherwise no label.
//  2. clear winner at or above the confidence cutoff: accept directly,
//     no external call.
//  3. ambiguous or weak, arbiter available: arbitrate over the candidates.
//  4. ambiguous or weak, no arbiter: best candidate at half confidence.
//
// Classify never returns an error; arbitration failures degrade to the
// heuristic fallback and are recorded in the debug payload.
func (c *AxisClassifier) Classify(ctx context.Context, hr heuristic.Result, emailContext string, resolved []Resolved) AxisResult {
	canArbitrate := c.arb.Enabled() && emailContext != ""

	if len(hr.Candidates) == 0 {
		if canArbitrate {
			return c.arbitrate(ctx, hr, emailContext, resolved, "no_match")
		}
		return c.result(hr, "", 0, MethodNone, AxisDebug{})
	}

	best, _ := hr.Best()
	confidence := hr.BestConfidence()

	if !hr.Ambiguous && confidence >= confidenceCutoff {
		return c.result(hr, best.Label, confidence, MethodHeuristic, AxisDebug{})
	}

	if canArbitrate {
		return c.arbitrate(ctx, hr, emailContext, resolved, "ambiguous")
	}

	return c.result(hr, best.Label, confidence*0.5, MethodHeuristic, AxisDebug{Note: "ambiguous_no_llm"})
}

func (c *AxisClassifier) result(hr heuristic.Result, value string, confidence float64, method string, extra AxisDebug) AxisResult {
	extra.RawHits = hr.Debug.RawHits
	extra.Scores = hr.Debug.Scores
	return AxisResult{
		Axis:       hr.Axis,
		Prefix:     hr.Prefix,
		Value:      value,
		Confidence: confidence,
		Method:     method,
		Candidates: hr.Candidates,
		Debug:      extra,
	}
}

func (c *AxisClassifier) arbitrate(ctx context.Context, hr heuristic.Result, emailContext string, resolved []Resolved, reason string) AxisResult {
	prompt := buildPrompt(hr, emailContext, resolved)

	raw, err := c.arb.Arbitrate(ctx, prompt)
	if err != nil {
		log.Printf("arbitration failed axis=%s err=%v", hr.Axis, err)
		value, confidence := "", 0.0
		if best, ok := hr.Best(); ok {
			value = best.Label
			confidence = fallbackConfidence(hr)
		}
		return c.result(hr, value, confidence, MethodHeuristic, AxisDebug{ArbitrationError: err.Error()})
	}

	raw = strings.TrimSpace(raw)
	value := parseArbitration(raw, hr)
	confidence := negativeConfidence
	if value != "" {
		confidence = chosenConfidence
	}
	return c.result(hr, value, confidence, MethodLLM, AxisDebug{
		ArbitrationReason:   reason,
		ArbitrationResponse: raw,
	})
}

// fallbackConfidence halves the normalized best-candidate confidence,
// marking the result as a degraded answer.
func fallbackConfidence(hr heuristic.Result) float64 {
	best, ok := hr.Best()
	if !ok {
		return 0
	}
	var total float64
	for _, c := range hr.Candidates {
		total += c.Score
	}
	if total < 1 {
		total = 1
	}
	return best.Score / total * 0.5
}

// parseArbitration extracts a candidate label from the raw arbiter
// response. The arbiter can never introduce a label outside the candidate
// set. An exact match is authoritative; substring containment in either
// direction tolerates decoration and truncation; anything else falls back
// to the heuristic best. Returns "" for the explicit negative sentinel.
func parseArbitration(response string, hr heuristic.Result) string {
	if response == "" || strings.EqualFold(response, "AUCUN") {
		return ""
	}

	for _, c := range hr.Candidates {
		if response == c.Label {
			return c.Label
		}
	}
	// Longest label first, so "J_CDR_Final" beats "J_CDR" when both are
	// contained in the response and neither matched exactly.
	byLength := make([]string, 0, len(hr.Candidates))
	for _, c := range hr.Candidates {
		byLength = append(byLength, c.Label)
	}
	sort.Slice(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })

	for _, label := range byLength {
		if strings.Contains(response, label) {
			return label
		}
	}
	upper := strings.ToUpper(response)
	for _, label := range byLength {
		if strings.Contains(strings.ToUpper(label), upper) {
			return label
		}
	}

	log.Printf("unexpected arbitration response axis=%s response=%q, falling back to heuristic best", hr.Axis, response)
	if best, ok := hr.Best(); ok {
		return best.Label
	}
	return ""
}
