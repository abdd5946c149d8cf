package hybrid

import (
	"encoding/json"
	"math"
)

// Output is the full result of one classification call: per-axis
// decisions, the deduplicated serial numbers collected across axes, and
// the flat category list retained for downstream consumers.
type Output struct {
	Axes          map[string]AxisResult
	SerialNumbers []string
	Categories    []string
}

// Context is the serializable audit form of an Output. Its JSON encoding
// is the canonical shape for audit logging and downstream prompts; it
// must survive a marshal/unmarshal round trip unchanged.
type Context struct {
	Axes          map[string]AxisContextEntry `json:"axes"`
	SerialNumbers []string                    `json:"serial_numbers"`
	Debug         ContextDebug                `json:"debug"`
}

// AxisContextEntry summarizes one axis decision. Value is empty when no
// label applied.
type AxisContextEntry struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// ContextDebug nests per-axis raw hits and raw scores.
type ContextDebug struct {
	RawHits map[string]map[string][]string `json:"raw_hits"`
	Scores  map[string]map[string]float64  `json:"scores"`
}

// Context builds the structured audit object, with confidences rounded
// to three decimals.
func (o Output) Context() Context {
	entries := make(map[string]AxisContextEntry, len(o.Axes))
	rawHits := make(map[string]map[string][]string, len(o.Axes))
	scores := make(map[string]map[string]float64, len(o.Axes))

	for name, r := range o.Axes {
		entries[name] = AxisContextEntry{
			Value:      r.Value,
			Confidence: round3(r.Confidence),
			Method:     r.Method,
		}
		rawHits[name] = r.Debug.RawHits
		scores[name] = r.Debug.Scores
	}

	return Context{
		Axes:          entries,
		SerialNumbers: o.SerialNumbers,
		Debug:         ContextDebug{RawHits: rawHits, Scores: scores},
	}
}

// ContextJSON serializes the audit context with indentation.
func (o Output) ContextJSON() (string, error) {
	data, err := json.MarshalIndent(o.Context(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
