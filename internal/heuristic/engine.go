package heuristic

import "sort"

// Scoring weights. Repetitions are cumulative: every occurrence of a
// pattern adds its weight again.
const (
	SubjectWeight = 3
	BodyWeight    = 1
	SynonymBonus  = 2
)

// Candidate is one label with its accumulated score and hit provenance
// ("subj:<pattern>" or "body:<pattern>").
type Candidate struct {
	Label string   `json:"label"`
	Score float64  `json:"score"`
	Hits  []string `json:"hits"`
}

// Debug keeps the raw scoring detail for every label that passed the
// minimum-score filter, including labels cut by the candidate cap.
type Debug struct {
	RawHits map[string][]string `json:"raw_hits"`
	Scores  map[string]float64  `json:"scores"`
}

// Result is the heuristic outcome for one axis on one subject/body pair.
type Result struct {
	Axis          string
	Prefix        string
	Candidates    []Candidate
	Ambiguous     bool
	SerialNumbers []string
	Debug         Debug
}

// Best returns the top-ranked candidate.
func (r Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// BestConfidence is the top candidate's score normalized by the sum of
// all kept candidate scores; 0 when there are no candidates.
func (r Result) BestConfidence() float64 {
	if len(r.Candidates) == 0 {
		return 0
	}
	var total float64
	for _, c := range r.Candidates {
		total += c.Score
	}
	if total == 0 {
		return 0
	}
	return r.Candidates[0].Score / total
}

// Engine scores one axis. The matcher automaton and extractor regexes are
// compiled once here; Run is stateless and safe for concurrent use.
type Engine struct {
	cfg       AxisConfig
	matcher   *Matcher
	extractor *Extractor
}

func NewEngine(cfg AxisConfig) *Engine {
	e := &Engine{
		cfg:     cfg,
		matcher: NewMatcher(cfg.Keywords, cfg.Synonyms),
	}
	if len(cfg.ExtractPatterns) > 0 {
		e.extractor = NewExtractor(cfg.ExtractPatterns)
	}
	return e
}

func (e *Engine) Config() AxisConfig { return e.cfg }

// Run normalizes subject and body separately, accumulates weighted scores
// per label and returns the ranked, capped candidate list.
func (e *Engine) Run(subject, body string) Result {
	scores := make(map[string]float64)
	hits := make(map[string][]string)

	for _, m := range e.matcher.FindMatches(Normalize(subject)) {
		inc := float64(SubjectWeight)
		if m.Synonym {
			inc += SynonymBonus
		}
		scores[m.Label] += inc
		hits[m.Label] = append(hits[m.Label], "subj:"+m.Pattern)
	}
	for _, m := range e.matcher.FindMatches(Normalize(body)) {
		inc := float64(BodyWeight)
		if m.Synonym {
			inc += SynonymBonus
		}
		scores[m.Label] += inc
		hits[m.Label] = append(hits[m.Label], "body:"+m.Pattern)
	}

	var serials []string
	if e.extractor != nil {
		serials = e.extractor.Extract(subject + "\n" + body)
	}

	qualified := make([]Candidate, 0, len(scores))
	for label, score := range scores {
		if score > e.cfg.MinScore {
			qualified = append(qualified, Candidate{Label: label, Score: score, Hits: hits[label]})
		}
	}
	// Ties break on label so ranking is deterministic.
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].Score != qualified[j].Score {
			return qualified[i].Score > qualified[j].Score
		}
		return qualified[i].Label < qualified[j].Label
	})

	debug := Debug{
		RawHits: make(map[string][]string, len(qualified)),
		Scores:  make(map[string]float64, len(qualified)),
	}
	for _, c := range qualified {
		debug.RawHits[c.Label] = c.Hits
		debug.Scores[c.Label] = c.Score
	}

	top := qualified
	if len(top) > e.cfg.MaxCandidates {
		top = top[:e.cfg.MaxCandidates]
	}

	return Result{
		Axis:          e.cfg.Name,
		Prefix:        e.cfg.Prefix,
		Candidates:    top,
		Ambiguous:     e.isAmbiguous(top),
		SerialNumbers: serials,
		Debug:         debug,
	}
}

// isAmbiguous flags results that need arbitration: no candidates at all,
// or a rank-1/rank-2 score gap below the configured threshold. A single
// dominant signal is trusted without confirmation; two signals of similar
// strength are not, since related labels share much of their vocabulary.
func (e *Engine) isAmbiguous(sorted []Candidate) bool {
	if len(sorted) == 0 {
		return true
	}
	if len(sorted) == 1 {
		return false
	}
	top := sorted[0].Score
	if top == 0 {
		return true
	}
	gapRatio := (top - sorted[1].Score) / top
	return gapRatio < e.cfg.AmbiguityThreshold
}
