package heuristic

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// Match is one occurrence of an indexed pattern in a normalized text.
// The same occurrence is reported once per label sharing the pattern;
// that overlap exists on purpose in the keyword data.
type Match struct {
	Pattern string
	Label   string
	Synonym bool
}

type payload struct {
	label   string
	synonym bool
}

type pattern struct {
	text     string
	runeLen  int
	payloads []payload
}

type trieNode struct {
	next map[byte]int32
	fail int32
	out  []int32 // pattern indices ending at this node
}

// Matcher finds every occurrence of every indexed keyword/synonym in a
// normalized text. Patterns are normalized and compiled into an
// Aho-Corasick automaton once at construction, so a scan costs O(len(text))
// plus the number of hits regardless of how many patterns an axis carries.
type Matcher struct {
	patterns []pattern
	nodes    []trieNode
}

// NewMatcher indexes keywordMap and synonymMap (label -> raw patterns).
// Patterns are normalized before indexing; empty ones are dropped.
func NewMatcher(keywordMap, synonymMap map[string][]string) *Matcher {
	m := &Matcher{}

	index := make(map[string]int32)
	add := func(raw, label string, synonym bool) {
		text := Normalize(raw)
		if text == "" {
			return
		}
		i, ok := index[text]
		if !ok {
			i = int32(len(m.patterns))
			index[text] = i
			m.patterns = append(m.patterns, pattern{text: text, runeLen: utf8.RuneCountInString(text)})
		}
		m.patterns[i].payloads = append(m.patterns[i].payloads, payload{label: label, synonym: synonym})
	}

	for _, label := range sortedKeys(keywordMap) {
		for _, kw := range keywordMap[label] {
			add(kw, label, false)
		}
	}
	for _, label := range sortedKeys(synonymMap) {
		for _, syn := range synonymMap[label] {
			add(syn, label, true)
		}
	}

	m.build()
	return m
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Matcher) build() {
	m.nodes = []trieNode{{next: make(map[byte]int32)}}

	for i, p := range m.patterns {
		cur := int32(0)
		for j := 0; j < len(p.text); j++ {
			b := p.text[j]
			nxt, ok := m.nodes[cur].next[b]
			if !ok {
				nxt = int32(len(m.nodes))
				m.nodes = append(m.nodes, trieNode{next: make(map[byte]int32)})
				m.nodes[cur].next[b] = nxt
			}
			cur = nxt
		}
		m.nodes[cur].out = append(m.nodes[cur].out, int32(i))
	}

	// BFS failure links; each node inherits the output set of its
	// failure target so nested suffix patterns are reported too.
	queue := make([]int32, 0, len(m.nodes))
	for _, child := range m.nodes[0].next {
		m.nodes[child].fail = 0
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b, child := range m.nodes[cur].next {
			fail := m.step(m.nodes[cur].fail, b)
			m.nodes[child].fail = fail
			m.nodes[child].out = append(m.nodes[child].out, m.nodes[fail].out...)
			queue = append(queue, child)
		}
	}
}

// step advances the automaton from state over b, following failure links.
func (m *Matcher) step(state int32, b byte) int32 {
	for {
		if nxt, ok := m.nodes[state].next[b]; ok {
			return nxt
		}
		if state == 0 {
			return 0
		}
		state = m.nodes[state].fail
	}
}

// FindMatches scans text (already normalized) and returns every pattern
// occurrence that respects token boundaries. Patterns of one or two runes
// need a clean boundary on both sides; longer ones on at least one side,
// so "commande" still matches inside "commandes" but "nc" never matches
// inside "branch". An empty index matches nothing.
func (m *Matcher) FindMatches(text string) []Match {
	if len(m.patterns) == 0 || text == "" {
		return nil
	}

	var results []Match
	state := int32(0)
	for i := 0; i < len(text); i++ {
		state = m.step(state, text[i])
		for _, pi := range m.nodes[state].out {
			p := m.patterns[pi]
			start := i - len(p.text) + 1
			beforeOK := start == 0 || !isAlnumBefore(text, start)
			afterOK := i+1 >= len(text) || !isAlnumAt(text, i+1)
			if p.runeLen <= 2 {
				if !beforeOK || !afterOK {
					continue
				}
			} else if !beforeOK && !afterOK {
				continue
			}
			for _, pl := range p.payloads {
				results = append(results, Match{Pattern: p.text, Label: pl.label, Synonym: pl.synonym})
			}
		}
	}
	return results
}

func isAlnumBefore(text string, pos int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isAlnumAt(text string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
