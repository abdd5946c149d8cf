package heuristic

import (
	"log"
	"regexp"
	"sort"
)

// Base patterns for aerospace serial/part numbers. Applied to raw text:
// case and punctuation are significant for these formats.
var basePatterns = []string{
	`\b[A-Z]{2,4}-\d{3,6}\b`,       // CAM-001234, FM-0023
	`\bSN[:\s]?\d{4,10}\b`,         // SN:12345 or SN 12345
	`\bPN[:\s]?[A-Z0-9\-]{4,15}\b`, // PN:ABC-1234
	`\b\d{4}-[A-Z]{2,4}-\d{3,6}\b`, // 2024-CAM-001
	`\b[A-Z]{2,3}\d{1,4}\b`,        // FM1, FM12, CAM001, EM002
}

// Extractor pulls serial and part numbers out of raw email text using a
// fixed battery of regular expressions plus optional per-axis extras.
// Only the equipment-designation axis is configured with one; no other
// axis may use regex-based signal.
type Extractor struct {
	regexes []*regexp.Regexp
}

// NewExtractor compiles the base patterns plus extras. An extra pattern
// that fails to compile costs recall for one format only, so it is
// skipped with a warning instead of failing the axis.
func NewExtractor(extra []string) *Extractor {
	e := &Extractor{}
	for _, p := range basePatterns {
		e.regexes = append(e.regexes, regexp.MustCompile(p))
	}
	for _, p := range extra {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Printf("extractor skipping invalid pattern %q: %v", p, err)
			continue
		}
		e.regexes = append(e.regexes, re)
	}
	return e
}

// Extract returns all serial/part numbers found in raw text,
// deduplicated and sorted.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]bool)
	for _, re := range e.regexes {
		for _, m := range re.FindAllString(text, -1) {
			seen[m] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	found := make([]string, 0, len(seen))
	for s := range seen {
		found = append(found, s)
	}
	sort.Strings(found)
	return found
}
