package heuristic

import (
	"fmt"
	"strings"
)

// AxisConfig is the complete keyword configuration for one classification
// axis. Built once at startup and never mutated afterwards.
type AxisConfig struct {
	// Name identifies the axis (e.g. "type_mail").
	Name string
	// Prefix is the label family marker (e.g. "T_"); every label in
	// Keywords and Synonyms must start with it.
	Prefix string
	// Keywords maps label -> base-score patterns.
	Keywords map[string][]string
	// Synonyms maps label -> patterns that earn the synonym bonus.
	Synonyms map[string][]string
	// ExtractPatterns holds extra serial-number regexes; non-empty only
	// for the equipment-designation axis.
	ExtractPatterns []string
	// AmbiguityThreshold is the score-gap ratio below which the top two
	// candidates are considered too close to trust.
	AmbiguityThreshold float64
	// MinScore discards candidates scoring at or below it.
	MinScore float64
	// MaxCandidates caps the ranked candidate list.
	MaxCandidates int
}

// Validate reports the first inconsistency in the configuration. An axis
// that fails validation must not be loaded.
func (c AxisConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("axis has no name")
	}
	if c.Prefix == "" {
		return fmt.Errorf("axis %q has no prefix", c.Name)
	}
	if c.AmbiguityThreshold < 0 || c.AmbiguityThreshold > 1 {
		return fmt.Errorf("axis %q: ambiguity threshold %v out of [0,1]", c.Name, c.AmbiguityThreshold)
	}
	if c.MinScore < 0 {
		return fmt.Errorf("axis %q: negative min score %v", c.Name, c.MinScore)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("axis %q: max candidates %d must be >= 1", c.Name, c.MaxCandidates)
	}
	for label := range c.Keywords {
		if !strings.HasPrefix(label, c.Prefix) {
			return fmt.Errorf("axis %q: keyword label %q does not start with prefix %q", c.Name, label, c.Prefix)
		}
	}
	for label := range c.Synonyms {
		if !strings.HasPrefix(label, c.Prefix) {
			return fmt.Errorf("axis %q: synonym label %q does not start with prefix %q", c.Name, label, c.Prefix)
		}
	}
	return nil
}
