package axes

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Samy8769/mail-classifier-3/internal/heuristic"
)

// Registry is the validated, immutable set of axis configurations one
// pipeline works with. Construct it once at startup and inject it; there
// is no ambient global, so tests can use isolated fixtures.
type Registry struct {
	configs map[string]heuristic.AxisConfig
}

// New validates every configuration and returns the registry. A single
// inconsistent axis fails the whole load: the engine must not start on a
// referential it cannot trust.
func New(configs map[string]heuristic.AxisConfig) (*Registry, error) {
	for name, cfg := range configs {
		if cfg.Name != name {
			return nil, fmt.Errorf("axis registered as %q but named %q", name, cfg.Name)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return &Registry{configs: configs}, nil
}

// Default returns a registry over the built-in referential.
func Default() *Registry {
	r, err := New(Builtin())
	if err != nil {
		panic(fmt.Sprintf("built-in axis referential invalid: %v", err))
	}
	return r
}

// Get returns the configuration for one axis.
func (r *Registry) Get(name string) (heuristic.AxisConfig, bool) {
	cfg, ok := r.configs[name]
	return cfg, ok
}

// Names returns all configured axis names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Labels returns the sorted label referential of one axis.
func (r *Registry) Labels(axis string) []string {
	cfg, ok := r.configs[axis]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	for label := range cfg.Keywords {
		seen[label] = true
	}
	for label := range cfg.Synonyms {
		seen[label] = true
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// AxisForLabel resolves the axis a label belongs to by its prefix. The
// longest matching prefix wins so EQT_ labels never land on the EQ_ axis
// and TC_ labels never land on T_.
func (r *Registry) AxisForLabel(label string) (string, bool) {
	bestAxis := ""
	bestLen := 0
	for name, cfg := range r.configs {
		if strings.HasPrefix(label, cfg.Prefix) && len(cfg.Prefix) > bestLen {
			bestAxis = name
			bestLen = len(cfg.Prefix)
		}
	}
	return bestAxis, bestLen > 0
}

// ValidateLabels splits labels into those carrying a known axis prefix
// (with a non-empty remainder) and the rest.
func (r *Registry) ValidateLabels(labels []string) (valid, invalid []string) {
	for _, label := range labels {
		axis, ok := r.AxisForLabel(label)
		if !ok {
			invalid = append(invalid, label)
			continue
		}
		cfg := r.configs[axis]
		if len(label) == len(cfg.Prefix) {
			invalid = append(invalid, label)
			continue
		}
		valid = append(valid, label)
	}
	return valid, invalid
}

// Override file schema. An axis entry replaces the axis wholesale, so a
// deployment's closed lists (clients, projects, suppliers) come entirely
// from its own referential file.
type overrideFile struct {
	Axes map[string]overrideAxis `yaml:"axes"`
}

type overrideAxis struct {
	Prefix             string                   `yaml:"prefix"`
	AmbiguityThreshold *float64                 `yaml:"ambiguity_threshold"`
	MinScore           float64                  `yaml:"min_score"`
	MaxCandidates      int                      `yaml:"max_candidates"`
	ExtractPatterns    []string                 `yaml:"extract_patterns"`
	Labels             map[string]overrideLabel `yaml:"labels"`
}

type overrideLabel struct {
	Keywords []string `yaml:"keywords"`
	Synonyms []string `yaml:"synonyms"`
}

// LoadOverrides reads a YAML referential file and merges it into configs,
// replacing any axis it names. Validation happens later in New, once the
// full set is assembled.
func LoadOverrides(configs map[string]heuristic.AxisConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read axis file: %w", err)
	}
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse axis file %s: %w", path, err)
	}

	for name, entry := range file.Axes {
		cfg := heuristic.AxisConfig{
			Name:               name,
			Prefix:             entry.Prefix,
			Keywords:           make(map[string][]string, len(entry.Labels)),
			Synonyms:           make(map[string][]string, len(entry.Labels)),
			ExtractPatterns:    entry.ExtractPatterns,
			AmbiguityThreshold: 0.15,
			MinScore:           entry.MinScore,
			MaxCandidates:      entry.MaxCandidates,
		}
		if entry.AmbiguityThreshold != nil {
			cfg.AmbiguityThreshold = *entry.AmbiguityThreshold
		}
		if cfg.MaxCandidates == 0 {
			cfg.MaxCandidates = 5
		}
		for label, def := range entry.Labels {
			cfg.Keywords[label] = def.Keywords
			cfg.Synonyms[label] = def.Synonyms
		}
		configs[name] = cfg
	}
	return nil
}
