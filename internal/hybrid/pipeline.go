package hybrid

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Samy8769/mail-classifier-3/internal/arbiter"
	"github.com/Samy8769/mail-classifier-3/internal/axes"
	"github.com/Samy8769/mail-classifier-3/internal/heuristic"
)

// Email is one message as handed over by the mail system. Subject and
// body are raw text; the pipeline does its own normalization.
type Email struct {
	Subject string `yaml:"subject" json:"subject"`
	Body    string `yaml:"body" json:"body"`
}

// Pipeline runs every configured axis over one email (or one aggregated
// conversation) in a fixed order, so that axes resolved early can inform
// the arbitration of axes resolved later. A Pipeline is immutable after
// construction and safe for concurrent use.
type Pipeline struct {
	registry   *axes.Registry
	engines    map[string]*heuristic.Engine
	classifier *AxisClassifier

	order               []string
	confidenceThreshold float64
}

// New builds a pipeline over the given axis registry. A nil order uses
// the default processing order; confidenceThreshold is the minimum
// confidence for a label to appear in the flat category list (0 accepts
// every non-empty label).
func New(registry *axes.Registry, arb arbiter.Arbiter, order []string, confidenceThreshold float64) *Pipeline {
	if order == nil {
		order = axes.DefaultOrder
	}
	engines := make(map[string]*heuristic.Engine, len(registry.Names()))
	for _, name := range registry.Names() {
		cfg, _ := registry.Get(name)
		engines[name] = heuristic.NewEngine(cfg)
	}
	return &Pipeline{
		registry:            registry,
		engines:             engines,
		classifier:          NewAxisClassifier(arb),
		order:               order,
		confidenceThreshold: confidenceThreshold,
	}
}

// ClassifyEmail classifies one email across all configured axes. When no
// summary is supplied, arbitration context is built from the subject and
// the first part of the body.
func (p *Pipeline) ClassifyEmail(ctx context.Context, subject, body, summary string) Output {
	emailContext := summary
	if emailContext == "" {
		emailContext = fmt.Sprintf("Sujet: %s\n\nCorps: %s", subject, truncate(body, 1000))
	}

	results := make(map[string]AxisResult, len(p.order))
	var serials []string
	var resolved []Resolved
	var categories []string

	for _, name := range p.order {
		engine, ok := p.engines[name]
		if !ok {
			log.Printf("no configuration for axis %q, skipped", name)
			continue
		}

		hr := engine.Run(subject, body)
		serials = append(serials, hr.SerialNumbers...)

		result := p.classifier.Classify(ctx, hr, emailContext, resolved)
		results[name] = result
		resolved = append(resolved, Resolved{Axis: name, Value: result.Value})

		if result.Value != "" && result.Confidence >= p.confidenceThreshold {
			categories = append(categories, result.Value)
		}

		log.Printf("axis=%s value=%q conf=%.2f method=%s", name, result.Value, result.Confidence, result.Method)
	}

	return Output{
		Axes:          results,
		SerialNumbers: dedupSorted(serials),
		Categories:    categories,
	}
}

// ClassifyConversation classifies a whole thread as a single document:
// subjects are pipe-joined, bodies separator-joined, and the aggregate is
// classified exactly like one email. Classification is conversation
// scoped, not per message.
func (p *Pipeline) ClassifyConversation(ctx context.Context, emails []Email, summary string) Output {
	var subjects, bodies []string
	for _, e := range emails {
		if e.Subject != "" {
			subjects = append(subjects, e.Subject)
		}
		if e.Body != "" {
			bodies = append(bodies, e.Body)
		}
	}
	return p.ClassifyEmail(ctx, strings.Join(subjects, " | "), strings.Join(bodies, "\n\n---\n\n"), summary)
}

func dedupSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
