package hybrid

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Samy8769/mail-classifier-3/internal/arbiter"
	"github.com/Samy8769/mail-classifier-3/internal/axes"
	"github.com/Samy8769/mail-classifier-3/internal/heuristic"
)

func defaultPipeline(threshold float64) *Pipeline {
	return New(axes.Default(), arbiter.Disabled(), nil, threshold)
}

func TestClassifyPurchaseOrder(t *testing.T) {
	p := defaultPipeline(0)
	out := p.ClassifyEmail(context.Background(), "Bon de commande reçu", "Merci de traiter notre commande.", "")

	r, ok := out.Axes["type_mail"]
	if !ok {
		t.Fatal("no result for type_mail axis")
	}
	if r.Value != "T_Commande" {
		t.Fatalf("type_mail = %q, want T_Commande (candidates %+v)", r.Value, r.Candidates)
	}
	if r.Method != MethodHeuristic {
		t.Fatalf("method = %q, want heuristic", r.Method)
	}
	if r.Confidence < confidenceCutoff {
		t.Fatalf("confidence = %v, want >= %v", r.Confidence, confidenceCutoff)
	}
	found := false
	for _, c := range out.Categories {
		if c == "T_Commande" {
			found = true
		}
	}
	if !found {
		t.Fatalf("categories %v missing T_Commande", out.Categories)
	}
}

func TestClassifyCriticalDesignReview(t *testing.T) {
	p := defaultPipeline(0)
	out := p.ClassifyEmail(context.Background(),
		"CDR Review - Project X",
		"Veuillez trouver la revue critique de design CDR en pièce jointe.", "")

	r := out.Axes["jalons"]
	if r.Value != "J_CDR" {
		t.Fatalf("jalons = %q, want J_CDR (candidates %+v)", r.Value, r.Candidates)
	}
}

func TestSerialNumbersOnlyFromDesignationAxis(t *testing.T) {
	subject := "Caméra SN:12345"
	body := "L'équipement CAM-001 est prêt pour expédition."

	registry := axes.Default()
	for _, name := range registry.Names() {
		cfg, _ := registry.Get(name)
		hr := heuristic.NewEngine(cfg).Run(subject, body)
		if name == "equipement_designation" {
			continue
		}
		if len(hr.SerialNumbers) != 0 {
			t.Errorf("axis %s extracted serials %v, want none", name, hr.SerialNumbers)
		}
	}

	p := defaultPipeline(0)
	out := p.ClassifyEmail(context.Background(), subject, body, "")
	want := []string{"CAM-001", "SN:12345"}
	if diff := cmp.Diff(want, out.SerialNumbers); diff != "" {
		t.Fatalf("serial numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestConfidenceThresholdFiltersAllCategories(t *testing.T) {
	p := defaultPipeline(1.1)
	out := p.ClassifyEmail(context.Background(), "Bon de commande reçu", "Merci de traiter notre commande.", "")

	if len(out.Categories) != 0 {
		t.Fatalf("categories = %v, want empty with threshold above 1", out.Categories)
	}
	if out.Axes["type_mail"].Value != "T_Commande" {
		t.Fatal("axis resolution must not depend on the category threshold")
	}
}

func TestContextRoundTrip(t *testing.T) {
	p := defaultPipeline(0)
	out := p.ClassifyEmail(context.Background(), "Bon de commande SN:12345", "Commande CAM-001 pour la caméra.", "")

	raw, err := out.ContextJSON()
	if err != nil {
		t.Fatalf("ContextJSON: %v", err)
	}
	var parsed Context
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal context: %v", err)
	}
	if diff := cmp.Diff(out.Context(), parsed); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConversationMatchesAggregatedEmail(t *testing.T) {
	p := defaultPipeline(0)
	emails := []Email{
		{Subject: "Bon de commande", Body: "Merci de traiter notre commande."},
		{Subject: "RE: Bon de commande", Body: "Commande confirmée, expédition prévue lundi."},
		{Subject: "Sans corps"},
	}
	conv := p.ClassifyConversation(context.Background(), emails, "")
	single := p.ClassifyEmail(context.Background(),
		"Bon de commande | RE: Bon de commande | Sans corps",
		"Merci de traiter notre commande.\n\n---\n\nCommande confirmée, expédition prévue lundi.", "")

	if diff := cmp.Diff(single.Context(), conv.Context()); diff != "" {
		t.Fatalf("conversation differs from aggregated email (-want +got):\n%s", diff)
	}
}

func TestUnknownAxisSkipped(t *testing.T) {
	p := New(axes.Default(), arbiter.Disabled(), []string{"type_mail", "inconnu"}, 0)
	out := p.ClassifyEmail(context.Background(), "commande", "commande", "")

	if _, ok := out.Axes["inconnu"]; ok {
		t.Fatal("unknown axis produced a result")
	}
	if _, ok := out.Axes["type_mail"]; !ok {
		t.Fatal("known axis missing from results")
	}
}

func TestResolvedAxesFlowDownstream(t *testing.T) {
	configs := map[string]heuristic.AxisConfig{
		"premier": {
			Name: "premier", Prefix: "A_",
			Keywords:           map[string][]string{"A_Un": {"alpha"}},
			AmbiguityThreshold: 0.15, MaxCandidates: 5,
		},
		"second": {
			Name: "second", Prefix: "B_",
			Keywords: map[string][]string{
				"B_Un":   {"beta"},
				"B_Deux": {"gamma"},
			},
			AmbiguityThreshold: 0.15, MaxCandidates: 5,
		},
	}
	registry, err := axes.New(configs)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	fake := &fakeArbiter{response: "B_Deux"}
	p := New(registry, fake, []string{"premier", "second"}, 0)
	out := p.ClassifyEmail(context.Background(), "alpha", "beta gamma", "")

	if out.Axes["premier"].Value != "A_Un" || out.Axes["premier"].Method != MethodHeuristic {
		t.Fatalf("premier = %+v, want heuristic A_Un", out.Axes["premier"])
	}
	// Tied candidates on the second axis force arbitration.
	if out.Axes["second"].Method != MethodLLM || out.Axes["second"].Value != "B_Deux" {
		t.Fatalf("second = %+v, want arbitrated B_Deux", out.Axes["second"])
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("arbiter called %d times, want 1", len(fake.prompts))
	}
	if want := "premier: A_Un"; !strings.Contains(fake.prompts[0], want) {
		t.Fatalf("prompt missing resolved axis %q:\n%s", want, fake.prompts[0])
	}

	want := []string{"A_Un", "B_Deux"}
	if diff := cmp.Diff(want, out.Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}
