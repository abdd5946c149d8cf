package axes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinHasAllAxes(t *testing.T) {
	configs := Builtin()
	if len(configs) != 14 {
		t.Fatalf("expected 14 axes, got %d", len(configs))
	}
	for _, name := range DefaultOrder {
		if _, ok := configs[name]; !ok {
			t.Errorf("axis %q in default order but not built in", name)
		}
	}
}

func TestBuiltinValidates(t *testing.T) {
	if _, err := New(Builtin()); err != nil {
		t.Fatalf("built-in referential rejected: %v", err)
	}
}

func TestBuiltinPrefixInvariant(t *testing.T) {
	for name, cfg := range Builtin() {
		for _, labels := range []map[string][]string{cfg.Keywords, cfg.Synonyms} {
			for label := range labels {
				if len(label) < len(cfg.Prefix) || label[:len(cfg.Prefix)] != cfg.Prefix {
					t.Errorf("axis %s: label %q missing prefix %q", name, label, cfg.Prefix)
				}
			}
		}
	}
}

func TestOnlyDesignationAxisExtracts(t *testing.T) {
	for name, cfg := range Builtin() {
		if name == "equipement_designation" {
			if len(cfg.ExtractPatterns) == 0 {
				t.Error("designation axis must carry extraction patterns")
			}
			continue
		}
		if len(cfg.ExtractPatterns) != 0 {
			t.Errorf("axis %s must not carry extraction patterns", name)
		}
	}
}

func TestNewRejectsBadAxis(t *testing.T) {
	configs := Builtin()
	bad := configs["client"]
	bad.Keywords["X_Intrus"] = []string{"intrus"}
	configs["client"] = bad
	if _, err := New(configs); err == nil {
		t.Fatal("mis-prefixed label must fail registry construction")
	}
}

func TestNewRejectsNameMismatch(t *testing.T) {
	configs := Builtin()
	moved := configs["client"]
	configs["clients"] = moved
	delete(configs, "client")
	if _, err := New(configs); err == nil {
		t.Fatal("axis registered under the wrong name must be rejected")
	}
}

func TestAxisForLabelLongestPrefix(t *testing.T) {
	r := Default()
	cases := map[string]string{
		"EQT_Camera":   "equipement_type",
		"EQ_FM1":       "equipement_designation",
		"TC_Test":      "technique",
		"T_Commande":   "type_mail",
		"NRB_Ouvert":   "nrb",
		"AN_Thermique": "anomalies",
	}
	for label, want := range cases {
		got, ok := r.AxisForLabel(label)
		if !ok || got != want {
			t.Errorf("AxisForLabel(%q) = %q, %v; want %q", label, got, ok, want)
		}
	}
	if _, ok := r.AxisForLabel("ZZ_Nothing"); ok {
		t.Error("unknown prefix must not resolve")
	}
}

func TestValidateLabels(t *testing.T) {
	r := Default()
	valid, invalid := r.ValidateLabels([]string{"T_Commande", "J_CDR", "ZZ_Nope", "S_"})
	if len(valid) != 2 {
		t.Fatalf("unexpected valid set: %v", valid)
	}
	if len(invalid) != 2 {
		t.Fatalf("unexpected invalid set: %v", invalid)
	}
}

func TestLoadOverridesReplacesAxis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axes.yaml")
	content := `
axes:
  client:
    prefix: C_
    ambiguity_threshold: 0.10
    labels:
      C_Acme:
        keywords: [acme]
        synonyms: [acme corp]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write axes file: %v", err)
	}

	configs := Builtin()
	if err := LoadOverrides(configs, path); err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	r, err := New(configs)
	if err != nil {
		t.Fatalf("registry rejected overrides: %v", err)
	}

	labels := r.Labels("client")
	if len(labels) != 1 || labels[0] != "C_Acme" {
		t.Fatalf("override did not replace client axis: %v", labels)
	}
	cfg, _ := r.Get("client")
	if cfg.AmbiguityThreshold != 0.10 {
		t.Fatalf("unexpected threshold %v", cfg.AmbiguityThreshold)
	}
	if cfg.MaxCandidates != 5 {
		t.Fatalf("default max candidates not applied: %d", cfg.MaxCandidates)
	}
}

func TestLoadOverridesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axes.yaml")
	if err := os.WriteFile(path, []byte("axes: [not a map"), 0o644); err != nil {
		t.Fatalf("write axes file: %v", err)
	}
	if err := LoadOverrides(Builtin(), path); err == nil {
		t.Fatal("malformed YAML must be reported")
	}
}

func TestLoadOverridesBadAxisFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axes.yaml")
	content := `
axes:
  client:
    prefix: C_
    labels:
      WRONG_Label:
        keywords: [oops]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write axes file: %v", err)
	}
	configs := Builtin()
	if err := LoadOverrides(configs, path); err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	if _, err := New(configs); err == nil {
		t.Fatal("mis-prefixed override label must fail validation")
	}
}
