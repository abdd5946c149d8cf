package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))

	cfg := LoadConfig()

	if cfg.ArbiterProvider != "none" {
		t.Fatalf("unexpected provider default: %q", cfg.ArbiterProvider)
	}
	if cfg.DBPath != "./classifier.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.MailboxDir != "./mailbox" {
		t.Fatalf("unexpected mailbox default: %q", cfg.MailboxDir)
	}
	if cfg.ConfidenceThreshold != 0 {
		t.Fatalf("unexpected threshold default: %v", cfg.ConfidenceThreshold)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `arbiter_provider: openai
openai_api_key: sk-test
arbiter_base_url: http://localhost:8000/v1
confidence_threshold: 0.4
db_path: /tmp/audit.db
axis_order:
  - type_mail
  - projet
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg := LoadConfig()

	if cfg.ArbiterProvider != "openai" {
		t.Fatalf("provider = %q, want openai", cfg.ArbiterProvider)
	}
	if cfg.ArbiterBaseURL != "http://localhost:8000/v1" {
		t.Fatalf("base url = %q", cfg.ArbiterBaseURL)
	}
	if cfg.ConfidenceThreshold != 0.4 {
		t.Fatalf("threshold = %v, want 0.4", cfg.ConfidenceThreshold)
	}
	if cfg.DBPath != "/tmp/audit.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if len(cfg.AxisOrder) != 2 || cfg.AxisOrder[0] != "type_mail" || cfg.AxisOrder[1] != "projet" {
		t.Fatalf("axis order = %v", cfg.AxisOrder)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: /tmp/from-yaml.db\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_PATH", "/tmp/from-env.db")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.7")
	t.Setenv("AXIS_ORDER", "jalons, nrb,")

	cfg := LoadConfig()

	if cfg.DBPath != "/tmp/from-env.db" {
		t.Fatalf("env did not override yaml: %q", cfg.DBPath)
	}
	if cfg.ConfidenceThreshold != 0.7 {
		t.Fatalf("threshold = %v, want 0.7", cfg.ConfidenceThreshold)
	}
	if len(cfg.AxisOrder) != 2 || cfg.AxisOrder[0] != "jalons" || cfg.AxisOrder[1] != "nrb" {
		t.Fatalf("axis order = %v", cfg.AxisOrder)
	}
}

func TestBuildArbiterDisabled(t *testing.T) {
	cfg := Config{ArbiterProvider: "none"}
	arb, err := cfg.BuildArbiter()
	if err != nil {
		t.Fatalf("BuildArbiter: %v", err)
	}
	if arb.Enabled() {
		t.Fatal("arbiter enabled with provider=none")
	}
}

func TestBuildArbiterUsesProviderKey(t *testing.T) {
	cfg := Config{ArbiterProvider: "openai", OpenAIAPIKey: "sk-test"}
	arb, err := cfg.BuildArbiter()
	if err != nil {
		t.Fatalf("BuildArbiter: %v", err)
	}
	if !arb.Enabled() {
		t.Fatal("arbiter disabled with a configured provider")
	}

	cfg = Config{ArbiterProvider: "openai", AnthropicAPIKey: "sk-ant"}
	if _, err := cfg.BuildArbiter(); err == nil {
		t.Fatal("expected error when the selected provider has no key")
	}
}
