package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConversation(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleConversationYAML = `summary: Commande de caméra
messages:
  - subject: Bon de commande
    body: Merci de traiter notre commande CAM-001.
  - subject: "RE: Bon de commande"
    body: Commande confirmée.
`

func TestLoadConversation(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "conv-2026-08-001.yaml", sampleConversationYAML)

	conv, err := LoadConversation(path)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if conv.Ref != "conv-2026-08-001" {
		t.Fatalf("ref = %q, want conv-2026-08-001", conv.Ref)
	}
	if conv.Summary != "Commande de caméra" {
		t.Fatalf("summary = %q", conv.Summary)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(conv.Messages))
	}
	if conv.Messages[0].Subject != "Bon de commande" {
		t.Fatalf("first subject = %q", conv.Messages[0].Subject)
	}
}

func TestParseConversationKeepsGivenRef(t *testing.T) {
	conv, err := ParseConversation([]byte(sampleConversationYAML), "stdin")
	if err != nil {
		t.Fatalf("ParseConversation: %v", err)
	}
	if conv.Ref != "stdin" {
		t.Fatalf("ref = %q, want stdin", conv.Ref)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(conv.Messages))
	}
}

func TestLoadConversationRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "empty.yaml", "summary: rien\n")

	if _, err := LoadConversation(path); err == nil {
		t.Fatal("expected error for a conversation without messages")
	}
}

func TestLoadConversationBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "bad.yaml", "messages: [unclosed\n")

	if _, err := LoadConversation(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestListConversationFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeConversation(t, dir, "b.yaml", sampleConversationYAML)
	a := writeConversation(t, dir, "a.yml", sampleConversationYAML)
	writeConversation(t, dir, "notes.txt", "ignore me")
	if err := os.MkdirAll(filepath.Join(dir, "processed"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConversation(t, filepath.Join(dir, "processed"), "old.yaml", sampleConversationYAML)

	files, err := ListConversationFiles(dir)
	if err != nil {
		t.Fatalf("ListConversationFiles: %v", err)
	}
	if diff := cmp.Diff([]string{a, b}, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "done.yaml", sampleConversationYAML)

	if err := MarkProcessed(path); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("original file still present: %v", err)
	}
	moved := filepath.Join(dir, "processed", "done.yaml")
	if _, err := os.Stat(moved); err != nil {
		t.Fatalf("processed file missing: %v", err)
	}
}
