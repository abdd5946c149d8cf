package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Samy8769/mail-classifier-3/internal/hybrid"
)

// Conversation is one dropped thread file: an optional pre-computed
// summary plus the messages in thread order.
type Conversation struct {
	Ref      string         `yaml:"-"`
	Summary  string         `yaml:"summary"`
	Messages []hybrid.Email `yaml:"messages"`
}

// ParseConversation decodes one conversation document. The ref labels the
// source in logs and in the audit store.
func ParseConversation(data []byte, ref string) (Conversation, error) {
	var conv Conversation
	if err := yaml.Unmarshal(data, &conv); err != nil {
		return Conversation{}, fmt.Errorf("parse conversation %s: %w", ref, err)
	}
	if len(conv.Messages) == 0 {
		return Conversation{}, fmt.Errorf("conversation %s has no messages", ref)
	}
	conv.Ref = ref
	return conv, nil
}

// LoadConversation reads one conversation file. The ref is the file name
// without its extension.
func LoadConversation(path string) (Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, fmt.Errorf("read conversation: %w", err)
	}
	base := filepath.Base(path)
	return ParseConversation(data, strings.TrimSuffix(base, filepath.Ext(base)))
}

// ListConversationFiles returns the YAML drop files of the mailbox
// directory, sorted by name. The processed/ subdirectory is not descended
// into.
func ListConversationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read mailbox dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// MarkProcessed moves a handled drop file into the processed/
// subdirectory so the next watch run does not pick it up again.
func MarkProcessed(path string) error {
	dir := filepath.Join(filepath.Dir(path), "processed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move processed file: %w", err)
	}
	return nil
}
