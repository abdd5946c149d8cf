package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Samy8769/mail-classifier-3/internal/hybrid"
)

var classifyFlags struct {
	subject string
	body    string
	summary string
	asJSON  bool
	store   bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify [conversation.yaml]",
	Short: "Classify one email or one conversation file",
	Long: "Classifies a conversation YAML file (a list of {subject, body} messages),\n" +
		"a conversation piped on stdin with '-', or a single email given with\n" +
		"--subject/--body.",
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVar(&classifyFlags.subject, "subject", "", "Email subject (single-email mode)")
	f.StringVar(&classifyFlags.body, "body", "", "Email body (single-email mode)")
	f.StringVar(&classifyFlags.summary, "summary", "", "Pre-computed summary used as arbitration context")
	f.BoolVar(&classifyFlags.asJSON, "json", false, "Print the full context object as JSON")
	f.BoolVar(&classifyFlags.store, "store", false, "Record the result in the audit database")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := LoadConfig()
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var out hybrid.Output
	ref := "cli"

	if len(args) == 1 {
		var conv Conversation
		if args[0] == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			conv, err = ParseConversation(data, "stdin")
			if err != nil {
				return err
			}
		} else {
			var err error
			conv, err = LoadConversation(args[0])
			if err != nil {
				return err
			}
		}
		ref = conv.Ref
		summary := classifyFlags.summary
		if summary == "" {
			summary = conv.Summary
		}
		out = pipeline.ClassifyConversation(ctx, conv.Messages, summary)
	} else {
		if classifyFlags.subject == "" && classifyFlags.body == "" {
			return fmt.Errorf("give a conversation file or --subject/--body")
		}
		out = pipeline.ClassifyEmail(ctx, classifyFlags.subject, classifyFlags.body, classifyFlags.summary)
	}

	if classifyFlags.store {
		db, err := InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer db.Close()
		if _, err := InsertClassifications(db, ref, out); err != nil {
			return fmt.Errorf("store result: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	if classifyFlags.asJSON {
		raw, err := out.ContextJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, raw)
		return nil
	}

	fmt.Fprintf(w, "Categories: %s\n", joinOrDash(out.Categories))
	fmt.Fprintf(w, "Serials:    %s\n", joinOrDash(out.SerialNumbers))
	for _, axis := range sortedAxisNames(out.Axes) {
		r := out.Axes[axis]
		value := r.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %-25s %-25s conf=%.2f method=%s\n", axis, value, r.Confidence, r.Method)
	}
	return nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
