package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var axesFlags struct {
	labels   string
	validate string
}

var axesCmd = &cobra.Command{
	Use:   "axes",
	Short: "Inspect the axis referential",
	Long: "Without flags, lists every configured axis with its prefix and label count.\n" +
		"--labels prints the label referential of one axis; --validate checks a\n" +
		"comma-separated label list against the known prefixes.",
	RunE: runAxes,
}

func init() {
	f := axesCmd.Flags()
	f.StringVar(&axesFlags.labels, "labels", "", "Print the labels of one axis")
	f.StringVar(&axesFlags.validate, "validate", "", "Validate a comma-separated label list")
}

func runAxes(cmd *cobra.Command, _ []string) error {
	cfg := LoadConfig()
	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if axesFlags.validate != "" {
		var labels []string
		for _, l := range strings.Split(axesFlags.validate, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
		valid, invalid := registry.ValidateLabels(labels)
		fmt.Fprintf(w, "Valid:   %s\n", joinOrDash(valid))
		fmt.Fprintf(w, "Invalid: %s\n", joinOrDash(invalid))
		if len(invalid) > 0 {
			return fmt.Errorf("%d invalid label(s)", len(invalid))
		}
		return nil
	}

	if axesFlags.labels != "" {
		labels := registry.Labels(axesFlags.labels)
		if labels == nil {
			return fmt.Errorf("unknown axis '%s'", axesFlags.labels)
		}
		for _, label := range labels {
			fmt.Fprintln(w, label)
		}
		return nil
	}

	for _, name := range registry.Names() {
		axisCfg, _ := registry.Get(name)
		extract := ""
		if len(axisCfg.ExtractPatterns) > 0 {
			extract = fmt.Sprintf("  extract_patterns=%d", len(axisCfg.ExtractPatterns))
		}
		fmt.Fprintf(w, "%-25s prefix=%-5s labels=%-3d threshold=%.2f%s\n",
			name, axisCfg.Prefix, len(registry.Labels(name)), axisCfg.AmbiguityThreshold, extract)
	}
	return nil
}
