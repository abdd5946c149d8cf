package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var watchFlags struct {
	once bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Classify conversation files dropped into the mailbox directory",
	Long: "Sweeps the mailbox directory for conversation YAML files, classifies each\n" +
		"one, records the results and moves handled files to processed/. With a\n" +
		"watch_schedule the sweep repeats on the cron schedule.",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchFlags.once, "once", false, "Run a single sweep and exit")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := LoadConfig()
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if watchFlags.once {
		result, err := ProcessMailbox(context.Background(), cfg, db, pipeline)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), FormatWatchSummary(result))
		return nil
	}

	notifier := NewNotifier(cfg)
	if err := StartWatchScheduler(cfg, db, pipeline, notifier); err != nil {
		return err
	}
	select {}
}
