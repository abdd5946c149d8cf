package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusFlags struct {
	days int
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show audit-store statistics",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusFlags.days, "days", 30, "How many days back to aggregate")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg := LoadConfig()
	db, err := InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	since := time.Now().AddDate(0, 0, -statusFlags.days)
	stats, err := GetClassificationStats(db, since)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Since:           %s (%d days)\n", since.Format("2006-01-02"), statusFlags.days)
	fmt.Fprintf(w, "Conversations:   %d\n", stats.Conversations)
	fmt.Fprintf(w, "Axis decisions:  %d\n", stats.TotalClassifications)
	fmt.Fprintf(w, "Avg confidence:  %.3f\n", stats.AvgConfidence)
	fmt.Fprintf(w, "By method:       heuristic=%d llm=%d none=%d\n",
		stats.HeuristicCount, stats.LLMCount, stats.NoneCount)
	fmt.Fprintf(w, "Confidence:      <0.5: %d  0.5-0.7: %d  0.7-0.9: %d  >=0.9: %d\n",
		stats.BucketBelow50, stats.Bucket50to70, stats.Bucket70to90, stats.Bucket90Plus)
	return nil
}
