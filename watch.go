package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Samy8769/mail-classifier-3/internal/hybrid"
)

// WatchResult tracks separate counters for one mailbox sweep.
type WatchResult struct {
	Files      int
	Classified int
	Categories int
	Serials    int
	Errors     []string
}

// ProcessMailbox classifies every conversation file currently in the drop
// directory, records the results in the audit store and moves handled
// files to processed/. One broken file never stops the sweep.
func ProcessMailbox(ctx context.Context, cfg Config, db *sql.DB, pipeline *hybrid.Pipeline) (WatchResult, error) {
	files, err := ListConversationFiles(cfg.MailboxDir)
	if err != nil {
		return WatchResult{}, err
	}

	var result WatchResult
	result.Files = len(files)

	for _, path := range files {
		conv, err := LoadConversation(path)
		if err != nil {
			log.Printf("watch skip file=%s err=%v", path, err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		out := pipeline.ClassifyConversation(ctx, conv.Messages, conv.Summary)

		if _, err := InsertClassifications(db, conv.Ref, out); err != nil {
			log.Printf("watch store failed ref=%s err=%v", conv.Ref, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", conv.Ref, err))
			continue
		}
		if err := MarkProcessed(path); err != nil {
			log.Printf("watch move failed file=%s err=%v", path, err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		result.Classified++
		result.Categories += len(out.Categories)
		result.Serials += len(out.SerialNumbers)
		log.Printf("watch classified ref=%s categories=%d serials=%d", conv.Ref, len(out.Categories), len(out.SerialNumbers))
	}

	return result, nil
}

func FormatWatchSummary(result WatchResult) string {
	msg := fmt.Sprintf("Classified %d/%d conversations (%d categories, %d serial numbers)",
		result.Classified, result.Files, result.Categories, result.Serials)
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(result.Errors, "\n"))
	}
	return msg
}

// StartWatchScheduler runs mailbox sweeps on a cron schedule and posts a
// summary through the notifier after each sweep. The schedule is a
// standard 5-field cron expression (minute hour day-of-month month
// day-of-week). Examples: "*/5 * * * *" (every 5 minutes), "0 7 * * 1-5"
// (weekdays 7am).
func StartWatchScheduler(cfg Config, db *sql.DB, pipeline *hybrid.Pipeline, notifier *Notifier) error {
	schedule := strings.TrimSpace(cfg.WatchSchedule)
	if schedule == "" {
		return fmt.Errorf("watch_schedule is not set")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid watch_schedule '%s': %w", schedule, err)
	}

	log.Printf("Watch scheduled (cron: %s) on %s", schedule, cfg.MailboxDir)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next mailbox sweep at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Second))

			time.Sleep(wait)

			result, sweepErr := ProcessMailbox(context.Background(), cfg, db, pipeline)
			summary := FormatWatchSummary(result)
			if sweepErr != nil {
				log.Printf("Watch sweep error: %v", sweepErr)
				continue
			}
			log.Printf("Watch sweep complete: %s", summary)

			if result.Files > 0 {
				notifier.Post("Mailbox sweep complete: " + summary)
			}
		}
	}()

	return nil
}
