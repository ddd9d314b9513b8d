package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/poll"
	"github.com/jonathan/resume-review-dashboard/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Poll a job until it completes or fails",
	Long: `Poll the job list until the job reaches a terminal status. The delay between polls grows
from --interval up to the configured maximum, and polling gives up after --max-attempts polls.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchInterval    time.Duration
	watchMaxAttempts int
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "First delay between polls (overrides POLL_INTERVAL)")
	watchCmd.Flags().IntVar(&watchMaxAttempts, "max-attempts", 0, "Give up after this many polls (overrides POLL_MAX_ATTEMPTS)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if !a.shell.Mount(ctx).IsAuthenticated {
		return errNotSignedIn
	}

	cfg := poll.Config{
		Interval:    a.cfg.PollInterval.Duration,
		MaxInterval: a.cfg.PollMaxInterval.Duration,
		MaxAttempts: a.cfg.PollMaxAttempts,
	}
	if watchInterval > 0 {
		cfg.Interval = watchInterval
	}
	if watchMaxAttempts > 0 {
		cfg.MaxAttempts = watchMaxAttempts
	}

	jobID := types.ID(args[0])
	job, err := poll.NewWatcher(a.client, cfg, a.logger).Watch(ctx, jobID, a.printer.PrintJobStatus)
	if err != nil {
		if ctx.Err() == context.Canceled {
			_, _ = fmt.Fprintln(a.out, "Stopped watching")
			return nil
		}
		return fmt.Errorf("watch job %s: %w", jobID, err)
	}

	_, _ = fmt.Fprintf(a.out, "Job %s finished: %s\n", job.ID, job.Status)
	return nil
}
