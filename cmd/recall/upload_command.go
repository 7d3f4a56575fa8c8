package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recall/internal/api"
	"recall/internal/importer"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.txt>",
		Short: "Import a word list and follow the import until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			cfg := ctx.configValue()

			tracker := importer.New(client, cfg, importer.WithLogger(ctx.ensureLogger()))
			defer tracker.Stop()

			taskID, err := tracker.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Upload accepted, task %s\n", taskID)

			job, err := followImport(cmd.Context(), tracker, func(snapshot api.ImportStatus) {
				if stdoutIsTerminal() {
					fmt.Fprintf(out, "\r%-60s", importer.Summarize(snapshot))
				}
			})
			if stdoutIsTerminal() {
				fmt.Fprintln(out)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, importer.Summarize(job))
			for _, detail := range job.FailedDetails {
				fmt.Fprintf(out, "  %s: %s (%s)\n", detail.Word, detail.Reason, statusLabel(detail.Stage))
			}

			if job.Status == api.TaskCompleted {
				// Keep the success visible before moving on, mirroring the
				// grace delay the upload view uses before navigating away.
				time.Sleep(tracker.GraceDelay())
			}
			return nil
		},
	}
}

// followImport blocks until the tracker reaches a terminal snapshot, invoking
// observe on each fresh snapshot along the way.
func followImport(ctx context.Context, tracker *importer.Tracker, observe func(api.ImportStatus)) (api.ImportStatus, error) {
	type outcome struct {
		job api.ImportStatus
		err error
	}
	finished := make(chan outcome, 1)
	go func() {
		job, err := tracker.Wait(ctx)
		finished <- outcome{job: job, err: err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case result := <-finished:
			return result.job, result.err
		case <-ticker.C:
			if observe != nil {
				_, snapshot, _ := tracker.Snapshot()
				observe(snapshot)
			}
		}
	}
}
