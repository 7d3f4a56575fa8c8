package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"recall/internal/history"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			stats, err := client.LearningStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Words learned: %d\n", stats.TotalLearned)
			fmt.Fprintf(out, "Streak: %d days\n", stats.StreakDays)

			store, err := history.Open(ctx.configValue())
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.Tally(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Local log: %d reviews across %d sittings", totals.Outcomes, totals.Sittings)
			if totals.Outcomes > 0 {
				fmt.Fprintf(out, ", average grade %.1f", totals.AverageQuality)
			}
			fmt.Fprintln(out)
			if !totals.LastReviewedAt.IsZero() {
				fmt.Fprintf(out, "Last review: %s\n", totals.LastReviewedAt.Local().Format(time.RFC1123))
			}

			sittings, err := store.RecentSittings(cmd.Context(), recent)
			if err != nil {
				return err
			}
			if len(sittings) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(sittings))
			for _, sitting := range sittings {
				rows = append(rows, []string{
					sitting.FinishedAt.Local().Format("2006-01-02 15:04"),
					strconv.FormatInt(sitting.DictionaryID, 10),
					fmt.Sprintf("%d/%d", sitting.Completed, sitting.Total),
					sitting.FinishedAt.Sub(sitting.StartedAt).Round(time.Second).String(),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"Finished", "Dict", "Words", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 10, "How many recent sittings to list")
	return cmd
}
