package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDictsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List dictionaries with learning progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}

			dicts, err := client.Dictionaries(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(dicts) == 0 {
				fmt.Fprintln(out, "No dictionaries yet; add one with `recall upload <file.txt>`")
				return nil
			}

			rows := make([][]string, 0, len(dicts))
			for _, dict := range dicts {
				rows = append(rows, []string{
					strconv.FormatInt(dict.ID, 10),
					dict.Name,
					strconv.Itoa(dict.TotalWords),
					strconv.Itoa(dict.LearnedWords),
					fmt.Sprintf("%.0f%%", dict.Progress),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Words", "Learned", "Progress"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
