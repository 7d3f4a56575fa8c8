package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"recall/internal/api"
	"recall/internal/history"
	"recall/internal/review"
	"recall/internal/services"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var dictionaryID int64
	var limit int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run a flashcard review sitting",
		Long: `Fetches today's due words and walks through them one at a time.
Press enter to reveal a card, then grade your recall from 0 (blank)
to 5 (instant). Graded words are also recorded in the local history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			cfg := ctx.configValue()

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			engine := review.New(client, cfg, dictionaryID, limit, review.WithLogger(ctx.ensureLogger()))
			return runReview(cmd.Context(), engine, store, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64VarP(&dictionaryID, "dict", "d", 0, "Dictionary to review (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum words per sitting (default from config)")
	return cmd
}

// outcomeRecorder is the slice of the history store the review loop writes to.
type outcomeRecorder interface {
	RecordOutcome(ctx context.Context, dictionaryID, wordID int64, word string, quality int) error
	RecordSitting(ctx context.Context, dictionaryID int64, completed, total int, startedAt, finishedAt time.Time) error
}

// runReview drives one interactive sitting from in to out. It returns nil when
// the sitting finishes or the learner quits early; both still record the
// sitting locally.
func runReview(ctx context.Context, engine *review.Engine, recorder outcomeRecorder, in io.Reader, out io.Writer) error {
	if err := engine.Load(ctx); err != nil {
		return err
	}
	startedAt := time.Now()

	reviewCount, newCount := engine.Counts()
	_, total := engine.Progress()
	if engine.Finished() {
		fmt.Fprintln(out, "Nothing due today. Come back tomorrow!")
		return nil
	}
	fmt.Fprintf(out, "%d words due (%d review, %d new)\n", total, reviewCount, newCount)

	reader := bufio.NewReader(in)
	quit := false

	for !engine.Finished() && !quit {
		word, ok := engine.Current()
		if !ok {
			break
		}

		completed, total := engine.Progress()
		fmt.Fprintf(out, "\n[%d/%d] %s", completed+1, total, word.Text)
		if word.Phonetic != "" {
			fmt.Fprintf(out, "  /%s/", word.Phonetic)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, "Press enter to reveal (q to quit): ")

		line, err := readLine(reader)
		if err != nil {
			quit = true
			break
		}
		if strings.EqualFold(strings.TrimSpace(line), "q") {
			quit = true
			break
		}

		if err := engine.Reveal(); err != nil {
			return err
		}
		printCardBack(out, word)

		graded := false
		for !graded {
			fmt.Fprint(out, "Grade 0-5 (q to quit): ")
			line, err := readLine(reader)
			if err != nil {
				quit = true
				break
			}
			answer := strings.TrimSpace(line)
			if strings.EqualFold(answer, "q") {
				quit = true
				break
			}

			quality, convErr := strconv.Atoi(answer)
			if convErr != nil || quality < 0 || quality > 5 {
				fmt.Fprintln(out, "Enter a number from 0 to 5.")
				continue
			}

			if err := engine.SubmitOutcome(ctx, quality); err != nil {
				if services.IsTransient(err) {
					fmt.Fprintf(out, "Submit failed (%v); your place is kept, try again.\n", err)
					continue
				}
				return err
			}
			if recorder != nil {
				if recordErr := recorder.RecordOutcome(ctx, engine.DictionaryID(), word.ID, word.Text, quality); recordErr != nil {
					fmt.Fprintf(out, "warning: local history not updated: %v\n", recordErr)
				}
			}
			graded = true
		}
	}

	completed, total := engine.Progress()
	if recorder != nil {
		if err := recorder.RecordSitting(ctx, engine.DictionaryID(), completed, total, startedAt, time.Now()); err != nil {
			fmt.Fprintf(out, "warning: sitting not recorded: %v\n", err)
		}
	}

	if engine.Finished() {
		fmt.Fprintf(out, "\nSitting complete: %d/%d words reviewed.\n", completed, total)
	} else {
		fmt.Fprintf(out, "\nStopped early: %d/%d words reviewed.\n", completed, total)
	}
	return nil
}

func printCardBack(out io.Writer, word api.Word) {
	for _, def := range word.Meaning.Definitions {
		if def.PartOfSpeech != "" {
			fmt.Fprintf(out, "  %s. %s\n", def.PartOfSpeech, def.Text)
		} else {
			fmt.Fprintf(out, "  %s\n", def.Text)
		}
	}
	if word.Example != "" {
		fmt.Fprintf(out, "  e.g. %s\n", word.Example)
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
