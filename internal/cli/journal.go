package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/app/journal"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func addJournal(topLevel *cobra.Command, a *app) {
	var date string
	var edit bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Four evening questions to plan tomorrow.",
		Long: "Answer four short questions, one at a time. Type your answer and press Enter.\n" +
			"Type :back to return to the previous question.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.records(ctx)
			if err != nil {
				return err
			}

			day := domain.DateOf(a.cfg.Now())
			if date != "" {
				if day, err = domain.ParseDate(date); err != nil {
					return err
				}
			}

			if day.After(domain.DateOf(a.cfg.Now())) {
				return fmt.Errorf("%s is in the future; journals are for today or earlier", day)
			}

			w, err := journal.Open(ctx, store, day, journal.WithNow(a.cfg.Now))
			if err != nil {
				return err
			}
			if w.Complete() && edit {
				w.Edit()
			}
			return a.walk(ctx, w)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "journal date, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&edit, "edit", false, "change the answers of a completed journal")
	topLevel.AddCommand(cmd)
}

const backCommand = ":back"

// walk drives the walkthrough from line input. A failed save leaves the
// walkthrough on the last question with every answer kept, so pressing
// Enter again retries.
func (a *app) walk(ctx context.Context, w *journal.Walkthrough) error {
	sc := bufio.NewScanner(a.in)

	for !w.Complete() {
		q := w.Question()
		_, _ = fmt.Fprintf(a.out, "\n%s %s %s\n%s\n",
			faint(fmt.Sprintf("%d/%d", w.Step(), domain.JournalQuestions)), q.Emoji, bold(q.Title), faint(q.Subtitle))
		if cur := w.Answer(); cur != "" {
			_, _ = fmt.Fprintf(a.out, "%s %s\n", faint("current:"), cur)
		}
		_, _ = fmt.Fprint(a.out, "> ")

		if !sc.Scan() {
			_, _ = fmt.Fprintln(a.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())

		if line == backCommand {
			w.Back()
			continue
		}
		if line != "" || w.Answer() == "" {
			w.SetAnswer(line)
		}

		if err := w.Advance(ctx); err != nil {
			PrintError(a.out, err)
			if errors.Is(err, journal.ErrAnswerRequired) || errors.Is(err, domain.ErrPersistence) {
				continue
			}
			return err
		}
	}

	_, _ = fmt.Fprintf(a.out, "\n%s\n", success("Your evening journal for "+string(w.Date())+" is saved. Rest well."))
	answers := w.Answers()
	for i, q := range journal.Questions {
		_, _ = fmt.Fprintf(a.out, "%s %s\n  %s\n", q.Emoji, bold(q.Title), answers[i])
	}
	return nil
}
