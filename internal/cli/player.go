package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PabloGalante/farum-calm/internal/app/practice"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

const clearLine = "\r\033[K"

// play runs p in the terminal until it completes or ctx is cancelled.
// Cancelling (Ctrl-C) closes the session, which releases its timer.
func play(ctx context.Context, out io.Writer, in io.Reader, p domain.Practice, opts ...practice.Option) error {
	_, _ = fmt.Fprintf(out, "%s %s\n%s\n", p.Emoji, bold(p.Title), faint(p.Description))

	if p.Kind == domain.KindGrounding {
		return playGrounding(ctx, out, in, p, opts...)
	}
	return playTimed(ctx, out, p, opts...)
}

func playTimed(ctx context.Context, out io.Writer, p domain.Practice, opts ...practice.Option) error {
	updates := make(chan practice.Update, 1)
	quit := make(chan struct{})
	defer close(quit)

	opts = append(opts, practice.WithOnTick(func(u practice.Update) {
		select {
		case updates <- u:
		case <-quit:
		}
	}))

	sess, err := practice.NewSession(p, opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	if p.Kind == domain.KindBody {
		for i, step := range p.BodySteps {
			_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
	}
	_, _ = fmt.Fprint(out, "\n"+timedLine(p, sess.State()))
	sess.Start()

	for {
		select {
		case <-ctx.Done():
			sess.Close()
			_, _ = fmt.Fprintln(out, "\n"+warning("Stopped. Come back whenever you like."))
			return nil

		case u := <-updates:
			switch {
			case u.Event == practice.EventDone:
				_, _ = fmt.Fprintln(out, clearLine+success("Well done. Notice how you feel right now."))
				return nil
			case u.Event.Boundary():
				_, _ = fmt.Fprint(out, "\n"+timedLine(p, u.State))
			default:
				_, _ = fmt.Fprint(out, clearLine+timedLine(p, u.State))
			}
		}
	}
}

func timedLine(p domain.Practice, st practice.State) string {
	switch s := st.(type) {
	case practice.BreathingState:
		step := p.Steps[s.StepIndex]
		return fmt.Sprintf("%s  %-7s %s  %s",
			faint(fmt.Sprintf("[%d/%d]", s.CycleIndex, p.Cycles)),
			accent(strings.ToUpper(string(step.Phase))),
			step.Text,
			bold(practice.FormatClock(s.SecondsLeft)),
		)
	case practice.BodyState:
		return fmt.Sprintf("  %s left", bold(practice.FormatClock(s.SecondsLeft)))
	default:
		return ""
	}
}

func playGrounding(ctx context.Context, out io.Writer, in io.Reader, p domain.Practice, opts ...practice.Option) error {
	sess, err := practice.NewSession(p, opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	quit := make(chan struct{})
	defer close(quit)
	enter := make(chan struct{})
	go func() {
		defer close(enter)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case enter <- struct{}{}:
			case <-quit:
				return
			}
		}
	}()

	for {
		st := sess.State().(practice.GroundingState)
		step := p.GroundingSteps[st.StepIndex]
		_, _ = fmt.Fprintf(out, "\n%s %s\n%s %s",
			accent(fmt.Sprintf("%d", step.Count)), bold(step.Sense), step.Prompt, faint("[Enter]"))

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out, "\n"+warning("Stopped. Come back whenever you like."))
			return nil
		case _, ok := <-enter:
			if !ok {
				_, _ = fmt.Fprintln(out)
				return nil
			}
			if sess.Next() == practice.EventDone {
				_, _ = fmt.Fprintln(out, "\n"+success("Well done. You are here, in this moment."))
				return nil
			}
		}
	}
}
