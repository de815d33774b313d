package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/PabloGalante/farum-calm/internal/app/journal"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	accent  = color.New(color.FgMagenta).SprintFunc()
	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	failure = color.New(color.FgRed).SprintFunc()
)

// Explain turns an error into the line shown to the user. Nothing the user
// typed is lost by these failures, so the messages invite a retry.
func Explain(err error) string {
	switch {
	case errors.Is(err, domain.ErrPracticeNotFound), errors.Is(err, domain.ErrInvalidPractice):
		return "Exercise not found."
	case errors.Is(err, domain.ErrTransientUnavailable):
		return "Couldn't reach your records right now. Try again in a moment."
	case errors.Is(err, domain.ErrPersistence):
		return "Couldn't save. Your answers are kept, try again."
	case errors.Is(err, domain.ErrInvalidRecord):
		return err.Error()
	case errors.Is(err, journal.ErrAnswerRequired):
		return "Write at least a few words before moving on."
	default:
		return err.Error()
	}
}

// PrintError writes err in red.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, failure(Explain(err)))
}

func levelText(l *domain.Level) string {
	if l == nil {
		return faint("-")
	}
	return fmt.Sprintf("%d/%d", *l, domain.MaxLevel)
}

func noteText(n *string) string {
	if n == nil {
		return faint("-")
	}
	return *n
}
