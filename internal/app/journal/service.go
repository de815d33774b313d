// Package journal drives the four-question evening reflection.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// ErrAnswerRequired is returned by Advance when the current answer is blank.
var ErrAnswerRequired = errors.New("answer required")

// Question is one prompt of the walkthrough.
type Question struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Placeholder string `json:"placeholder"`
}

// Questions are asked in order, one per step.
var Questions = [domain.JournalQuestions]Question{
	{
		Emoji:       "🌟",
		Title:       "What do you want from tomorrow?",
		Subtitle:    "One main wish or goal",
		Placeholder: "For example: finish an important project, have a quiet day...",
	},
	{
		Emoji:       "🎯",
		Title:       "How will you do it?",
		Subtitle:    "A concrete first step",
		Placeholder: "For example: start with the hardest task in the morning, mute notifications...",
	},
	{
		Emoji:       "⚡",
		Title:       "What could go wrong?",
		Subtitle:    "Think about possible obstacles",
		Placeholder: "For example: getting lost in social media, a colleague asking for help...",
	},
	{
		Emoji:       "🛡️",
		Title:       "How can you plan for it?",
		Subtitle:    "Your plan for when obstacles show up",
		Placeholder: "For example: phone on airplane mode, politely say I'm busy until lunch...",
	},
}

// Store is the part of the record store the walkthrough needs.
type Store interface {
	ResolveJournal(ctx context.Context, date domain.Date) (*domain.JournalEntry, error)
	SaveJournal(ctx context.Context, date domain.Date, answers domain.JournalAnswers) (*domain.JournalEntry, error)
}

// Walkthrough is the state of one evening reflection. It is driven by a
// single caller and is not safe for concurrent use.
type Walkthrough struct {
	store    Store
	date     domain.Date
	step     int
	answers  domain.JournalAnswers
	complete bool
}

type OpenOption func(*openOptions)

type openOptions struct {
	now func() time.Time
}

// WithNow overrides the clock used to compute "today".
func WithNow(now func() time.Time) OpenOption {
	return func(o *openOptions) { o.now = now }
}

// Open loads the entry for date. An entry with all four answers opens in
// the complete state; a partial one pre-fills the answers at step 1.
// Dates after today fail with domain.ErrInvalidRecord.
func Open(ctx context.Context, store Store, date domain.Date, opts ...OpenOption) (*Walkthrough, error) {
	o := openOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if date.After(domain.DateOf(o.now())) {
		return nil, fmt.Errorf("%w: journal %s is in the future", domain.ErrInvalidRecord, date)
	}

	entry, err := store.ResolveJournal(ctx, date)
	if err != nil {
		return nil, err
	}

	w := &Walkthrough{store: store, date: date}
	if entry != nil {
		w.answers = entry.Answers
		w.complete = entry.Complete()
	}

	observability.LoggerFromContext(ctx).Debug("journal opened",
		"date", date,
		"existing", entry != nil,
		"complete", w.complete,
	)
	return w, nil
}

func (w *Walkthrough) Date() domain.Date { return w.date }

// Step is the current question number, 1 to 4.
func (w *Walkthrough) Step() int { return w.step + 1 }

func (w *Walkthrough) Question() Question { return Questions[w.step] }

func (w *Walkthrough) Answer() string { return w.answers[w.step] }

func (w *Walkthrough) Answers() domain.JournalAnswers { return w.answers }

func (w *Walkthrough) Complete() bool { return w.complete }

// SetAnswer edits the field of the current step. Ignored once complete.
func (w *Walkthrough) SetAnswer(text string) {
	if w.complete {
		return
	}
	w.answers[w.step] = text
}

// Advance moves to the next question. On the last question it saves the
// entry instead and, on success, marks the walkthrough complete. A failed
// save keeps the step and every answer so the caller can retry.
func (w *Walkthrough) Advance(ctx context.Context) error {
	if w.complete {
		return nil
	}
	if strings.TrimSpace(w.answers[w.step]) == "" {
		return ErrAnswerRequired
	}
	if w.step < domain.JournalQuestions-1 {
		w.step++
		return nil
	}

	if _, err := w.store.SaveJournal(ctx, w.date, w.answers); err != nil {
		return err
	}
	w.complete = true
	return nil
}

// Back returns to the previous question without validating or saving.
// It reports false on the first question.
func (w *Walkthrough) Back() bool {
	if w.complete || w.step == 0 {
		return false
	}
	w.step--
	return true
}

// Edit reopens a completed walkthrough at the first question with the
// saved answers.
func (w *Walkthrough) Edit() {
	w.complete = false
	w.step = 0
}
