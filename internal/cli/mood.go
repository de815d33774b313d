package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

type moodKeyOptions struct {
	Date string
	Slot string
}

func (o *moodKeyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Date, "date", "d", "", "check-in date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&o.Slot, "slot", "s", "", "morning or evening (default by time of day)")
}

// navigate positions a navigator on the requested key and resolves it.
func (a *app) navigate(ctx context.Context, o *moodKeyOptions) (*records.Navigator, error) {
	store, err := a.records(ctx)
	if err != nil {
		return nil, err
	}
	nav := records.NewNavigator(store, records.WithNow(a.cfg.Now))

	if o.Slot != "" {
		slot, err := domain.ParseSlot(o.Slot)
		if err != nil {
			return nil, err
		}
		if err := nav.SetSlot(ctx, slot); err != nil {
			return nil, err
		}
	}
	if o.Date != "" {
		ok, err := nav.MoveTo(ctx, domain.Date(o.Date))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s is in the future; check-ins are for today or earlier", o.Date)
		}
		return nav, nil
	}
	if _, err := nav.Refresh(ctx); err != nil {
		return nil, err
	}
	return nav, nil
}

func addMood(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Morning and evening check-ins.",
	}
	cmd.AddCommand(moodShowCmd(a), moodLogCmd(a), moodHistoryCmd(a))
	topLevel.AddCommand(cmd)
}

func moodShowCmd(a *app) *cobra.Command {
	ko := &moodKeyOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the check-in of a day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := a.navigate(cmd.Context(), ko)
			if err != nil {
				return err
			}
			a.printMood(nav.View())
			return nil
		},
	}
	ko.AddFlags(cmd)
	return cmd
}

func (a *app) printMood(v records.View) {
	_, _ = fmt.Fprintf(a.out, "%s %s\n", bold(v.Key.Date), accent(v.Key.Slot))
	e := v.Entry
	if e == nil {
		_, _ = fmt.Fprintln(a.out, faint("No check-in yet."))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Mood", e.Mood.Emoji()+" "+string(e.Mood))
	energy := levelText(e.Energy)
	if e.Energy != nil {
		energy += " " + faint(domain.EnergyLabel(*e.Energy))
	}
	tbl.AddRow("Energy", energy)
	if v.Key.Slot == domain.SlotMorning {
		tbl.AddRow("Sleep", levelText(e.SleepQuality()))
	} else {
		tbl.AddRow("Anxiety", levelText(e.Anxiety()))
	}
	tbl.AddRow("Note", noteText(e.Note))
	_, _ = fmt.Fprintln(a.out, tbl)
}

func moodLogCmd(a *app) *cobra.Command {
	ko := &moodKeyOptions{}
	var (
		mood                   string
		energy, sleep, anxiety int
		note                   string
	)

	moods := make([]string, len(domain.Moods))
	for i, m := range domain.Moods {
		moods[i] = string(m)
	}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record or update a check-in.",
		Long: "Record or update a check-in. Flags left out keep the values already saved for that day.\n" +
			"Sleep belongs to the morning check-in and anxiety to the evening one.",
		Example: `
farum mood log --mood calm --energy 3 --sleep 4
farum mood log --slot evening --mood anxious --anxiety 4 --note "long day"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nav, err := a.navigate(ctx, ko)
			if err != nil {
				return err
			}

			draft := records.DraftFrom(nav.View().Entry)
			flags := cmd.Flags()
			if flags.Changed("mood") {
				m, err := domain.ParseMood(mood)
				if err != nil {
					return err
				}
				draft.Mood = m
			}
			if draft.Mood == "" {
				return fmt.Errorf("--mood is required, one of %s", strings.Join(moods, ", "))
			}
			if flags.Changed("energy") {
				draft.Energy = domain.LevelPtr(energy)
			}
			if flags.Changed("sleep") {
				draft.SleepQuality = domain.LevelPtr(sleep)
			}
			if flags.Changed("anxiety") {
				draft.Anxiety = domain.LevelPtr(anxiety)
			}
			if flags.Changed("note") {
				draft.Note = strings.TrimSpace(note)
			}

			if _, err := nav.Save(ctx, draft); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.out, success("Saved."))
			a.printMood(nav.View())
			return nil
		},
	}

	ko.AddFlags(cmd)
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "one of "+strings.Join(moods, ", "))
	cmd.Flags().IntVarP(&energy, "energy", "e", 0, "energy 1-5")
	cmd.Flags().IntVar(&sleep, "sleep", 0, "sleep quality 1-5 (morning)")
	cmd.Flags().IntVar(&anxiety, "anxiety", 0, "anxiety 1-5 (evening)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free text note")
	return cmd
}

func moodHistoryCmd(a *app) *cobra.Command {
	var from, to string
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent check-ins.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.records(ctx)
			if err != nil {
				return err
			}

			end := domain.DateOf(a.cfg.Now())
			if to != "" {
				if end, err = domain.ParseDate(to); err != nil {
					return err
				}
			}
			start := end.AddDays(-(days - 1))
			if from != "" {
				if start, err = domain.ParseDate(from); err != nil {
					return err
				}
			}

			entries, err := store.MoodHistory(ctx, start, end)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(a.out, faint(fmt.Sprintf("No check-ins between %s and %s.", start, end)))
				return err
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 40
			tbl.AddRow(bold("Date"), bold("Slot"), bold("Mood"), bold("Energy"), bold("Sleep"), bold("Anxiety"), bold("Note"))
			for _, e := range entries {
				tbl.AddRow(e.Date, e.Slot(), e.Mood.Emoji()+" "+string(e.Mood),
					levelText(e.Energy), levelText(e.SleepQuality()), levelText(e.Anxiety()), noteText(e.Note))
			}
			_, err = fmt.Fprintln(a.out, tbl)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&days, "days", 14, "days to show when --from is not set")
	return cmd
}
