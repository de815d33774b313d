package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/app/greeting"
)

func addGreeting(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "greeting",
		Short: "Say hello for the time of day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.cfg.Now()
			_, err := fmt.Fprintf(a.out, "%s\n%s\n", bold(greeting.ForHome(now)),
				faint(fmt.Sprintf("Today's %s check-in: farum mood log --mood <mood>", greeting.DefaultSlot(now))))
			return err
		},
	}
	topLevel.AddCommand(cmd)
}
