package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SOSPracticeID is the exercise started by "farum sos".
const SOSPracticeID = "sos-breathing"

func addPractice(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Run a guided practice.",
	}

	run := &cobra.Command{
		Use:   "run <id>",
		Short: "Run a practice. Ctrl-C stops it.",
		Example: `
farum practice run breathing-478
farum practice run grounding-54321
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var ids []string
			for _, p := range a.catalog.All() {
				ids = append(ids, p.ID)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.GetByID(args[0])
			if err != nil {
				return err
			}
			return play(cmd.Context(), a.out, a.in, p)
		},
	}

	cmd.AddCommand(run)
	topLevel.AddCommand(cmd)
}

func addSOS(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "sos",
		Short: "Calm breathing for a hard moment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.GetByID(SOSPracticeID)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(a.out, "\n  %s\n\n", accent(a.catalog.Anchor(nil)))
			if err := play(cmd.Context(), a.out, a.in, p); err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, faint("If you feel unsafe, call your local emergency number or a crisis line."))
			return err
		},
	}
	topLevel.AddCommand(cmd)
}
