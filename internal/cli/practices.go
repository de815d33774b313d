package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-calm/internal/catalog"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func addPractices(topLevel *cobra.Command, a *app) {
	var category string

	cmd := &cobra.Command{
		Use:   "practices",
		Short: "List the guided practices.",
		Example: `
farum practices
farum practices --category breathing
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			practices := a.catalog.All()
			if category != "" {
				practices = a.catalog.ListByCategory(domain.Category(category))
			}
			if len(practices) == 0 {
				_, err := fmt.Fprintln(a.out, warning("No practices in category "+category))
				return err
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold("ID"), bold("Practice"), bold("Type"), bold("Duration"))
			for _, p := range practices {
				tbl.AddRow(p.ID, p.Emoji+" "+p.Title, string(p.Kind), p.Duration)
			}
			_, err := fmt.Fprintln(a.out, tbl)
			return err
		},
	}

	var names []string
	for _, c := range catalog.Default().Categories() {
		names = append(names, string(c.ID))
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", fmt.Sprintf("filter by category %v", names))
	topLevel.AddCommand(cmd)
}
