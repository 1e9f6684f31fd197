package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brintopos/brintopos/internal/adapters/outbound/tui"
	"github.com/brintopos/brintopos/internal/domain"
)

func newMenuCmd(opts *rootOptions) *cobra.Command {
	var (
		category   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the menu",
		Long:  "List the configured menu, optionally filtered to one category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}

			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			items := rt.Catalog.List(cat)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderMenu(items, rt.Config.Restaurant.CurrencySymbol))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category to show (e.g. desserts, MainCourses)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
