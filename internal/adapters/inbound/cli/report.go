package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/adapters/outbound/tui"
	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput   bool
		till         int64
		since, until string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show archived end-of-run summaries",
		Long: `List the summaries appended by 'brintopos run --archive', oldest first.
Narrow the list to one till node with --till, or to a range of service
days with --since and --until (YYYY-MM-DD, both inclusive).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			dash := application.NewDashboardService(rt, reports.New())

			var filter domain.ReportFilter
			if cmd.Flags().Changed("till") {
				filter.Till = &till
			}
			if filter.Since, err = domain.ParseReportDay("since", since); err != nil {
				return err
			}
			if filter.Until, err = domain.ParseReportDay("until", until); err != nil {
				return err
			}

			entries, err := dash.ReportHistory(opts.configDir, filter)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReportHistory(entries, rt.Config.Restaurant.CurrencySymbol))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().Int64Var(&till, "till", 0, "Only show closings from this till node")
	cmd.Flags().StringVar(&since, "since", "", "First service day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Last service day to include (YYYY-MM-DD)")

	return cmd
}
