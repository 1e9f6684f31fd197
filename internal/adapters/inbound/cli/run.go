package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brintopos/brintopos/internal/adapters/outbound/gitinfo"
	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/adapters/outbound/tui"
	"github.com/brintopos/brintopos/internal/application"
	"github.com/brintopos/brintopos/internal/domain"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		archive    bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay a service script against a fresh till",
		Long: `Replay a YAML script of till actions (table, add, quantity, remove, note,
clear, checkout, ticket, amend, void) and print receipts, tickets and the
end-of-run summary. Rejected steps are reported and the run continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := loadScript(args[0])
			if err != nil {
				return err
			}

			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			till := application.NewTillService(rt)
			dash := application.NewDashboardService(rt, reports.New())

			report, err := application.NewScriptRunner(till, dash).Run(cmd.Context(), script)
			if err != nil {
				return err
			}

			if archive {
				var revision string
				gi := gitinfo.New()
				if gi.IsGitRepo(opts.configDir) {
					if hash, err := gi.CommitHash(opts.configDir); err == nil {
						revision = hash
					}
				}
				if _, err := dash.ArchiveSummary(opts.configDir, revision); err != nil {
					return err
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report, rt.Config.Restaurant)
			}

			if strict && report.Failed() > 0 {
				return fmt.Errorf("%d step(s) rejected", report.Failed())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&archive, "archive", false, "Append the end-of-run summary to the report archive")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error if any step is rejected")

	return cmd
}

func loadScript(path string) (application.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return application.Script{}, fmt.Errorf("reading script: %w", err)
	}
	var script application.Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return application.Script{}, fmt.Errorf("parsing script %s: %w", path, err)
	}
	if len(script.Steps) == 0 {
		return application.Script{}, fmt.Errorf("script %s has no steps", path)
	}
	return script, nil
}

func printReport(w io.Writer, report application.ScriptReport, shop domain.RestaurantConfig) {
	for _, step := range report.Steps {
		switch {
		case step.Error != "":
			fmt.Fprintf(w, "step %d (%s) rejected: %s\n", step.Index, step.Action, step.Error)
		case step.Receipt != nil:
			fmt.Fprintln(w, tui.RenderReceipt(step.Receipt.Invoice, step.Receipt.Tendered, step.Receipt.Change, shop))
		case step.Ticket != nil:
			fmt.Fprintln(w, tui.RenderKitchenTicket(*step.Ticket))
		case step.Invoice != nil:
			fmt.Fprintln(w, tui.RenderInvoice(*step.Invoice, shop))
		}
	}
	if report.Order.ItemCount > 0 {
		fmt.Fprintln(w, tui.RenderOrder(report.Order.Table, report.Order.Lines, report.Order.Quote, shop.CurrencySymbol))
	}
	fmt.Fprint(w, tui.RenderSummary(report.Summary, shop.CurrencySymbol))
}
