package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/brintopos/brintopos/internal/adapters/inbound/mcp"
	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/application"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the BrintoPOS MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start BrintoPOS MCP server (stdio)",
		Long:  "Start the BrintoPOS MCP server using stdio transport. Assistants can take orders, check out and browse invoices on one till.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			till := application.NewTillService(rt)
			if err := till.Unlock(credential); err != nil {
				return err
			}
			dash := application.NewDashboardService(rt, reports.New())

			s := mcpadapter.NewBrintoPOSMCPServer(till, dash)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&credential, "credential", "", "POS credential that unlocks the till")

	return cmd
}
