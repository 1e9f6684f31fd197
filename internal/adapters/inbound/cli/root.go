package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brintopos/brintopos/internal/adapters/outbound/config"
	"github.com/brintopos/brintopos/internal/adapters/outbound/idgen"
	"github.com/brintopos/brintopos/internal/adapters/outbound/logging"
	"github.com/brintopos/brintopos/internal/application"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configDir string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "brintopos",
		Short:         "Restaurant point of sale",
		Long:          "BrintoPOS runs a restaurant till: menu, orders, checkout, invoices and the admin dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config", ".", "Directory holding .brintopos.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMenuCmd(opts))
	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// newRuntime loads configuration and wires a till runtime for one command.
func (o *rootOptions) newRuntime(cmd *cobra.Command) (*application.Runtime, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
	if err != nil {
		return nil, err
	}

	cfg, err := config.New().Load(o.configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ids, err := idgen.New(cfg.Till.Node)
	if err != nil {
		return nil, err
	}

	return application.NewRuntime(cfg, ids, application.WithLogger(logger))
}
