package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brintopos/brintopos/internal/adapters/inbound/rest"
	"github.com/brintopos/brintopos/internal/adapters/outbound/reports"
	"github.com/brintopos/brintopos/internal/application"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the till over HTTP",
		Long:  "Start the JSON HTTP API for the POS screen and the admin dashboard.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = rt.Config.HTTP.Addr
			}

			till := application.NewTillService(rt)
			dash := application.NewDashboardService(rt, reports.New())
			srv := rest.SetupRoutes(till, dash, rt.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				rt.Log.WithField("addr", addr).Info("http server listening")
				errc <- srv.Run(addr)
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("http server: %w", err)
			case <-ctx.Done():
				rt.Log.Info("shutting down")
				return srv.Shutdown(shutdownTimeout)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to http.addr from config)")

	return cmd
}
