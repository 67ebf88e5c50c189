package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/physical-quantities/units/internal/web/api"
	"github.com/physical-quantities/units/internal/web/server"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		host            string
		port            int
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the unit registry over HTTP",
		Long: `Start a read-only JSON API:

  GET /healthz
  GET /units[?prefixed=true]
  GET /units/{name}
  GET /resolve?expr=EXPR
  GET /convert?value=V&from=FROM&to=TO`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := a.cfg.Server
			if cmd.Flags().Changed("host") {
				listen.Host = host
			}
			if cmd.Flags().Changed("port") {
				listen.Port = port
			}

			router := api.NewRouter(a.registry, a.logger, api.WithCORSOrigins(a.cfg.Server.CORSOrigins...))
			config := server.DefaultConfig(router)
			config.Address = listen.Address()
			if a.store != nil {
				config.Database = server.DefaultDatabaseConfig(a.store.DB())
			}

			srv, err := server.New(config)
			if err != nil {
				return err
			}

			gs := server.NewGracefulShutdown(srv, shutdownTimeout, a.logger)
			gs.RegisterHook(func(ctx context.Context) error {
				return a.teardown()
			})

			if err := srv.Listen(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d units on http://%s\n", a.registry.Len(), srv.Addr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return gs.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "listen host (default from server.host)")
	cmd.Flags().IntVar(&port, "port", 8089, "listen port (default from server.port)")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	return cmd
}
