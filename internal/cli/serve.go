package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func serveCommand(st *state) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				st.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := st.app(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			addr := fmt.Sprintf(":%d", st.cfg.Server.Port)
			srv := &http.Server{
				Addr:         addr,
				Handler:      app.Handler(ctx),
				ReadTimeout:  st.cfg.Server.ReadTimeout,
				WriteTimeout: st.cfg.Server.WriteTimeout,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				st.log.Info().Str("addr", addr).Msg("server listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			st.log.Info().Msg("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	return cmd
}
