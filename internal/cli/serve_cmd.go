package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			errc := make(chan error, 1)
			go func() {
				if err := app.HTTP.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
					return
				}
				errc <- nil
			}()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errc:
				return err
			case s := <-sig:
				app.Log.Info().Str("signal", s.String()).Msg("shutting down")
				if err := app.HTTP.Shutdown(context.Background()); err != nil {
					return err
				}
				return <-errc
			}
		},
	}
}
