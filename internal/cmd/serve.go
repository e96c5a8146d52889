package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/racquet/internal/api"
)

const shutdownTimeout = 15 * time.Second

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tournament engines over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts a JSON API for the tournament engines. The
			server keeps no state, the clients send the tournament with
			every request and get the changed tournament back.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}

			server := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      api.NewServer(cfg),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				logrus.WithField("address", server.Addr).Info("Starting server")
				serverErrors <- server.ListenAndServe()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case sig := <-quit:
				logrus.WithField("signal", sig.String()).Info("Shutting down server")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					// If shutdown fails, force close.
					return errors.Join(err, server.Close())
				}
				logrus.Info("Server stopped")
				return nil
			}
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides the config")
	return cmd
}
