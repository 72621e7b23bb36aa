package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/startup-forecast/internal/server"
	"github.com/iwvelando/startup-forecast/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation and optimization API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			var st store.Store = store.Noop{}
			if conf.Storage.Enabled {
				sqliteStore, err := store.NewSQLiteStore(logger, conf.Storage.Path)
				if err != nil {
					logger.Error("failed to open result store",
						zap.String("op", "main.serve"),
						zap.Error(err),
					)
					return err
				}
				defer func() {
					_ = sqliteStore.Close()
				}()
				st = sqliteStore
			}

			router := server.NewRouter(logger, st, conf.Server.MaxRequestBytes, version)
			addr := conf.ServerAddress()

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("op", "main.serve"),
					zap.String("address", addr),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				logger.Info("shutting down",
					zap.String("op", "main.serve"),
				)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
