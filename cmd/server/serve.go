package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sparc/pkg/middleware"
	"sparc/router"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			e := router.Build(db, router.Options{
				Location: a.loc,
				Logger:   a.log,
				Started:  time.Now(),
				Identity: middleware.IdentityConfig{
					DevLogin:  a.cfg.DevLogin,
					DevUID:    a.cfg.DevUID,
					AdminUIDs: a.cfg.AdminUIDs,
				},
			})
			if a.cfg.DevLogin {
				a.log.Warn("dev login enabled", zap.String("dev_uid", a.cfg.DevUID))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.log.Info("listening", zap.String("addr", ":"+a.cfg.Port))
				errc <- e.Start(":" + a.cfg.Port)
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
