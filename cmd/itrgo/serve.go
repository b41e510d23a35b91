package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/handler"
	"github.com/rgehrsitz/itrgo/internal/router"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.sync()

			if port, _ := cmd.Flags().GetString("port"); port != "" {
				a.settings.Server.Port = port
			}
			if a.settings.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			profiles, err := a.openProfiles(ctx)
			if err != nil {
				return err
			}
			defer profiles.Close()

			r := router.Setup(a.log,
				handler.NewHealthHandler(version),
				handler.NewTaxHandler(compare.NewEngine(a.calcEngine()), profiles, a.log),
				handler.NewProfileHandler(profiles, a.log),
			)

			srv := &http.Server{
				Addr:         a.settings.Server.Port,
				Handler:      r,
				ReadTimeout:  a.settings.Server.ReadTimeout,
				WriteTimeout: a.settings.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server starting",
					zap.String("addr", srv.Addr),
					zap.String("env", a.settings.Server.Environment),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}

			a.log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			a.log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().String("port", "", "Listen address such as :8080 (overrides server.port)")
	return cmd
}
