package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"recon/internal/config"
	"recon/internal/handler"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve recon results over a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := buildRecon(cmd.Context(), cfg, os.Stdout)
			h := handler.NewHandler(r)

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.Logger())
			e.Use(middleware.Recover())
			e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

			e.GET("/healthz", h.Health)
			e.GET("/api/recon/:domain", h.Lookup)

			go func() {
				if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(ctx)
		},
	}
}
