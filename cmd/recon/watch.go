package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"recon/internal/config"
	"recon/internal/service"
	"recon/internal/storage"
)

func newWatchCmd(cfg *config.Config) *cobra.Command {
	var interval time.Duration

	watch := &cobra.Command{
		Use:   "watch <domain>",
		Short: "Re-run recon on a schedule and log changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewStorage(cfg.RedisHost, cfg.RedisPort)
			if err := store.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("watch mode requires redis: %w", err)
			}

			r := service.New(cfg, os.Stdout)
			m := service.NewMonitor(r, store)
			if err := m.Start(args[0], interval); err != nil {
				return err
			}
			defer m.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)
			<-quit
			return nil
		},
	}

	watch.Flags().DurationVar(&interval, "interval", cfg.WatchInterval, "time between checks")
	return watch
}
