package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recon/internal/config"
	"recon/internal/service"
	"recon/internal/storage"
	"recon/internal/utils"
)

func main() {
	utils.InitLogger()
	defer utils.Sync()

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		outPath  string
		format   string
		resolver string
	)

	root := &cobra.Command{
		Use:   "recon <domain>",
		Short: "WHOIS & DNS recon for a domain",
		Long: "Queries WHOIS registration data and DNS records for a domain,\n" +
			"renders them for the terminal and optionally exports to JSON or CSV.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resolver != "" {
				cfg.Resolver = resolver
			}
			r := buildRecon(cmd.Context(), cfg, cmd.OutOrStdout())
			return r.Run(cmd.Context(), args[0], outPath, format)
		},
	}

	root.Flags().StringVar(&outPath, "out", "", "path to save results (e.g. out.json or out.csv)")
	root.Flags().StringVar(&format, "format", "json", "export format: json or csv")
	root.PersistentFlags().StringVar(&resolver, "resolver", "", "DNS resolver address (host:port)")

	root.AddCommand(newServeCmd(cfg), newWatchCmd(cfg))
	return root
}

// buildRecon wires the lookup pipeline, attaching the redis result
// cache only when it is enabled and reachable.
func buildRecon(ctx context.Context, cfg *config.Config, out io.Writer) *service.Recon {
	r := service.New(cfg, out)
	if cfg.EnableCache {
		store := storage.NewStorage(cfg.RedisHost, cfg.RedisPort)
		if err := store.Ping(ctx); err != nil {
			utils.Log.Warn("redis unavailable, running without cache",
				utils.Field("error", err.Error()))
		} else {
			r.Cache = store
			r.CacheTTL = cfg.CacheTTL
		}
	}
	return r
}
