package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"recon/internal/config"
	"recon/internal/export"
	"recon/internal/model"
	"recon/internal/report"
	"recon/internal/storage"
	"recon/internal/utils"
)

// DNSGatherer is what the orchestrator needs from the DNS side.
type DNSGatherer interface {
	Gather(ctx context.Context, domain string) model.DNSRecords
}

// Recon sequences one lookup-and-report pass: WHOIS, DNS, terminal
// rendering and the optional file export. A failure on either lookup
// side never blocks the other.
type Recon struct {
	DNS         DNSGatherer
	WhoisLookup func(domain string) model.WhoisRecord

	// Cache, when set, is consulted before live lookups.
	Cache    *storage.Storage
	CacheTTL time.Duration

	Out io.Writer
}

func New(cfg *config.Config, out io.Writer) *Recon {
	return &Recon{
		DNS:         NewDNSService(cfg.Resolver, cfg.DNSTimeout),
		WhoisLookup: NormalizeWhois,
		Out:         out,
	}
}

// Lookup gathers WHOIS and DNS data and assembles the result envelope.
// The timestamp is read at assembly time, independent of the banner.
func (r *Recon) Lookup(ctx context.Context, domain string) model.Result {
	if cached, ok := r.fromCache(ctx, domain); ok {
		return cached
	}

	res := model.Result{
		Domain:       domain,
		Whois:        r.WhoisLookup(domain),
		DNS:          r.DNS.Gather(ctx, domain),
		TimestampUTC: time.Now().UTC().Format(time.RFC3339),
	}

	if r.Cache != nil {
		if err := r.Cache.SetCache(ctx, cacheKey(domain), res, r.CacheTTL); err != nil {
			utils.Log.Warn("result cache write failed", utils.Field("error", err.Error()))
		}
	}
	return res
}

// Run is the CLI entrypoint: banner, lookups, both render passes, then
// the export dispatch when an output path was requested.
func (r *Recon) Run(ctx context.Context, domain, outPath, format string) error {
	report.Banner(r.Out, domain, time.Now().UTC())

	res := r.Lookup(ctx, domain)

	report.RenderWhois(r.Out, res.Whois)
	report.RenderDNS(r.Out, res.DNS, domain)

	if outPath == "" {
		return nil
	}

	switch strings.ToLower(format) {
	case "json":
		if err := export.WriteJSON(res, outPath); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "Saved JSON -> %s\n", outPath)
	case "csv":
		if err := export.WriteCSV(res, outPath); err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "Saved CSV  -> %s\n", outPath)
	default:
		fmt.Fprintln(r.Out, "Unknown format; use json or csv")
	}
	return nil
}

func (r *Recon) fromCache(ctx context.Context, domain string) (model.Result, bool) {
	if r.Cache == nil {
		return model.Result{}, false
	}
	cached, err := r.Cache.GetCache(ctx, cacheKey(domain))
	if err != nil {
		return model.Result{}, false
	}
	var res model.Result
	if err := json.Unmarshal([]byte(cached), &res); err != nil {
		return model.Result{}, false
	}
	return res, true
}

func cacheKey(domain string) string {
	return "recon:" + domain
}
