package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/robfig/cron/v3"

	"recon/internal/storage"
	"recon/internal/utils"
)

// Monitor re-runs recon for a domain on a cron schedule, keeps a
// redis-backed history of snapshots and logs a unified diff whenever a
// snapshot changes.
type Monitor struct {
	Recon   *Recon
	Storage *storage.Storage
	Cron    *cron.Cron
}

func NewMonitor(r *Recon, s *storage.Storage) *Monitor {
	return &Monitor{
		Recon:   r,
		Storage: s,
		Cron:    cron.New(),
	}
}

// Start runs one immediate check, then schedules repeats.
func (m *Monitor) Start(domain string, interval time.Duration) error {
	m.RunCheck(context.Background(), domain)

	_, err := m.Cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		m.RunCheck(context.Background(), domain)
	})
	if err != nil {
		return err
	}

	m.Cron.Start()
	utils.Log.Info("watch started",
		utils.Field("domain", domain),
		utils.Field("interval", interval.String()))
	return nil
}

func (m *Monitor) Stop() {
	m.Cron.Stop()
}

func (m *Monitor) RunCheck(ctx context.Context, domain string) {
	if !utils.IsValidTarget(domain) {
		utils.Log.Warn("invalid target for scheduled check", utils.Field("domain", domain))
		return
	}
	utils.Log.Info("running scheduled check", utils.Field("domain", domain))

	res := m.Recon.Lookup(ctx, domain)

	changed, prev, curr, err := m.Storage.AddHistory(ctx, domain, res)
	if err != nil {
		utils.Log.Error("history write failed",
			utils.Field("domain", domain),
			utils.Field("error", err.Error()))
		return
	}

	if changed && prev != "" {
		edits := myers.ComputeEdits(span.URIFromPath(domain+".json"), prev, curr)
		diff := fmt.Sprint(gotextdiff.ToUnified("previous", "current", prev, edits))
		utils.Log.Info("recon result changed",
			utils.Field("domain", domain),
			utils.Field("diff", diff))
		return
	}
	utils.Log.Info("finished check",
		utils.Field("domain", domain),
		utils.Field("changed", changed))
}
