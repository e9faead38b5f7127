package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"recon/internal/model"
	"recon/internal/storage"
)

func monitorFixture(t *testing.T, gatherer *stubGatherer) *Monitor {
	t.Helper()
	mr := miniredis.RunT(t)
	store := storage.NewStorage(mr.Host(), mr.Port())
	r := &Recon{
		DNS: gatherer,
		WhoisLookup: func(domain string) model.WhoisRecord {
			return model.WhoisRecord{Domain: domain, NameServers: []string{}, Status: []string{}}
		},
		Out: &bytes.Buffer{},
	}
	return NewMonitor(r, store)
}

func TestRunCheck_DeduplicatesHistory(t *testing.T) {
	records := emptyRecords()
	records["A"] = []string{"1.2.3.4"}
	gatherer := &stubGatherer{records: records}
	m := monitorFixture(t, gatherer)
	ctx := context.Background()

	m.RunCheck(ctx, "example.com")
	m.RunCheck(ctx, "example.com")

	entries, err := m.Storage.GetHistory(ctx, "example.com")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Identical snapshots must not stack up, got %d entries", len(entries))
	}

	// A record change appends a second entry, newest first.
	changed := emptyRecords()
	changed["A"] = []string{"5.6.7.8"}
	gatherer.records = changed
	m.RunCheck(ctx, "example.com")

	entries, _ = m.Storage.GetHistory(ctx, "example.com")
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries after a change, got %d", len(entries))
	}
	if entries[0].Snapshot == entries[1].Snapshot {
		t.Error("Entries should differ after a change")
	}
}

func TestRunCheck_RejectsInvalidTarget(t *testing.T) {
	m := monitorFixture(t, &stubGatherer{records: emptyRecords()})
	ctx := context.Background()

	m.RunCheck(ctx, "not a domain!")

	entries, _ := m.Storage.GetHistory(ctx, "not a domain!")
	if len(entries) != 0 {
		t.Errorf("Invalid target must not be checked, got %d entries", len(entries))
	}
}
