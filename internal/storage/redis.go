package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"recon/internal/model"
)

const historyCap = 100

type Storage struct {
	Client *redis.Client
}

func NewStorage(host, port string) *Storage {
	rdb := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
		DB:   0,
	})
	return &Storage{Client: rdb}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *Storage) GetCache(ctx context.Context, key string) (string, error) {
	return s.Client.Get(ctx, key).Result()
}

func (s *Storage) SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	val, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key, val, expiration).Err()
}

// AddHistory appends the result's snapshot to the domain's history list
// unless it matches the latest entry. It reports whether the snapshot
// changed and returns the previous and current snapshots for diffing.
func (s *Storage) AddHistory(ctx context.Context, domain string, res model.Result) (changed bool, prev, curr string, err error) {
	curr = res.Snapshot()

	lastJSON, lerr := s.Client.LIndex(ctx, historyKey(domain), 0).Result()
	if lerr == nil {
		var last model.HistoryEntry
		if json.Unmarshal([]byte(lastJSON), &last) == nil {
			prev = last.Snapshot
			if last.Snapshot == curr {
				return false, prev, curr, nil
			}
		}
	}

	entry := model.HistoryEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Snapshot:  curr,
	}
	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return false, prev, curr, err
	}

	pipe := s.Client.Pipeline()
	pipe.LPush(ctx, historyKey(domain), string(entryBytes))
	pipe.LTrim(ctx, historyKey(domain), 0, historyCap-1)
	_, err = pipe.Exec(ctx)
	return true, prev, curr, err
}

// GetHistory returns entries newest first.
func (s *Storage) GetHistory(ctx context.Context, domain string) ([]model.HistoryEntry, error) {
	val, err := s.Client.LRange(ctx, historyKey(domain), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	var entries []model.HistoryEntry
	for _, v := range val {
		var entry model.HistoryEntry
		if err := json.Unmarshal([]byte(v), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func historyKey(domain string) string {
	return "recon_history:" + domain
}
