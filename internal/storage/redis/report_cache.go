package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
)

// ReportCache holds the active-report snapshot consumed by the socket
// layer, so per-client location updates don't each hit Postgres. The
// lifecycle service refreshes it after every submit and sweep; a miss
// (nil, nil) tells the caller to fall through to the store.
type ReportCache struct {
	client *goredis.Client
	key    string
}

func NewReportCache(r *Redis) *ReportCache {
	return &ReportCache{
		client: r.Client,
		key:    "reports:active",
	}
}

func (c *ReportCache) GetActive(ctx context.Context) ([]*domain.Report, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var reports []*domain.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (c *ReportCache) SetActive(ctx context.Context, reports []*domain.Report, ttl time.Duration) error {
	b, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
