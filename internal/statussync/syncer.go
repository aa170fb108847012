// Package statussync keeps stored listing statuses in line with what the
// syndication provider actually did with each offer. It polls the
// provider's order report on a quarter-hour schedule, caches the raw report
// in redis between polls, and applies mapped status overrides to the store.
package statussync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/listing-console/cian"
	"github.com/yourorg/listing-console/internal/events"
	"github.com/yourorg/listing-console/internal/redisx"
	"github.com/yourorg/listing-console/internal/store"
)

const (
	reportCacheKey = "cian:order-report"
	syncLockKey    = "cian:order-report:lock"
	lockTTL        = 30 * time.Second
)

// ErrSyncInProgress is returned when another instance holds the sync lock.
var ErrSyncInProgress = errors.New("order report sync already in progress")

type Syncer struct {
	Client *cian.Client
	Redis  *redisx.Client
	Store  *store.Store
	Pub    events.Publisher
	Log    *zap.Logger

	// ReportTTL bounds how long a cached order report is served before the
	// provider is asked again.
	ReportTTL time.Duration
}

func (s *Syncer) validate() error {
	if s == nil || s.Client == nil {
		return errors.New("status syncer requires a provider client")
	}
	if s.Store == nil {
		return errors.New("status syncer requires a store")
	}
	if s.ReportTTL <= 0 {
		s.ReportTTL = 10 * time.Minute
	}
	return nil
}

// Run polls on the quarter-hour schedule until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	for {
		next := NextQuarterHour(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-timer.C:
		}
		if err := s.SyncOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			if errors.Is(err, ErrSyncInProgress) {
				continue
			}
			s.logw("order report sync failed", err)
		}
	}
}

// SyncOnce fetches the order report and applies status overrides to every
// stored object the report mentions. Objects the console doesn't know are
// skipped — the provider reports the whole account, not just this store.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}
	raw, err := s.Report(ctx)
	if err != nil {
		return err
	}
	overrides, err := cian.MapOrderReport(raw)
	if err != nil {
		return fmt.Errorf("map order report: %w", err)
	}

	var applied int
	for id, status := range overrides {
		rec, err := s.Store.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if rec.Status == status {
			continue
		}
		if err := s.Store.SetStatus(ctx, id, status, rec.DealType); err != nil {
			return err
		}
		applied++
		if s.Pub != nil {
			s.Pub.PublishListingUpdated(ctx, events.ListingUpdated{ObjectID: id, Status: status})
		}
	}
	if s.Log != nil {
		s.Log.Info("order report synced",
			zap.Int("offers", len(overrides)),
			zap.Int("overrides_applied", applied))
	}
	return nil
}

// Report returns the order report payload, served from the redis cache
// when fresh. On a cache miss a short SetNX lock keeps concurrent callers
// from stampeding the provider; losers get ErrSyncInProgress and retry on
// the next schedule tick.
func (s *Syncer) Report(ctx context.Context) ([]byte, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, reportCacheKey); err == nil && val != "" {
			return []byte(val), nil
		}
		release, ok := s.Redis.Lock(ctx, syncLockKey, lockTTL)
		if !ok {
			return nil, ErrSyncInProgress
		}
		defer release()
	}
	raw, err := s.Client.OrderReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch order report: %w", err)
	}
	if s.Redis != nil {
		_ = s.Redis.Set(ctx, reportCacheKey, string(raw), s.ReportTTL)
	}
	return raw, nil
}

func (s *Syncer) logw(msg string, err error) {
	if s.Log != nil {
		s.Log.Warn(msg, zap.Error(err))
	}
}
