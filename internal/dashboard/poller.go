package dashboard

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

// DefaultPollInterval is how often the staff dashboard refreshes its queue.
const DefaultPollInterval = 10 * time.Second

// ListFetcher is the one call the poller needs from the API client.
type ListFetcher interface {
	ListOrders(ctx context.Context) ([]*models.Order, error)
}

// Snapshot is one successful list fetch.
type Snapshot struct {
	Orders    []*models.Order
	FetchedAt time.Time
}

// Poller is the staff dashboard's polling loop: fetch immediately on start,
// then on a fixed interval until the context is cancelled. The context is
// threaded into every request, so an in-flight call is abandoned cleanly on
// teardown instead of resolving into the void.
type Poller struct {
	fetcher  ListFetcher
	interval time.Duration
	logger   *logrus.Entry
	updates  chan Snapshot
}

// NewPoller creates a poller. A zero interval falls back to the default.
func NewPoller(fetcher ListFetcher, interval time.Duration, logger *logrus.Entry) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger.WithField("component", "dashboard-poller"),
		updates:  make(chan Snapshot, 1),
	}
}

// Updates delivers snapshots. Only the latest snapshot is retained if the
// consumer falls behind, so a slow reader never sees stale data overwrite
// newer data.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// Run polls until ctx is cancelled. Fetch failures are logged and the
// previous snapshot stands; there is no retry or backoff.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.updates)

	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	orders, err := p.fetcher.ListOrders(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.WithError(err).Error("Failed to fetch orders")
		return
	}

	snap := Snapshot{Orders: orders, FetchedAt: time.Now()}
	for {
		select {
		case p.updates <- snap:
			return
		default:
			// Drop the stale snapshot and retry with the fresh one.
			select {
			case <-p.updates:
			default:
			}
		}
	}
}
