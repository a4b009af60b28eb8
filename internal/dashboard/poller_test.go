package dashboard

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

type stubFetcher struct {
	calls  atomic.Int64
	orders []*models.Order
	err    error
}

func (f *stubFetcher) ListOrders(ctx context.Context) ([]*models.Order, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestPoller_FetchesImmediately(t *testing.T) {
	fetcher := &stubFetcher{orders: []*models.Order{{ID: 1}}}
	poller := NewPoller(fetcher, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	select {
	case snap := <-poller.Updates():
		require.Len(t, snap.Orders, 1)
		assert.Equal(t, int64(1), snap.Orders[0].ID)
		assert.False(t, snap.FetchedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot before the first tick")
	}
}

func TestPoller_PollsOnInterval(t *testing.T) {
	fetcher := &stubFetcher{orders: []*models.Order{{ID: 1}}}
	poller := NewPoller(fetcher, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	deadline := time.After(2 * time.Second)
	for fetcher.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d fetches", fetcher.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPoller_CancelClosesUpdates(t *testing.T) {
	fetcher := &stubFetcher{}
	poller := NewPoller(fetcher, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	// Drain the immediate snapshot, then cancel.
	<-poller.Updates()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, open := <-poller.Updates()
	assert.False(t, open, "updates channel should be closed")
}

func TestPoller_FetchErrorKeepsPolling(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("api down")}
	poller := NewPoller(fetcher, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	deadline := time.After(2 * time.Second)
	for fetcher.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("poller stopped after a fetch error")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// No snapshot is delivered while fetches fail.
	select {
	case <-poller.Updates():
		t.Fatal("unexpected snapshot")
	default:
	}
}

func TestPoller_SlowConsumerGetsLatest(t *testing.T) {
	fetcher := &stubFetcher{orders: []*models.Order{{ID: 1}}}
	poller := NewPoller(fetcher, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	// Let several polls pile up without reading.
	deadline := time.After(2 * time.Second)
	for fetcher.calls.Load() < 4 {
		select {
		case <-deadline:
			t.Fatal("not enough fetches")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Only the latest snapshot is buffered.
	snap := <-poller.Updates()
	assert.Len(t, snap.Orders, 1)
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	poller := NewPoller(&stubFetcher{}, 0, testLogger())
	assert.Equal(t, DefaultPollInterval, poller.interval)
}
