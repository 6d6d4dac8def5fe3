package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adonay-express/orderflow/internal/connectivity"
)

const probeTimeout = 2 * time.Second

// SentinelProbe observes store reachability by round-tripping a write on a
// dedicated sentinel row at a fixed interval. A completed round trip is a
// server-confirmed observation. A server that answers pings but cannot
// confirm the write in time produces an unconfirmed observation, which the
// monitor treats as reconnecting.
type SentinelProbe struct {
	storage  *Storage
	interval time.Duration
	logger   *slog.Logger
}

// NewSentinelProbe constructs a probe ticking at the given interval.
func NewSentinelProbe(storage *Storage, interval time.Duration, logger *slog.Logger) *SentinelProbe {
	return &SentinelProbe{storage: storage, interval: interval, logger: logger}
}

// Watch starts emitting observations for the sentinel key until the context
// is cancelled. The returned channel is closed on cancellation.
func (p *SentinelProbe) Watch(ctx context.Context, sentinel string) (<-chan connectivity.ProbeEvent, error) {
	events := make(chan connectivity.ProbeEvent, 1)
	go p.watch(ctx, sentinel, events)
	return events, nil
}

func (p *SentinelProbe) watch(ctx context.Context, sentinel string, events chan<- connectivity.ProbeEvent) {
	defer close(events)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// First observation goes out immediately so the monitor does not sit on
	// a stale state for a full interval after startup.
	p.observe(ctx, sentinel, events)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.observe(ctx, sentinel, events)
		}
	}
}

func (p *SentinelProbe) observe(ctx context.Context, sentinel string, events chan<- connectivity.ProbeEvent) {
	obsCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := p.storage.pool.Ping(obsCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.emit(ctx, events, connectivity.ProbeEvent{
			Err: fmt.Errorf("%w: ping: %v", connectivity.ErrUnavailable, err),
		})
		return
	}

	if err := p.touch(obsCtx, sentinel); err != nil {
		if ctx.Err() != nil {
			return
		}
		if connectionLost(err) {
			p.emit(ctx, events, connectivity.ProbeEvent{FromCache: true})
			return
		}
		p.emit(ctx, events, connectivity.ProbeEvent{Err: err})
		return
	}

	p.emit(ctx, events, connectivity.ProbeEvent{})
}

func (p *SentinelProbe) touch(ctx context.Context, sentinel string) error {
	const query = `INSERT INTO sentinels (key) VALUES ($1)
                   ON CONFLICT (key) DO UPDATE SET updated_at = NOW()`
	_, err := p.storage.pool.Exec(ctx, query, sentinel)
	return err
}

func (p *SentinelProbe) emit(ctx context.Context, events chan<- connectivity.ProbeEvent, ev connectivity.ProbeEvent) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// connectionLost reports whether the error means the server link dropped
// mid-operation, as opposed to the statement itself being rejected.
func connectionLost(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 covers connection exceptions.
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}
