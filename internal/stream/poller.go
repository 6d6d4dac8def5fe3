package stream

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/domain/repository"
)

// Poller implements Source over an OrderRepository. It reads the full
// collection on an interval and fans a snapshot out to subscribers whenever
// the collection content changed. Slow subscribers only ever see the latest
// snapshot; stale ones are dropped.
type Poller struct {
	orders   repository.OrderRepository
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	last   uint64
	seeded bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller constructs a snapshot poller.
func NewPoller(orders repository.OrderRepository, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		orders:   orders,
		interval: interval,
		logger:   logger,
		subs:     make(map[int]chan Snapshot),
	}
}

// Subscribe registers a consumer of order snapshots.
func (p *Poller) Subscribe() (<-chan Snapshot, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan Snapshot, 1)
	p.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if existing, ok := p.subs[id]; ok {
				delete(p.subs, id)
				close(existing)
			}
		})
	}
	return ch, cancel
}

// Start launches background polling. The first poll runs immediately so
// subscribers get an initial snapshot without waiting a full interval.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go p.loop(runCtx)
}

// Stop halts polling and waits for the loop to exit. Subscriptions stay
// registered; no further snapshots are delivered.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	orders, err := p.orders.ListAll(ctx)
	if err != nil {
		p.logger.Error("order snapshot poll failed", slog.String("error", err.Error()))
		return
	}

	sum := digest(orders)

	p.mu.Lock()
	defer p.mu.Unlock()

	changed := !p.seeded || sum != p.last
	p.seeded = true
	p.last = sum
	if !changed {
		return
	}

	// Delivery happens under the lock so a concurrent unsubscribe cannot
	// close a channel mid-send. Sends never block.
	snap := Snapshot{Orders: orders, At: time.Now()}
	for _, ch := range p.subs {
		deliver(ch, snap)
	}
}

// deliver pushes the snapshot, displacing an undelivered older one if the
// subscriber has not kept up.
func deliver(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

func digest(orders []model.Order) uint64 {
	h := fnv.New64a()
	for _, o := range orders {
		fmt.Fprintf(h, "%s|%s|%d|%s|%d;", o.ID, o.Status, o.Total, o.BatchTag, o.PlacedAt.UnixNano())
		for _, l := range o.Lines {
			fmt.Fprintf(h, "%s*%d@%d,", l.Product.ID, l.Quantity, l.Product.Price)
		}
	}
	return h.Sum64()
}
