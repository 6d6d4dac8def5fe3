package aggregate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/stream"
)

// Views is the materialized set of derived views over one order snapshot.
type Views struct {
	Active     []model.Order
	Archived   []model.MonthGroup
	Batches    []model.BatchSummary
	Categories []model.CategorySummary
	UpdatedAt  time.Time
}

// Engine subscribes to the order stream and rebuilds every derived view from
// the full snapshot on each change. Recompute-over-incremental is deliberate:
// the expected volume is hundreds to low thousands of orders.
type Engine struct {
	source stream.Source
	logger *slog.Logger

	mu     sync.RWMutex
	views  Views
	cancel func()
	wg     sync.WaitGroup
}

// NewEngine constructs an aggregation engine over a snapshot source.
func NewEngine(source stream.Source, logger *slog.Logger) *Engine {
	return &Engine{source: source, logger: logger}
}

// Start subscribes to the stream and begins materializing views.
func (e *Engine) Start() {
	snapshots, cancel := e.source.Subscribe()

	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	e.wg.Add(1)
	go e.consume(snapshots)
}

// Stop cancels the stream subscription and waits for the consumer to drain.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
}

// Views returns the latest materialized view set.
func (e *Engine) Views() Views {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.views
}

func (e *Engine) consume(snapshots <-chan stream.Snapshot) {
	defer e.wg.Done()
	for snap := range snapshots {
		e.apply(snap)
	}
}

func (e *Engine) apply(snap stream.Snapshot) {
	views := Views{
		Active:     ActiveOrders(snap.Orders),
		Archived:   ArchivedOrders(snap.Orders),
		Batches:    BatchSummaries(snap.Orders),
		Categories: CategorySummaries(snap.Orders),
		UpdatedAt:  snap.At,
	}

	e.mu.Lock()
	e.views = views
	e.mu.Unlock()

	e.logger.Debug("derived views rebuilt",
		slog.Int("orders", len(snap.Orders)),
		slog.Int("batches", len(views.Batches)),
	)
}
