package app

import (
	"context"
	"io"

	"github.com/adonay-express/orderflow/internal/aggregate"
	"github.com/adonay-express/orderflow/internal/connectivity"
	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/export"
	"github.com/adonay-express/orderflow/internal/usecase"
)

// OrderFlowFacade is the single application surface the transport layer talks
// to. Reads are served from the materialized views; writes go through the use
// cases and are refused while the store is known to be offline.
type OrderFlowFacade struct {
	orders  *usecase.OrderUseCase
	batches *usecase.BatchSessionUseCase
	engine  *aggregate.Engine
	monitor *connectivity.Monitor
}

func NewOrderFlowFacade(orders *usecase.OrderUseCase, batches *usecase.BatchSessionUseCase, engine *aggregate.Engine, monitor *connectivity.Monitor) *OrderFlowFacade {
	return &OrderFlowFacade{orders: orders, batches: batches, engine: engine, monitor: monitor}
}

// gate refuses writes while the store is offline. Reconnecting still lets
// writes through: the store may well accept them, and a failure surfaces as a
// normal write error.
func (f *OrderFlowFacade) gate() error {
	if f.monitor.State() == model.ConnectivityOffline {
		return domainErrors.ErrStoreOffline
	}
	return nil
}

func (f *OrderFlowFacade) SubmitOrder(ctx context.Context, customerID, nickname string, lines []model.OrderLine, staffPlaced bool) (*model.Order, error) {
	if err := f.gate(); err != nil {
		return nil, err
	}
	return f.orders.Submit(ctx, customerID, nickname, lines, staffPlaced)
}

func (f *OrderFlowFacade) ChangeOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, force bool) (*usecase.TransitionResult, error) {
	if err := f.gate(); err != nil {
		return nil, err
	}
	return f.orders.Transition(ctx, orderID, status, force)
}

func (f *OrderFlowFacade) ReviseOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*model.Order, error) {
	if err := f.gate(); err != nil {
		return nil, err
	}
	return f.orders.ReviseLines(ctx, orderID, lines)
}

func (f *OrderFlowFacade) FinalizeOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*usecase.TransitionResult, error) {
	if err := f.gate(); err != nil {
		return nil, err
	}
	return f.orders.Finalize(ctx, orderID, lines)
}

func (f *OrderFlowFacade) ActiveOrders() []model.Order {
	return f.engine.Views().Active
}

func (f *OrderFlowFacade) ArchivedOrders() []model.MonthGroup {
	return f.engine.Views().Archived
}

func (f *OrderFlowFacade) BatchSummaries() []model.BatchSummary {
	return f.engine.Views().Batches
}

// BatchSummary resolves a single batch by tag from the materialized view.
func (f *OrderFlowFacade) BatchSummary(tag string) (*model.BatchSummary, error) {
	for _, s := range f.engine.Views().Batches {
		if s.Tag == tag {
			summary := s
			return &summary, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (f *OrderFlowFacade) CategorySummaries() []model.CategorySummary {
	return f.engine.Views().Categories
}

// ExportBatchSummary writes the batch settlement CSV for one tag.
func (f *OrderFlowFacade) ExportBatchSummary(w io.Writer, tag string) error {
	summary, err := f.BatchSummary(tag)
	if err != nil {
		return err
	}
	return export.WriteBatchSummary(w, *summary)
}

// ExportCategorySummaries writes the category sales CSV.
func (f *OrderFlowFacade) ExportCategorySummaries(w io.Writer) error {
	return export.WriteCategorySummaries(w, f.CategorySummaries())
}

func (f *OrderFlowFacade) StartBatch(ctx context.Context, tag string) error {
	if err := f.gate(); err != nil {
		return err
	}
	return f.batches.Start(ctx, tag)
}

func (f *OrderFlowFacade) EndBatch(ctx context.Context) error {
	if err := f.gate(); err != nil {
		return err
	}
	return f.batches.End(ctx)
}

func (f *OrderFlowFacade) ActiveBatch(ctx context.Context) (string, error) {
	return f.batches.Active(ctx)
}

func (f *OrderFlowFacade) Connectivity() model.ConnectivityState {
	return f.monitor.State()
}
