package test

import (
	"context"
	"io"
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn   func(context.Context, string, string, []model.OrderLine, bool) (*model.Order, error)
	ChangeFn   func(context.Context, string, model.OrderStatus, bool) (*usecase.TransitionResult, error)
	ReviseFn   func(context.Context, string, []model.OrderLine) (*model.Order, error)
	FinalizeFn func(context.Context, string, []model.OrderLine) (*usecase.TransitionResult, error)
	ActiveFn   func() []model.Order
	ArchivedFn func() []model.MonthGroup
}

// SubmitOrder delegates to the provided function or returns a default order.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, customerID, nickname string, lines []model.OrderLine, staffPlaced bool) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, customerID, nickname, lines, staffPlaced)
	}
	return &model.Order{
		ID:          "order-abc123",
		CustomerID:  customerID,
		Lines:       lines,
		Status:      model.OrderStatusReceived,
		PlacedAt:    time.Unix(0, 0),
		Total:       model.LinesTotal(lines),
		StaffPlaced: staffPlaced,
	}, nil
}

// ChangeOrderStatus delegates or reports a successful change.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, force bool) (*usecase.TransitionResult, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, orderID, status, force)
	}
	return &usecase.TransitionResult{
		Order:   &model.Order{ID: orderID, Status: status},
		Changed: true,
	}, nil
}

// ReviseOrder delegates or echoes the revision.
func (s OrderFacadeStub) ReviseOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*model.Order, error) {
	if s.ReviseFn != nil {
		return s.ReviseFn(ctx, orderID, lines)
	}
	return &model.Order{ID: orderID, Lines: lines, Total: model.LinesTotal(lines)}, nil
}

// FinalizeOrder delegates or reports a completed order.
func (s OrderFacadeStub) FinalizeOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*usecase.TransitionResult, error) {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, orderID, lines)
	}
	return &usecase.TransitionResult{
		Order:   &model.Order{ID: orderID, Status: model.OrderStatusCompleted, Lines: lines, Total: model.LinesTotal(lines)},
		Changed: true,
	}, nil
}

// ActiveOrders returns the configured active view.
func (s OrderFacadeStub) ActiveOrders() []model.Order {
	if s.ActiveFn != nil {
		return s.ActiveFn()
	}
	return nil
}

// ArchivedOrders returns the configured archive view.
func (s OrderFacadeStub) ArchivedOrders() []model.MonthGroup {
	if s.ArchivedFn != nil {
		return s.ArchivedFn()
	}
	return nil
}

// SummaryFacadeStub serves canned derived views.
type SummaryFacadeStub struct {
	BatchesFn        func() []model.BatchSummary
	BatchFn          func(string) (*model.BatchSummary, error)
	CategoriesFn     func() []model.CategorySummary
	ExportBatchFn    func(io.Writer, string) error
	ExportCategoryFn func(io.Writer) error
}

// BatchSummaries returns the configured batch view.
func (s SummaryFacadeStub) BatchSummaries() []model.BatchSummary {
	if s.BatchesFn != nil {
		return s.BatchesFn()
	}
	return nil
}

// BatchSummary resolves one batch by tag.
func (s SummaryFacadeStub) BatchSummary(tag string) (*model.BatchSummary, error) {
	if s.BatchFn != nil {
		return s.BatchFn(tag)
	}
	return &model.BatchSummary{Tag: tag}, nil
}

// CategorySummaries returns the configured category view.
func (s SummaryFacadeStub) CategorySummaries() []model.CategorySummary {
	if s.CategoriesFn != nil {
		return s.CategoriesFn()
	}
	return nil
}

// ExportBatchSummary writes the configured CSV.
func (s SummaryFacadeStub) ExportBatchSummary(w io.Writer, tag string) error {
	if s.ExportBatchFn != nil {
		return s.ExportBatchFn(w, tag)
	}
	_, err := io.WriteString(w, "Tanda,"+tag+"\n")
	return err
}

// ExportCategorySummaries writes the configured CSV.
func (s SummaryFacadeStub) ExportCategorySummaries(w io.Writer) error {
	if s.ExportCategoryFn != nil {
		return s.ExportCategoryFn(w)
	}
	_, err := io.WriteString(w, "Categoría,Producto\n")
	return err
}

// BatchFacadeStub simulates batch session operations.
type BatchFacadeStub struct {
	StartFn  func(context.Context, string) error
	EndFn    func(context.Context) error
	ActiveFn func(context.Context) (string, error)
}

// StartBatch executes the configured handler.
func (s BatchFacadeStub) StartBatch(ctx context.Context, tag string) error {
	if s.StartFn != nil {
		return s.StartFn(ctx, tag)
	}
	return nil
}

// EndBatch executes the configured handler.
func (s BatchFacadeStub) EndBatch(ctx context.Context) error {
	if s.EndFn != nil {
		return s.EndFn(ctx)
	}
	return nil
}

// ActiveBatch returns the configured tag.
func (s BatchFacadeStub) ActiveBatch(ctx context.Context) (string, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx)
	}
	return "", nil
}

// ConnectivityFacadeStub reports a fixed connectivity state.
type ConnectivityFacadeStub struct {
	State model.ConnectivityState
}

// Connectivity returns the configured state, online by default.
func (s ConnectivityFacadeStub) Connectivity() model.ConnectivityState {
	if s.State == "" {
		return model.ConnectivityOnline
	}
	return s.State
}

// FacadeStub aggregates every facade stub behind the full HTTP surface.
type FacadeStub struct {
	OrderFacadeStub
	SummaryFacadeStub
	BatchFacadeStub
	ConnectivityFacadeStub
}
