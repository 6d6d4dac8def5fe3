package handlers

import (
	"context"
	"io"

	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/usecase"
)

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, customerID, nickname string, lines []model.OrderLine, staffPlaced bool) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, force bool) (*usecase.TransitionResult, error)
	ReviseOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*model.Order, error)
	FinalizeOrder(ctx context.Context, orderID string, lines []model.OrderLine) (*usecase.TransitionResult, error)
	ActiveOrders() []model.Order
	ArchivedOrders() []model.MonthGroup
}

// SummaryFacade serves the derived settlement and sales views.
type SummaryFacade interface {
	BatchSummaries() []model.BatchSummary
	BatchSummary(tag string) (*model.BatchSummary, error)
	CategorySummaries() []model.CategorySummary
	ExportBatchSummary(w io.Writer, tag string) error
	ExportCategorySummaries(w io.Writer) error
}

// BatchFacade controls the active batch session.
type BatchFacade interface {
	StartBatch(ctx context.Context, tag string) error
	EndBatch(ctx context.Context) error
	ActiveBatch(ctx context.Context) (string, error)
}

// ConnectivityFacade reports the merged store connectivity state.
type ConnectivityFacade interface {
	Connectivity() model.ConnectivityState
}

// OrderFlowFacade aggregates the full set of operations used across handlers.
type OrderFlowFacade interface {
	OrderFacade
	SummaryFacade
	BatchFacade
	ConnectivityFacade
}
