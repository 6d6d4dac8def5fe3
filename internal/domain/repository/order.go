package repository

import (
	"context"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Writes are
// fire-and-commit per document: the store gives no transaction guarantee
// across separate calls.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	// ListAll returns the full order collection, newest first by placement
	// time. Derived views are recomputed from this full set on every change.
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	UpdateLines(ctx context.Context, id string, lines []model.OrderLine, total int64) error
}
