package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/domain/repository"
	"github.com/adonay-express/orderflow/internal/notify"
)

// TransitionResult reports what a status change did. Notify is nil when the
// target status does not trigger a customer notification; a failed dispatch
// is recorded there instead of failing the whole operation, since the status
// write already succeeded.
type TransitionResult struct {
	Order   *model.Order
	Changed bool
	Notify  *notify.Result
}

// OrderUseCase drives the order status state machine and line revisions.
//
// Known race: the status write and the fetch-then-send notification are two
// separate steps against the same order id. A concurrent transition landing
// between them can make the notification describe an already superseded
// status. The flow is staff-operated, so this stays documented rather than
// serialized away.
type OrderUseCase struct {
	orders     repository.OrderRepository
	customers  repository.CustomerRepository
	dispatcher *notify.Dispatcher
	batches    *BatchSessionUseCase
	logger     *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, dispatcher *notify.Dispatcher, batches *BatchSessionUseCase, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		customers:  customers,
		dispatcher: dispatcher,
		batches:    batches,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Submit registers a new order in the received status. Product data is
// snapshotted into the lines; the total is always recomputed from the lines,
// never taken from the caller. The active batch tag, when present, stamps
// the order.
func (u *OrderUseCase) Submit(ctx context.Context, customerID, nickname string, lines []model.OrderLine, staffPlaced bool) (*model.Order, error) {
	lines = model.NormalizeLines(lines)
	if len(lines) == 0 {
		return nil, domainErrors.ErrNoLines
	}

	tag, err := u.batches.Active(ctx)
	if err != nil {
		u.logger.Error("read active batch failed", slog.String("error", err.Error()))
		tag = ""
	}

	order := model.Order{
		ID:               u.newID(),
		CustomerID:       customerID,
		CustomerNickname: nickname,
		Lines:            lines,
		Status:           model.OrderStatusReceived,
		PlacedAt:         u.now(),
		Total:            model.LinesTotal(lines),
		BatchTag:         tag,
		StaffPlaced:      staffPlaced,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Transition validates and applies a status change. Re-selecting the current
// status without force is a no-op: no write, no notification. Terminal
// orders reject every transition. When the target status is in the notify
// subset, the freshly persisted order and the owner's contact address feed a
// notification; its failure is secondary and does not roll anything back.
func (u *OrderUseCase) Transition(ctx context.Context, orderID string, newStatus model.OrderStatus, force bool) (*TransitionResult, error) {
	if !newStatus.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus && !force {
		return &TransitionResult{Order: order, Changed: false}, nil
	}
	if order.Status.Terminal() && order.Status != newStatus {
		return nil, domainErrors.ErrTerminalStatus
	}

	if err := u.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}

	result := &TransitionResult{Changed: true}
	if newStatus.Notifiable() {
		result.Order, result.Notify = u.notifyTransition(ctx, orderID, newStatus)
	}
	if result.Order == nil {
		updated := *order
		updated.Status = newStatus
		result.Order = &updated
	}
	return result, nil
}

// notifyTransition re-fetches the persisted order, resolves the customer and
// dispatches the notification when the status calls for one.
func (u *OrderUseCase) notifyTransition(ctx context.Context, orderID string, newStatus model.OrderStatus) (*model.Order, *notify.Result) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		u.logger.Error("fetch order for notification failed",
			slog.String("order", orderID), slog.String("error", err.Error()))
		return nil, &notify.Result{Err: err}
	}

	customer, err := u.customers.Get(ctx, order.CustomerID)
	if err != nil {
		u.logger.Error("fetch customer for notification failed",
			slog.String("order", orderID), slog.String("error", err.Error()))
		return order, &notify.Result{Err: err}
	}

	result := u.dispatcher.Dispatch(ctx, notify.BuildPayload(*order, *customer, newStatus))
	if !result.Sent() {
		u.logger.Warn("order notification failed",
			slog.String("order", order.ShortNumber()),
			slog.String("status", string(newStatus)),
			slog.String("error", result.Err.Error()),
		)
	}
	return order, &result
}

// ReviseLines replaces an order's lines while it is still editable. Zeroed
// lines are dropped and the total recomputed before the write.
func (u *OrderUseCase) ReviseLines(ctx context.Context, orderID string, lines []model.OrderLine) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrTerminalStatus
	}

	lines = model.NormalizeLines(lines)
	total := model.LinesTotal(lines)

	if err := u.orders.UpdateLines(ctx, orderID, lines, total); err != nil {
		return nil, err
	}

	updated := *order
	updated.Lines = lines
	updated.Total = total
	return &updated, nil
}

// Finalize applies a last line revision and forces the order to completed.
// The line write and the status write are separate store calls; the second
// can fail after the first applied. Force makes the completion notification
// go out even if a prior transition had already targeted completed.
func (u *OrderUseCase) Finalize(ctx context.Context, orderID string, lines []model.OrderLine) (*TransitionResult, error) {
	if _, err := u.ReviseLines(ctx, orderID, lines); err != nil {
		return nil, err
	}
	return u.Transition(ctx, orderID, model.OrderStatusCompleted, true)
}
