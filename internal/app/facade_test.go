package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/adonay-express/orderflow/internal/aggregate"
	"github.com/adonay-express/orderflow/internal/connectivity"
	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/notify"
	"github.com/adonay-express/orderflow/internal/stream"
	"github.com/adonay-express/orderflow/internal/test"
	"github.com/adonay-express/orderflow/internal/usecase"
)

type sourceStub struct {
	ch chan stream.Snapshot
}

func (s *sourceStub) Subscribe() (<-chan stream.Snapshot, func()) {
	return s.ch, func() { close(s.ch) }
}

type probeStub struct{}

func (probeStub) Watch(ctx context.Context, sentinel string) (<-chan connectivity.ProbeEvent, error) {
	ch := make(chan connectivity.ProbeEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

type facadeFixture struct {
	facade  *OrderFlowFacade
	orders  *test.OrderRepositoryStub
	tags    *test.TagStoreStub
	monitor *connectivity.Monitor
	source  *sourceStub
	engine  *aggregate.Engine
}

func newFacadeFixture(t *testing.T, orders ...model.Order) *facadeFixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	f := &facadeFixture{
		orders: test.NewOrderRepositoryStub(orders...),
		tags:   &test.TagStoreStub{},
		source: &sourceStub{ch: make(chan stream.Snapshot, 1)},
	}

	customers := test.NewCustomerRepositoryStub(model.Customer{ID: "cust-1", Email: "maria@example.cl"})
	dispatcher := notify.NewDispatcher(&test.ComposerStub{}, &test.TransportStub{}, logger)
	batches := usecase.NewBatchSessionUseCase(f.tags)
	orderUC := usecase.NewOrderUseCase(f.orders, customers, dispatcher, batches, logger)

	f.engine = aggregate.NewEngine(f.source, logger)
	f.engine.Start()
	t.Cleanup(f.engine.Stop)

	f.monitor = connectivity.NewMonitor(probeStub{}, logger)
	f.facade = NewOrderFlowFacade(orderUC, batches, f.engine, f.monitor)
	return f
}

// push feeds one snapshot through the engine and waits for materialization.
func (f *facadeFixture) push(t *testing.T, orders []model.Order) {
	t.Helper()
	f.source.ch <- stream.Snapshot{Orders: orders, At: time.Now()}

	deadline := time.After(2 * time.Second)
	for f.engine.Views().UpdatedAt.IsZero() {
		select {
		case <-deadline:
			t.Fatal("engine did not materialize the snapshot")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFacadeRefusesWritesWhileOffline(t *testing.T) {
	f := newFacadeFixture(t, model.Order{ID: "order-1", CustomerID: "cust-1", Status: model.OrderStatusPending})
	f.monitor.NativeOffline()

	lines := []model.OrderLine{{Product: model.ProductRef{ID: "p1", Price: 1000}, Quantity: 1}}

	if _, err := f.facade.SubmitOrder(context.Background(), "cust-1", "", lines, false); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("SubmitOrder() error = %v, want ErrStoreOffline", err)
	}
	if _, err := f.facade.ChangeOrderStatus(context.Background(), "order-1", model.OrderStatusReceived, false); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("ChangeOrderStatus() error = %v, want ErrStoreOffline", err)
	}
	if _, err := f.facade.ReviseOrder(context.Background(), "order-1", lines); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("ReviseOrder() error = %v, want ErrStoreOffline", err)
	}
	if _, err := f.facade.FinalizeOrder(context.Background(), "order-1", lines); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("FinalizeOrder() error = %v, want ErrStoreOffline", err)
	}
	if err := f.facade.StartBatch(context.Background(), "Evento-1"); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("StartBatch() error = %v, want ErrStoreOffline", err)
	}
	if err := f.facade.EndBatch(context.Background()); !errors.Is(err, domainErrors.ErrStoreOffline) {
		t.Errorf("EndBatch() error = %v, want ErrStoreOffline", err)
	}

	if len(f.orders.Created) != 0 || len(f.orders.StatusUpdates) != 0 || len(f.orders.LinesUpdates) != 0 {
		t.Error("offline writes must not reach the repository")
	}
}

func TestFacadeWritesPassWhileReconnecting(t *testing.T) {
	f := newFacadeFixture(t)
	f.monitor.NativeOnline() // reconnecting until the sentinel confirms

	lines := []model.OrderLine{{Product: model.ProductRef{ID: "p1", Price: 1000}, Quantity: 1}}
	if _, err := f.facade.SubmitOrder(context.Background(), "cust-1", "", lines, false); err != nil {
		t.Fatalf("SubmitOrder() error = %v", err)
	}
	if len(f.orders.Created) != 1 {
		t.Fatalf("created %d orders, want 1", len(f.orders.Created))
	}
}

func TestFacadeServesViews(t *testing.T) {
	f := newFacadeFixture(t)

	placedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	f.push(t, []model.Order{
		{
			ID: "order-1", Status: model.OrderStatusAccepted, PlacedAt: placedAt, Total: 3000, BatchTag: "Evento-1",
			Lines: []model.OrderLine{{Product: model.ProductRef{ID: "p1", Name: "Empanada", Price: 1500, Category: model.CategoryIndividual}, Quantity: 2}},
		},
		{ID: "order-2", Status: model.OrderStatusCompleted, PlacedAt: placedAt.AddDate(0, 0, -40), Total: 1000},
	})

	if got := f.facade.ActiveOrders(); len(got) != 1 || got[0].ID != "order-1" {
		t.Errorf("ActiveOrders() = %+v, want order-1 only", got)
	}
	if got := f.facade.ArchivedOrders(); len(got) != 1 || len(got[0].Orders) != 1 {
		t.Errorf("ArchivedOrders() = %+v, want one month group", got)
	}
	if got := f.facade.BatchSummaries(); len(got) != 2 {
		t.Errorf("BatchSummaries() returned %d batches, want 2", len(got))
	}
	if got := f.facade.CategorySummaries(); len(got) != 1 {
		t.Errorf("CategorySummaries() returned %d categories, want 1", len(got))
	}

	summary, err := f.facade.BatchSummary("Evento-1")
	if err != nil {
		t.Fatalf("BatchSummary() error = %v", err)
	}
	if summary.TotalRevenue != 3000 || summary.OrderCount != 1 {
		t.Errorf("BatchSummary() = %+v", summary)
	}

	if _, err := f.facade.BatchSummary("missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("BatchSummary(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFacadeExportsCSV(t *testing.T) {
	f := newFacadeFixture(t)

	placedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	f.push(t, []model.Order{{
		ID: "order-1", Status: model.OrderStatusCompleted, PlacedAt: placedAt, Total: 3000, BatchTag: "Evento-1",
		Lines: []model.OrderLine{{Product: model.ProductRef{ID: "p1", Name: "Empanada", Price: 1500, Category: model.CategoryIndividual}, Quantity: 2}},
	}})

	var batchCSV strings.Builder
	if err := f.facade.ExportBatchSummary(&batchCSV, "Evento-1"); err != nil {
		t.Fatalf("ExportBatchSummary() error = %v", err)
	}
	if !strings.Contains(batchCSV.String(), "Evento-1") || !strings.Contains(batchCSV.String(), "$3.000") {
		t.Errorf("unexpected batch CSV:\n%s", batchCSV.String())
	}

	if err := f.facade.ExportBatchSummary(io.Discard, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("ExportBatchSummary(missing) error = %v, want ErrNotFound", err)
	}

	var categoryCSV strings.Builder
	if err := f.facade.ExportCategorySummaries(&categoryCSV); err != nil {
		t.Fatalf("ExportCategorySummaries() error = %v", err)
	}
	if !strings.Contains(categoryCSV.String(), "Empanada") {
		t.Errorf("unexpected category CSV:\n%s", categoryCSV.String())
	}
}

func TestFacadeBatchSessionAndConnectivity(t *testing.T) {
	f := newFacadeFixture(t)

	if state := f.facade.Connectivity(); state != model.ConnectivityOnline {
		t.Errorf("Connectivity() = %s, want online", state)
	}

	if err := f.facade.StartBatch(context.Background(), "Evento-1"); err != nil {
		t.Fatalf("StartBatch() error = %v", err)
	}
	tag, err := f.facade.ActiveBatch(context.Background())
	if err != nil || tag != "Evento-1" {
		t.Fatalf("ActiveBatch() = %q, %v", tag, err)
	}
	if err := f.facade.EndBatch(context.Background()); err != nil {
		t.Fatalf("EndBatch() error = %v", err)
	}
	tag, err = f.facade.ActiveBatch(context.Background())
	if err != nil || tag != "" {
		t.Fatalf("ActiveBatch() after end = %q, %v", tag, err)
	}
}
