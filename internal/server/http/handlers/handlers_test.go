package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
	"github.com/adonay-express/orderflow/internal/notify"
	"github.com/adonay-express/orderflow/internal/server/http/dto"
	testhelpers "github.com/adonay-express/orderflow/internal/test"
	"github.com/adonay-express/orderflow/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, route string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func submitBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.SubmitOrderRequest{
		CustomerID: "cust-1",
		Nickname:   "mari",
		Lines: []dto.OrderLine{{
			Product:  dto.ProductRef{ID: "p1", Name: "Empanada", Price: 1500, Category: "Individual"},
			Quantity: 2,
		}},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func TestOrderHandlerSubmit(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/orders", "/orders",
		NewOrderHandler(testhelpers.OrderFacadeStub{}).Submit, submitBody(t))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.Total != 3000 || order.Status != string(model.OrderStatusReceived) {
		t.Fatalf("unexpected order response: %+v", order)
	}
	if order.Number != "ABC123" {
		t.Fatalf("unexpected order number %q", order.Number)
	}
}

func TestOrderHandlerSubmitFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "no lines", body: []byte(`{"customerId":"c","lines":[]}`), facade: testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, string, []model.OrderLine, bool) (*model.Order, error) {
				return nil, domainErrors.ErrNoLines
			}}, status: http.StatusUnprocessableEntity},
		{name: "offline", facade: testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, string, []model.OrderLine, bool) (*model.Order, error) {
				return nil, domainErrors.ErrStoreOffline
			}}, status: http.StatusServiceUnavailable},
		{name: "internal", facade: testhelpers.OrderFacadeStub{
			SubmitFn: func(context.Context, string, string, []model.OrderLine, bool) (*model.Order, error) {
				return nil, errors.New("boom")
			}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == nil {
				body = submitBody(t)
			}
			resp := performRequest(t, http.MethodPost, "/orders", "/orders",
				NewOrderHandler(tt.facade).Submit, body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerActive(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ActiveFn: func() []model.Order {
		return []model.Order{{ID: "order-1", Status: model.OrderStatusAccepted}}
	}}
	resp := performRequest(t, http.MethodGet, "/orders/active", "/orders/active",
		NewOrderHandler(facade).Active, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var orders []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "order-1" {
		t.Fatalf("unexpected response: %+v", orders)
	}
}

func TestOrderHandlerActiveEmpty(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/active", "/orders/active",
		NewOrderHandler(testhelpers.OrderFacadeStub{}).Active, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestOrderHandlerArchive(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ArchivedFn: func() []model.MonthGroup {
		return []model.MonthGroup{{
			Label:  "Agosto 2026",
			Orders: []model.Order{{ID: "order-1", Status: model.OrderStatusCompleted, PlacedAt: time.Unix(0, 0)}},
		}}
	}}
	resp := performRequest(t, http.MethodGet, "/orders/archive", "/orders/archive",
		NewOrderHandler(facade).Archive, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var groups []dto.MonthGroupResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(groups) != 1 || groups[0].Label != "Agosto 2026" || len(groups[0].Orders) != 1 {
		t.Fatalf("unexpected response: %+v", groups)
	}
}

func TestOrderHandlerChangeStatus(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{
		ChangeFn: func(ctx context.Context, orderID string, status model.OrderStatus, force bool) (*usecase.TransitionResult, error) {
			if orderID != "order-1" || status != model.OrderStatusReceived || force {
				t.Fatalf("unexpected call: id=%q status=%q force=%v", orderID, status, force)
			}
			return &usecase.TransitionResult{
				Order:   &model.Order{ID: orderID, Status: status},
				Changed: true,
				Notify:  &notify.Result{MessageID: "msg-1"},
			}, nil
		},
	}

	body, _ := json.Marshal(dto.ChangeStatusRequest{Status: "RECEIVED"})
	resp := performRequest(t, http.MethodPatch, "/orders/order-1/status", "/orders/:id/status",
		NewOrderHandler(facade).ChangeStatus, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var result dto.TransitionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Changed || result.Notification == nil || result.Notification.MessageID != "msg-1" {
		t.Fatalf("unexpected response: %+v", result)
	}
}

func TestOrderHandlerChangeStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown status", err: domainErrors.ErrInvalidStatus, status: http.StatusUnprocessableEntity},
		{name: "terminal order", err: domainErrors.ErrTerminalStatus, status: http.StatusConflict},
		{name: "missing order", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "offline", err: domainErrors.ErrStoreOffline, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{
				ChangeFn: func(context.Context, string, model.OrderStatus, bool) (*usecase.TransitionResult, error) {
					return nil, tt.err
				},
			}
			body, _ := json.Marshal(dto.ChangeStatusRequest{Status: "RECEIVED"})
			resp := performRequest(t, http.MethodPatch, "/orders/order-1/status", "/orders/:id/status",
				NewOrderHandler(facade).ChangeStatus, body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerChangeStatusBadJSON(t *testing.T) {
	resp := performRequest(t, http.MethodPatch, "/orders/order-1/status", "/orders/:id/status",
		NewOrderHandler(testhelpers.OrderFacadeStub{}).ChangeStatus, []byte("not json"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerReviseLines(t *testing.T) {
	body, _ := json.Marshal(dto.ReviseLinesRequest{Lines: []dto.OrderLine{{
		Product:  dto.ProductRef{ID: "p1", Name: "Empanada", Price: 1500},
		Quantity: 1,
	}}})
	resp := performRequest(t, http.MethodPut, "/orders/order-1/lines", "/orders/:id/lines",
		NewOrderHandler(testhelpers.OrderFacadeStub{}).ReviseLines, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.Total != 1500 {
		t.Fatalf("unexpected total %d", order.Total)
	}
}

func TestOrderHandlerFinalize(t *testing.T) {
	body, _ := json.Marshal(dto.ReviseLinesRequest{Lines: []dto.OrderLine{{
		Product:  dto.ProductRef{ID: "p1", Name: "Empanada", Price: 1500},
		Quantity: 2,
	}}})
	resp := performRequest(t, http.MethodPost, "/orders/order-1/finalize", "/orders/:id/finalize",
		NewOrderHandler(testhelpers.OrderFacadeStub{}).Finalize, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var result dto.TransitionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Order.Status != string(model.OrderStatusCompleted) || result.Order.Total != 3000 {
		t.Fatalf("unexpected response: %+v", result)
	}
}

func TestSummaryHandlerBatches(t *testing.T) {
	now := time.Now()
	facade := testhelpers.SummaryFacadeStub{BatchesFn: func() []model.BatchSummary {
		return []model.BatchSummary{{
			Tag: "Evento-1", OrderCount: 2, TotalRevenue: 4000,
			FirstOrderAt: now.Add(-time.Hour), LastOrderAt: now,
			Products: []model.ProductSales{{ProductID: "p1", Name: "Empanada", Quantity: 4, Revenue: 4000}},
		}}
	}}
	resp := performRequest(t, http.MethodGet, "/summaries/batches", "/summaries/batches",
		NewSummaryHandler(facade).Batches, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var batches []dto.BatchSummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &batches); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(batches) != 1 || batches[0].TotalRevenue != 4000 || batches[0].FirstOrderAt == nil {
		t.Fatalf("unexpected response: %+v", batches)
	}
}

func TestSummaryHandlerBatch(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/summaries/batches/Evento-1", "/summaries/batches/:tag",
		NewSummaryHandler(testhelpers.SummaryFacadeStub{}).Batch, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var batch dto.BatchSummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &batch); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if batch.Tag != "Evento-1" {
		t.Fatalf("unexpected tag %q", batch.Tag)
	}
	if batch.FirstOrderAt != nil {
		t.Fatalf("empty batch should omit the date span: %+v", batch)
	}
}

func TestSummaryHandlerBatchNotFound(t *testing.T) {
	facade := testhelpers.SummaryFacadeStub{BatchFn: func(string) (*model.BatchSummary, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/summaries/batches/missing", "/summaries/batches/:tag",
		NewSummaryHandler(facade).Batch, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestSummaryHandlerCategories(t *testing.T) {
	facade := testhelpers.SummaryFacadeStub{CategoriesFn: func() []model.CategorySummary {
		return []model.CategorySummary{{
			Category: model.CategoryIndividual,
			Products: []model.ProductSales{{ProductID: "p1", Name: "Empanada", Quantity: 10, Revenue: 15000}},
		}}
	}}
	resp := performRequest(t, http.MethodGet, "/summaries/categories", "/summaries/categories",
		NewSummaryHandler(facade).Categories, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var categories []dto.CategorySummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(categories) != 1 || categories[0].Category != "Individual" {
		t.Fatalf("unexpected response: %+v", categories)
	}
}

func TestSummaryHandlerBatchCSV(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/summaries/batches/Evento-1/export", "/summaries/batches/:tag/export",
		NewSummaryHandler(testhelpers.SummaryFacadeStub{}).BatchCSV, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("Evento-1")) {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestSummaryHandlerCategoriesCSV(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/summaries/categories/export", "/summaries/categories/export",
		NewSummaryHandler(testhelpers.SummaryFacadeStub{}).CategoriesCSV, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd == "" {
		t.Fatal("expected content disposition header")
	}
}

func TestBatchHandlerStart(t *testing.T) {
	body, _ := json.Marshal(dto.StartBatchRequest{Tag: "Evento-1"})
	resp := performRequest(t, http.MethodPost, "/batch", "/batch",
		NewBatchHandler(testhelpers.BatchFacadeStub{}).Start, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var session dto.BatchSessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !session.Active || session.Tag != "Evento-1" {
		t.Fatalf("unexpected response: %+v", session)
	}
}

func TestBatchHandlerStartFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.BatchFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "blank tag", body: []byte(`{"tag":"  "}`), facade: testhelpers.BatchFacadeStub{
			StartFn: func(context.Context, string) error { return domainErrors.ErrEmptyBatchTag },
		}, status: http.StatusBadRequest},
		{name: "offline", body: []byte(`{"tag":"Evento-1"}`), facade: testhelpers.BatchFacadeStub{
			StartFn: func(context.Context, string) error { return domainErrors.ErrStoreOffline },
		}, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/batch", "/batch",
				NewBatchHandler(tt.facade).Start, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestBatchHandlerEnd(t *testing.T) {
	resp := performRequest(t, http.MethodDelete, "/batch", "/batch",
		NewBatchHandler(testhelpers.BatchFacadeStub{}).End, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var session dto.BatchSessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if session.Active {
		t.Fatalf("unexpected response: %+v", session)
	}
}

func TestBatchHandlerActive(t *testing.T) {
	facade := testhelpers.BatchFacadeStub{ActiveFn: func(context.Context) (string, error) {
		return "Evento-1", nil
	}}
	resp := performRequest(t, http.MethodGet, "/batch", "/batch",
		NewBatchHandler(facade).Active, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var session dto.BatchSessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !session.Active || session.Tag != "Evento-1" {
		t.Fatalf("unexpected response: %+v", session)
	}
}

func TestBatchHandlerActiveError(t *testing.T) {
	facade := testhelpers.BatchFacadeStub{ActiveFn: func(context.Context) (string, error) {
		return "", errors.New("redis down")
	}}
	resp := performRequest(t, http.MethodGet, "/batch", "/batch",
		NewBatchHandler(facade).Active, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestConnectivityHandlerState(t *testing.T) {
	facade := testhelpers.ConnectivityFacadeStub{State: model.ConnectivityReconnecting}
	resp := performRequest(t, http.MethodGet, "/connectivity", "/connectivity",
		NewConnectivityHandler(facade).State, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var state dto.ConnectivityResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if state.State != string(model.ConnectivityReconnecting) {
		t.Fatalf("unexpected state %q", state.State)
	}
}
