package test

import (
	"context"
	"sync"

	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
	"github.com/adonay-express/orderflow/internal/domain/model"
)

// StatusUpdateCall records one UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// LinesUpdateCall records one UpdateLines invocation.
type LinesUpdateCall struct {
	OrderID string
	Lines   []model.OrderLine
	Total   int64
}

// OrderRepositoryStub stores orders in-memory and tracks writes for tests.
type OrderRepositoryStub struct {
	sync.Mutex

	CreateFn       func(context.Context, model.Order) error
	GetFn          func(context.Context, string) (*model.Order, error)
	ListAllFn      func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
	UpdateLinesFn  func(context.Context, string, []model.OrderLine, int64) error

	Orders        map[string]model.Order
	Created       []model.Order
	StatusUpdates []StatusUpdateCall
	LinesUpdates  []LinesUpdateCall
}

// NewOrderRepositoryStub constructs a stub with initialized storage.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]model.Order)}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

// Create records the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) error {
	s.Lock()
	defer s.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]model.Order)
	}
	s.Orders[order.ID] = order
	s.Created = append(s.Created, order)
	return nil
}

// Get returns the stored order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if o, ok := s.Orders[id]; ok {
		order := o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns every stored order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		result = append(result, o)
	}
	return result, nil
}

// UpdateStatus records the call and applies it to storage.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	s.Lock()
	defer s.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{OrderID: id, Status: status})
	if o, ok := s.Orders[id]; ok {
		o.Status = status
		s.Orders[id] = o
	}
	return nil
}

// UpdateLines records the call and applies it to storage.
func (s *OrderRepositoryStub) UpdateLines(ctx context.Context, id string, lines []model.OrderLine, total int64) error {
	s.Lock()
	defer s.Unlock()
	if s.UpdateLinesFn != nil {
		return s.UpdateLinesFn(ctx, id, lines, total)
	}
	s.LinesUpdates = append(s.LinesUpdates, LinesUpdateCall{OrderID: id, Lines: lines, Total: total})
	if o, ok := s.Orders[id]; ok {
		o.Lines = lines
		o.Total = total
		s.Orders[id] = o
	}
	return nil
}

// CustomerRepositoryStub serves customer contact records from a map.
type CustomerRepositoryStub struct {
	GetFn     func(context.Context, string) (*model.Customer, error)
	Customers map[string]model.Customer
}

// NewCustomerRepositoryStub constructs the stub.
func NewCustomerRepositoryStub(customers ...model.Customer) *CustomerRepositoryStub {
	s := &CustomerRepositoryStub{Customers: make(map[string]model.Customer)}
	for _, c := range customers {
		s.Customers[c.ID] = c
	}
	return s
}

// Get returns the stored customer or not found.
func (s *CustomerRepositoryStub) Get(ctx context.Context, id string) (*model.Customer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if c, ok := s.Customers[id]; ok {
		customer := c
		return &customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// TagStoreStub keeps the batch tag in memory.
type TagStoreStub struct {
	Tag    string
	GetErr error
	SetErr error
	DelErr error
}

// Get returns the stored tag.
func (s *TagStoreStub) Get(ctx context.Context) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	return s.Tag, nil
}

// Set stores the tag.
func (s *TagStoreStub) Set(ctx context.Context, tag string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Tag = tag
	return nil
}

// Clear removes the tag.
func (s *TagStoreStub) Clear(ctx context.Context) error {
	if s.DelErr != nil {
		return s.DelErr
	}
	s.Tag = ""
	return nil
}
