package model

import (
	"strings"
	"time"
)

// OrderStatus describes the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusAccepted       OrderStatus = "ACCEPTED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusReceived, OrderStatusAccepted,
		OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions or edits.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Counted reports whether orders in this status represent confirmed,
// revenue-bearing sales for aggregation purposes.
func (s OrderStatus) Counted() bool {
	switch s {
	case OrderStatusAccepted, OrderStatusOutForDelivery, OrderStatusCompleted:
		return true
	}
	return false
}

// Archived reports whether orders in this status belong to the archive view
// rather than the active-operations view.
func (s OrderStatus) Archived() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Notifiable reports whether a transition into this status triggers a
// customer notification.
func (s OrderStatus) Notifiable() bool {
	switch s {
	case OrderStatusReceived, OrderStatusAccepted, OrderStatusOutForDelivery, OrderStatusCompleted:
		return true
	}
	return false
}

// OrderLine is a snapshotted copy of a product plus a quantity. The snapshot
// keeps historical totals stable when the catalog changes later.
type OrderLine struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (l OrderLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Order describes a customer purchase tracked through the fulfillment
// lifecycle. The ID doubles as the user-facing order number.
type Order struct {
	ID               string
	CustomerID       string
	CustomerNickname string
	Lines            []OrderLine
	Status           OrderStatus
	PlacedAt         time.Time
	Total            int64
	BatchTag         string // empty means the order was placed outside any batch
	StaffPlaced      bool
}

// ShortNumber returns the display form of the order number: the last six
// characters of the ID, uppercased.
func (o Order) ShortNumber() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// LinesTotal sums unit price times quantity over all lines.
func LinesTotal(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// NormalizeLines drops lines whose quantity fell to zero or below. Lines are
// never persisted with a non-positive quantity.
func NormalizeLines(lines []OrderLine) []OrderLine {
	result := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			result = append(result, l)
		}
	}
	return result
}
