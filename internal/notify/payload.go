package notify

import (
	"fmt"
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// Item is one order line flattened for notification content.
type Item struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

// Payload carries the order facts a notification is generated from.
type Payload struct {
	OrderNumber   string            `json:"orderNumber"`
	NewStatus     model.OrderStatus `json:"newStatus"`
	Items         []Item            `json:"items"`
	Total         int64             `json:"total"`
	CustomerEmail string            `json:"customerEmail"`
	Date          string            `json:"date"`
}

// Kind selects the content template for a status. Every status maps to
// exactly one kind; anything unexpected falls through to the generic update,
// even though callers should already have filtered by the notify subset.
type Kind string

const (
	KindReceived       Kind = "received"
	KindAccepted       Kind = "accepted"
	KindOutForDelivery Kind = "out_for_delivery"
	KindCompleted      Kind = "completed"
	KindGeneric        Kind = "generic"
)

// KindFor maps a target status to its content kind.
func KindFor(status model.OrderStatus) Kind {
	switch status {
	case model.OrderStatusReceived:
		return KindReceived
	case model.OrderStatusAccepted:
		return KindAccepted
	case model.OrderStatusOutForDelivery:
		return KindOutForDelivery
	case model.OrderStatusCompleted:
		return KindCompleted
	default:
		return KindGeneric
	}
}

// spanishLongMonths matches the es-CL long date format used in customer mail.
var spanishLongMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatOrderDate renders the order date the way customers see it, e.g.
// "28 de agosto".
func FormatOrderDate(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), spanishLongMonths[t.Month()-1])
}

// BuildPayload flattens a persisted order and the owner's contact address
// into notification facts for the given target status.
func BuildPayload(order model.Order, customer model.Customer, status model.OrderStatus) Payload {
	items := make([]Item, 0, len(order.Lines))
	for _, l := range order.Lines {
		items = append(items, Item{
			Name:     l.Product.Name,
			Price:    l.Product.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return Payload{
		OrderNumber:   order.ShortNumber(),
		NewStatus:     status,
		Items:         items,
		Total:         order.Total,
		CustomerEmail: customer.Email,
		Date:          FormatOrderDate(order.PlacedAt),
	}
}
