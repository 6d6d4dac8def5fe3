package dto

import "time"

// ProductRef mirrors the catalog snapshot embedded in an order line.
type ProductRef struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code,omitempty"`
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
}

// OrderLine is one product plus quantity in requests and responses.
type OrderLine struct {
	Product  ProductRef `json:"product" binding:"required"`
	Quantity int        `json:"quantity"`
}

// SubmitOrderRequest registers a new order.
type SubmitOrderRequest struct {
	CustomerID  string      `json:"customerId" binding:"required"`
	Nickname    string      `json:"nickname"`
	Lines       []OrderLine `json:"lines" binding:"required"`
	StaffPlaced bool        `json:"staffPlaced"`
}

// ChangeStatusRequest moves an order to a new lifecycle status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Force  bool   `json:"force"`
}

// ReviseLinesRequest replaces an order's lines.
type ReviseLinesRequest struct {
	Lines []OrderLine `json:"lines" binding:"required"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	CustomerID  string      `json:"customerId"`
	Nickname    string      `json:"nickname,omitempty"`
	Lines       []OrderLine `json:"lines"`
	Status      string      `json:"status"`
	PlacedAt    time.Time   `json:"placedAt"`
	Total       int64       `json:"total"`
	BatchTag    string      `json:"batchTag,omitempty"`
	StaffPlaced bool        `json:"staffPlaced,omitempty"`
}

// NotificationResponse reports the outcome of the customer notification tied
// to a status change.
type NotificationResponse struct {
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TransitionResponse is the result of a status change request.
type TransitionResponse struct {
	Order        OrderResponse         `json:"order"`
	Changed      bool                  `json:"changed"`
	Notification *NotificationResponse `json:"notification,omitempty"`
}

// MonthGroupResponse is one calendar month of archived orders.
type MonthGroupResponse struct {
	Label  string          `json:"label"`
	Orders []OrderResponse `json:"orders"`
}
