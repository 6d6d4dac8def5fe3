package dto

import "time"

// ProductSalesResponse aggregates sold units and revenue for one product.
type ProductSalesResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Category  string `json:"category,omitempty"`
	Quantity  int    `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// BatchSummaryResponse is the settlement view for one batch tag.
type BatchSummaryResponse struct {
	Tag          string                 `json:"tag"`
	OrderCount   int                    `json:"orderCount"`
	TotalRevenue int64                  `json:"totalRevenue"`
	FirstOrderAt *time.Time             `json:"firstOrderAt,omitempty"`
	LastOrderAt  *time.Time             `json:"lastOrderAt,omitempty"`
	Products     []ProductSalesResponse `json:"products"`
}

// CategorySummaryResponse lists per-product sales within one category.
type CategorySummaryResponse struct {
	Category string                 `json:"category"`
	Products []ProductSalesResponse `json:"products"`
}
