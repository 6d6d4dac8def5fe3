package model

import "time"

// ProductSales aggregates sold units and revenue for a single product.
type ProductSales struct {
	ProductID string
	Name      string
	Code      string
	Category  ProductCategory
	Quantity  int
	Revenue   int64
}

// BatchSummary is the derived settlement view for one batch tag. Revenue,
// order count and product aggregates cover counted orders only; the observed
// time span covers every order carrying the tag.
type BatchSummary struct {
	Tag          string
	OrderCount   int
	TotalRevenue int64
	FirstOrderAt time.Time
	LastOrderAt  time.Time
	Products     []ProductSales
}

// CategorySummary lists per-product sales within one catalog category,
// built from counted orders only.
type CategorySummary struct {
	Category ProductCategory
	Products []ProductSales
}

// MonthGroup is one calendar month of archived orders, newest first.
type MonthGroup struct {
	Label  string
	Orders []Order
}
