package model

// ProductCategory groups products for the category sales summary.
type ProductCategory string

const (
	CategoryIndividual ProductCategory = "Individual"
	CategoryFamiliar   ProductCategory = "Familiar"
)

// ProductRef is the snapshot of catalog data embedded into an order line.
type ProductRef struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code,omitempty"`
	Price    int64           `json:"price"`
	Category ProductCategory `json:"category"`
}

// Customer identifies the owner of an order and where to notify them.
// Identity management lives outside this service; only the contact data
// needed for notifications is modelled here.
type Customer struct {
	ID       string
	Name     string
	Nickname string
	Email    string
}
