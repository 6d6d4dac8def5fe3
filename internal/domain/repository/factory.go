package repository

// Factory produces domain repositories backed by a single store.
type Factory interface {
	Orders() OrderRepository
	Customers() CustomerRepository
}
