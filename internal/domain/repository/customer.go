package repository

import (
	"context"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// CustomerRepository exposes read access to customer contact records.
// The customer collection itself is maintained by the identity system,
// outside this service.
type CustomerRepository interface {
	Get(ctx context.Context, id string) (*model.Customer, error)
}
