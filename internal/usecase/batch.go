package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/adonay-express/orderflow/internal/domain/errors"
)

// TagStore persists the active batch tag in a durable key.
type TagStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, tag string) error
	Clear(ctx context.Context) error
}

// BatchSessionUseCase tracks the single active batch tag new orders are
// stamped with. At most one batch is active at a time.
type BatchSessionUseCase struct {
	store TagStore
}

// NewBatchSessionUseCase constructs BatchSessionUseCase.
func NewBatchSessionUseCase(store TagStore) *BatchSessionUseCase {
	return &BatchSessionUseCase{store: store}
}

// Start activates a batch. Blank tags are rejected before touching the store.
func (u *BatchSessionUseCase) Start(ctx context.Context, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domainErrors.ErrEmptyBatchTag
	}
	return u.store.Set(ctx, tag)
}

// End clears the active batch.
func (u *BatchSessionUseCase) End(ctx context.Context) error {
	return u.store.Clear(ctx)
}

// Active returns the current batch tag; empty string means no batch is
// active and submissions simply omit the field.
func (u *BatchSessionUseCase) Active(ctx context.Context) (string, error) {
	return u.store.Get(ctx)
}
