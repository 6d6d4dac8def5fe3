package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrTerminalStatus = errors.New("order is in a terminal status")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrEmptyBatchTag  = errors.New("batch tag must not be empty")
	ErrNoLines        = errors.New("order must contain at least one line")
	ErrStoreOffline   = errors.New("store is offline")
)
