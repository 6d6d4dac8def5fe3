package stream

import (
	"time"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// Snapshot carries the full current order collection as observed at one
// instant. Consumers rebuild their derived views from the whole set rather
// than patching increments.
type Snapshot struct {
	Orders []model.Order
	At     time.Time
}

// Source emits a Snapshot on every observed change of the order collection.
// Subscribe returns a receive channel and a cancel function; cancelling
// detaches the subscriber and closes the channel.
type Source interface {
	Subscribe() (<-chan Snapshot, func())
}
