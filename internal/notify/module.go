package notify

import "go.uber.org/fx"

// Module exposes the notification dispatcher to fx graphs.
var Module = fx.Provide(NewDispatcher)
