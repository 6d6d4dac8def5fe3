package connectivity

import "go.uber.org/fx"

// Module exposes the connectivity monitor to fx graphs.
var Module = fx.Provide(NewMonitor)
