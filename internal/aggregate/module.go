package aggregate

import "go.uber.org/fx"

// Module exposes the aggregation engine to fx graphs.
var Module = fx.Provide(NewEngine)
