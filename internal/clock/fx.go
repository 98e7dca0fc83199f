package clock

import "go.uber.org/fx"

// Module provides the wall clock. Tests build services directly with
// a FixedClock instead.
var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
