package event

import "github.com/google/wire"

// ProviderSet provides the process wide event bus.
var ProviderSet = wire.NewSet(NewEventBus)
