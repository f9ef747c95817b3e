package bus

import (
	"context"

	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

// Bus carries domain events between server instances.
type Bus interface {
	Publish(ctx context.Context, ev realtime.DomainEvent) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.DomainEvent)) error
	Close() error
}
