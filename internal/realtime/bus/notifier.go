package bus

import (
	"context"
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

const publishTimeout = 2 * time.Second

// Notifier publishes through the bus so every instance's forwarder feeds
// its own hub. When the bus publish fails the event goes to the local hub
// instead.
type Notifier struct {
	bus   Bus
	local *realtime.Hub
	log   *logger.Logger
}

func NewNotifier(b Bus, local *realtime.Hub, log *logger.Logger) *Notifier {
	return &Notifier{bus: b, local: local, log: log.With("component", "BusNotifier")}
}

func (n *Notifier) Notify(ctx context.Context, group realtime.Group, action realtime.Action, message string) {
	ev := realtime.DomainEvent{Group: group, Action: action, Message: message}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.bus.Publish(pubCtx, ev); err != nil {
		n.log.Warn("bus publish failed; delivering locally", "group", group, "action", action, "error", err)
		n.local.Publish(ev)
	}
}
