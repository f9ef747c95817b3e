package realtime

import (
	"context"

	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

// Notifier announces a committed change. Implementations must return
// promptly and never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, group Group, action Action, message string)
}

// HubNotifier publishes straight into the in-process hub.
type HubNotifier struct {
	hub *Hub
	log *logger.Logger
}

func NewHubNotifier(hub *Hub, log *logger.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log.With("component", "ChangeNotifier")}
}

func (n *HubNotifier) Notify(_ context.Context, group Group, action Action, message string) {
	n.log.Debug("notify", "group", group, "action", action)
	n.hub.Publish(DomainEvent{Group: group, Action: action, Message: message})
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Group, Action, string) {}
