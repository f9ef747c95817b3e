package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/RodCinelli/gestao-engparente/internal/observability"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

var (
	// ErrSubscriberClosed tells the hub to drop the subscriber.
	ErrSubscriberClosed = errors.New("subscriber closed")
	// ErrSubscriberBusy means this one event was not accepted; membership stays.
	ErrSubscriberBusy = errors.New("subscriber inbox full")
)

// Subscriber is a group member. Deliver must not block.
type Subscriber interface {
	ID() uuid.UUID
	Deliver(ev DomainEvent) error
}

type group struct {
	mu      sync.Mutex
	members map[uuid.UUID]Subscriber
}

// Hub tracks group membership and fans events out to members.
type Hub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	metrics *observability.Metrics
	groups  map[Group]*group
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:    log.With("component", "SubscriptionHub"),
		groups: make(map[Group]*group),
	}
}

// Instrument records publishes, drops and group sizes on m. Call it before
// the hub is shared.
func (h *Hub) Instrument(m *observability.Metrics) *Hub {
	h.metrics = m
	return h
}

func (h *Hub) group(name Group, create bool) *group {
	h.mu.RLock()
	g, ok := h.groups[name]
	h.mu.RUnlock()
	if ok || !create {
		return g
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if g, ok = h.groups[name]; ok {
		return g
	}
	g = &group{members: make(map[uuid.UUID]Subscriber)}
	h.groups[name] = g
	return g
}

// Join adds s to the group. Joining twice is a no-op.
func (h *Hub) Join(name Group, s Subscriber) {
	if s == nil || name == "" {
		return
	}
	g := h.group(name, true)
	g.mu.Lock()
	g.members[s.ID()] = s
	size := len(g.members)
	g.mu.Unlock()
	h.metrics.SetRealtimeSessions(string(name), size)
	h.log.Debug("session joined group", "group", name, "session_id", s.ID(), "members", size)
}

// Leave removes s from the group. Leaving a group s is not in is a no-op.
func (h *Hub) Leave(name Group, s Subscriber) {
	if s == nil {
		return
	}
	g := h.group(name, false)
	if g == nil {
		return
	}
	g.mu.Lock()
	_, was := g.members[s.ID()]
	delete(g.members, s.ID())
	size := len(g.members)
	g.mu.Unlock()
	if was {
		h.metrics.SetRealtimeSessions(string(name), size)
		h.log.Debug("session left group", "group", name, "session_id", s.ID())
	}
}

// Publish hands ev to every current member of its group. A member that
// reports ErrSubscriberClosed is removed; any other failure only affects
// that member. Publish never fails.
func (h *Hub) Publish(ev DomainEvent) {
	if !ev.Valid() {
		h.log.Warn("dropping invalid domain event", "group", ev.Group, "action", ev.Action)
		return
	}
	h.metrics.IncRealtimeEvent(string(ev.Group), string(ev.Action))
	g := h.group(ev.Group, false)
	if g == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	removed := false
	for id, s := range g.members {
		err := s.Deliver(ev)
		switch {
		case err == nil:
		case errors.Is(err, ErrSubscriberClosed):
			delete(g.members, id)
			removed = true
			h.metrics.IncRealtimeDropped(string(ev.Group), "closed")
			h.log.Debug("dropped closed session", "group", ev.Group, "session_id", id)
		default:
			reason := "error"
			if errors.Is(err, ErrSubscriberBusy) {
				reason = "busy"
			}
			h.metrics.IncRealtimeDropped(string(ev.Group), reason)
			h.log.Warn("event not delivered", "group", ev.Group, "action", ev.Action, "session_id", id, "error", err)
		}
	}
	if removed {
		h.metrics.SetRealtimeSessions(string(ev.Group), len(g.members))
	}
}

// Members reports the current size of a group.
func (h *Hub) Members(name Group) int {
	g := h.group(name, false)
	if g == nil {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}
