package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

// Conn is the framed transport under a session.
type Conn interface {
	// ReadFrame blocks until the next text frame or a transport error.
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
	Ping() error
	Close() error
}

type SessionConfig struct {
	SendBuffer   int
	PingInterval time.Duration
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	return c
}

// Session is one connected client. All writes to the transport happen on
// the goroutine running Run, so frames leave in the order they were
// produced.
type Session struct {
	id      uuid.UUID
	channel *Channel
	hub     *Hub
	conn    Conn
	log     *logger.Logger
	cfg     SessionConfig

	events    chan DomainEvent
	closed    chan struct{}
	closeOnce sync.Once
}

func NewSession(hub *Hub, channel *Channel, conn Conn, cfg SessionConfig, log *logger.Logger) *Session {
	cfg = cfg.withDefaults()
	id := uuid.New()
	return &Session{
		id:      id,
		channel: channel,
		hub:     hub,
		conn:    conn,
		log:     log.With("component", "ClientSession", "session_id", id, "group", channel.Group),
		cfg:     cfg,
		events:  make(chan DomainEvent, cfg.SendBuffer),
		closed:  make(chan struct{}),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// Deliver queues ev for this session without blocking.
func (s *Session) Deliver(ev DomainEvent) error {
	select {
	case <-s.closed:
		return ErrSubscriberClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.closed:
		return ErrSubscriberClosed
	default:
		return ErrSubscriberBusy
	}
}

// Run joins the group, pushes the initial snapshot and serves the session
// until the client disconnects or ctx ends. The session is closed on return.
func (s *Session) Run(ctx context.Context) error {
	s.hub.Join(s.channel.Group, s)
	defer s.Close()
	s.log.Info("session opened")

	if err := s.pushView(ctx, s.channel.Initial); err != nil {
		return err
	}

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go s.readLoop(frames, readErr)

	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			s.log.Debug("client disconnected", "error", err)
			return nil
		case raw := <-frames:
			if err := s.handleFrame(ctx, raw); err != nil {
				return err
			}
		case ev := <-s.events:
			if err := s.handleEvent(ctx, ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := s.conn.Ping(); err != nil {
				s.log.Debug("ping failed", "error", err)
				return nil
			}
		}
	}
}

// Close leaves the group and releases the transport. Safe to call twice.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.hub.Leave(s.channel.Group, s)
		if err := s.conn.Close(); err != nil {
			s.log.Debug("close transport", "error", err)
		}
		s.log.Info("session closed")
	})
}

func (s *Session) readLoop(frames chan<- []byte, readErr chan<- error) {
	for {
		raw, err := s.conn.ReadFrame()
		if err != nil {
			readErr <- err
			return
		}
		select {
		case frames <- raw:
		case <-s.closed:
			return
		}
	}
}

// handleFrame answers one client request. Anything that is not a JSON
// object (including null and arrays) gets the invalid JSON error; an object
// whose type is missing, not a string, or unknown is ignored.
func (s *Session) handleFrame(ctx context.Context, raw []byte) error {
	in, ok := parseInbound(raw)
	if !ok {
		return s.write(ErrorFrame{Type: TypeError, Message: MsgInvalidJSON})
	}
	view, ok := s.channel.Requests[in.Type]
	if !ok {
		s.log.Debug("ignoring unknown request", "type", in.Type)
		return nil
	}
	return s.pushView(ctx, view)
}

func parseInbound(raw []byte) (inboundFrame, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return inboundFrame{}, false
	}
	var in inboundFrame
	if t, ok := obj["type"]; ok {
		_ = json.Unmarshal(t, &in.Type)
	}
	return in, true
}

func (s *Session) handleEvent(ctx context.Context, ev DomainEvent) error {
	if err := s.write(UpdateFrame{Type: TypeUpdate, Message: ev.Message, Action: ev.Action}); err != nil {
		return err
	}
	views, ok := s.channel.RefreshFor(ev.Action)
	if !ok {
		s.log.Warn("no refresh policy for action", "action", ev.Action)
		return nil
	}
	for _, v := range views {
		if err := s.pushView(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// pushView loads and sends one snapshot. A load failure is reported to the
// client and does not end the session; only transport errors are returned.
func (s *Session) pushView(ctx context.Context, v View) error {
	data, err := v.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("view load failed", "view", v.Type, "error", err)
		return s.write(ServerError(err))
	}
	return s.write(DataFrame{Type: v.Type, Data: data})
}

func (s *Session) write(frame any) error {
	raw, err := json.Marshal(frame)
	if err != nil {
		s.log.Error("marshal frame", "error", err)
		return s.conn.WriteFrame(mustMarshal(ServerError(err)))
	}
	return s.conn.WriteFrame(raw)
}

func mustMarshal(v any) []byte {
	raw, _ := json.Marshal(v)
	return raw
}
