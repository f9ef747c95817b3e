package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

type fakeConn struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte, 8),
		out:    make(chan []byte, 64),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadFrame() ([]byte, error) {
	select {
	case raw := <-c.in:
		return raw, nil
	case <-c.closed:
		return nil, io.EOF
	}
}

func (c *fakeConn) WriteFrame(data []byte) error {
	select {
	case <-c.closed:
		return io.ErrClosedPipe
	default:
	}
	c.out <- data
	return nil
}

func (c *fakeConn) Ping() error { return nil }

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

type frame struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Action  string          `json:"action"`
	Data    json.RawMessage `json:"data"`
}

func recvFrame(t *testing.T, c *fakeConn, timeout time.Duration) frame {
	t.Helper()
	select {
	case raw := <-c.out:
		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("bad frame %s: %v", raw, err)
		}
		return f
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for frame")
	}
	return frame{}
}

func expectTypes(t *testing.T, c *fakeConn, types ...string) []frame {
	t.Helper()
	out := make([]frame, 0, len(types))
	for i, want := range types {
		f := recvFrame(t, c, time.Second)
		if f.Type != want {
			t.Fatalf("frame %d: want=%s got=%s (%s)", i, want, f.Type, f.Message)
		}
		out = append(out, f)
	}
	return out
}

func expectSilence(t *testing.T, c *fakeConn, d time.Duration) {
	t.Helper()
	select {
	case raw := <-c.out:
		t.Fatalf("unexpected frame: %s", raw)
	case <-time.After(d):
	}
}

type stubEmployees struct {
	mu           sync.Mutex
	dashboardErr error
}

func (s *stubEmployees) InitialData(context.Context) (any, error) {
	return map[string]any{"constructions": []any{}, "departments": []any{}}, nil
}
func (s *stubEmployees) Employees(context.Context) (any, error) { return []any{}, nil }
func (s *stubEmployees) Dashboard(context.Context) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dashboardErr != nil {
		return nil, s.dashboardErr
	}
	return map[string]any{"total_employees": 0}, nil
}

func startSession(t *testing.T, hub *Hub, ch *Channel) (*Session, *fakeConn, <-chan error) {
	t.Helper()
	conn := newFakeConn()
	s := NewSession(hub, ch, conn, SessionConfig{SendBuffer: 8, PingInterval: time.Hour}, mustTestLogger(t))
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	expectTypes(t, conn, TypeInitialData)
	return s, conn, done
}

func TestSessionOpenJoinsAndPushesInitialData(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	_, conn, _ := startSession(t, hub, EmployeesChannel(&stubEmployees{}))
	defer conn.Close()

	if n := hub.Members(GroupEmployees); n != 1 {
		t.Fatalf("members: want=1 got=%d", n)
	}
}

func TestSessionRequests(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	src := &stubEmployees{}
	_, conn, _ := startSession(t, hub, EmployeesChannel(src))
	defer conn.Close()

	conn.in <- []byte(`{"type":"get_dashboard"}`)
	expectTypes(t, conn, TypeDashboardUpdate)

	conn.in <- []byte(`{"type":"get_employees"}`)
	expectTypes(t, conn, TypeEmployeesUpdate)

	conn.in <- []byte(`{not json`)
	f := expectTypes(t, conn, TypeError)[0]
	if f.Message != "Invalid JSON format" {
		t.Fatalf("malformed frame reply: %q", f.Message)
	}

	src.mu.Lock()
	src.dashboardErr = errors.New("database unavailable")
	src.mu.Unlock()
	conn.in <- []byte(`{"type":"get_dashboard"}`)
	f = expectTypes(t, conn, TypeError)[0]
	if f.Message != "Server error: database unavailable" {
		t.Fatalf("failure reply: %q", f.Message)
	}

	// still open
	conn.in <- []byte(`{"type":"get_employees"}`)
	expectTypes(t, conn, TypeEmployeesUpdate)
}

func TestSessionNonObjectFrames(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	_, conn, _ := startSession(t, hub, EmployeesChannel(&stubEmployees{}))
	defer conn.Close()

	for _, raw := range []string{`null`, `[]`, `[1]`, `"get_dashboard"`, `42`} {
		conn.in <- []byte(raw)
		f := expectTypes(t, conn, TypeError)[0]
		if f.Message != MsgInvalidJSON {
			t.Fatalf("%s: reply %q", raw, f.Message)
		}
	}

	// objects with a missing or non-string type are unknown requests
	conn.in <- []byte(`{"type":1}`)
	conn.in <- []byte(`{}`)
	expectSilence(t, conn, 100*time.Millisecond)

	conn.in <- []byte(`{"type":"get_dashboard"}`)
	expectTypes(t, conn, TypeDashboardUpdate)
}

func TestSessionRefreshPolicies(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	_, conn, _ := startSession(t, hub, EmployeesChannel(&stubEmployees{}))
	defer conn.Close()

	tests := []struct {
		action Action
		want   []string
	}{
		{ActionEmployeeCreated, []string{TypeUpdate, TypeEmployeesUpdate, TypeDashboardUpdate}},
		{ActionPaymentsReset, []string{TypeUpdate, TypeEmployeesUpdate, TypeDashboardUpdate}},
		{ActionConstructionCreated, []string{TypeUpdate, TypeInitialData}},
		{ActionDepartmentUpdate, []string{TypeUpdate, TypeInitialData}},
	}
	for _, tt := range tests {
		hub.Publish(DomainEvent{Group: GroupEmployees, Action: tt.action, Message: "changed"})
		frames := expectTypes(t, conn, tt.want...)
		if frames[0].Action != string(tt.action) || frames[0].Message != "changed" {
			t.Fatalf("%s: unexpected notice %+v", tt.action, frames[0])
		}
	}
}

func TestSessionUnknownActionSendsNoticeOnly(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	_, conn, _ := startSession(t, hub, EmployeesChannel(&stubEmployees{}))
	defer conn.Close()

	hub.Publish(DomainEvent{Group: GroupEmployees, Action: "payment_status_changed", Message: "legacy"})
	expectTypes(t, conn, TypeUpdate)

	conn.in <- []byte(`{"type":"get_employees"}`)
	expectTypes(t, conn, TypeEmployeesUpdate)
}

func TestSessionDisconnectLeavesGroup(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	s, conn, done := startSession(t, hub, EmployeesChannel(&stubEmployees{}))

	conn.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after disconnect: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("session did not stop after disconnect")
	}

	if n := hub.Members(GroupEmployees); n != 0 {
		t.Fatalf("members after disconnect: want=0 got=%d", n)
	}
	if err := s.Deliver(DomainEvent{Group: GroupEmployees, Action: ActionEmployeeCreated}); !errors.Is(err, ErrSubscriberClosed) {
		t.Fatalf("Deliver after close: want ErrSubscriberClosed got %v", err)
	}
	hub.Publish(DomainEvent{Group: GroupEmployees, Action: ActionEmployeeCreated, Message: "late"})
	expectSilence(t, conn, 100*time.Millisecond)
}

func TestSessionFullInboxDropsOnlyForThatSession(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	conn := newFakeConn()
	s := NewSession(hub, EmployeesChannel(&stubEmployees{}), conn, SessionConfig{SendBuffer: 1}, mustTestLogger(t))

	ev := DomainEvent{Group: GroupEmployees, Action: ActionEmployeeUpdated, Message: "x"}
	if err := s.Deliver(ev); err != nil {
		t.Fatalf("first Deliver: %v", err)
	}
	if err := s.Deliver(ev); !errors.Is(err, ErrSubscriberBusy) {
		t.Fatalf("second Deliver: want ErrSubscriberBusy got %v", err)
	}
	s.Close()
	s.Close()
}

func TestSessionContextCancelStops(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	conn := newFakeConn()
	s := NewSession(hub, EmployeesChannel(&stubEmployees{}), conn, SessionConfig{}, mustTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	expectTypes(t, conn, TypeInitialData)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("session did not stop on cancel")
	}
	if n := hub.Members(GroupEmployees); n != 0 {
		t.Fatalf("members after cancel: want=0 got=%d", n)
	}
}
