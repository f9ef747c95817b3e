package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

type RealtimeConfig struct {
	AllowedOrigins []string
	SendBuffer     int
	PingInterval   time.Duration
}

// RealtimeHandler upgrades websocket requests and runs one session per
// connection against the channel of the route.
type RealtimeHandler struct {
	log        *logger.Logger
	hub        *realtime.Hub
	employees  *realtime.Channel
	financials *realtime.Channel
	cfg        RealtimeConfig
	upgrader   websocket.Upgrader

	// Sessions end when base is cancelled, so shutdown reaches hijacked
	// connections.
	base context.Context
}

func NewRealtimeHandler(
	base context.Context,
	log *logger.Logger,
	hub *realtime.Hub,
	employees realtime.EmployeesSource,
	financials realtime.FinancialsSource,
	cfg RealtimeConfig,
) *RealtimeHandler {
	if base == nil {
		base = context.Background()
	}
	h := &RealtimeHandler{
		log:        log.With("handler", "RealtimeHandler"),
		hub:        hub,
		employees:  realtime.EmployeesChannel(employees),
		financials: realtime.FinancialsChannel(financials),
		cfg:        cfg,
		base:       base,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// GET /ws/employees/
func (h *RealtimeHandler) Employees(c *gin.Context) {
	h.serve(c, h.employees)
}

// GET /ws/financials/
func (h *RealtimeHandler) Financials(c *gin.Context) {
	h.serve(c, h.financials)
}

func (h *RealtimeHandler) serve(c *gin.Context, ch *realtime.Channel) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader already wrote the error response.
		h.log.Warn("websocket upgrade failed", "group", ch.Group, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()
	stop := context.AfterFunc(c.Request.Context(), cancel)
	defer stop()

	conn := realtime.NewWSConn(ws, h.cfg.PingInterval)
	sess := realtime.NewSession(h.hub, ch, conn, realtime.SessionConfig{
		SendBuffer:   h.cfg.SendBuffer,
		PingInterval: h.cfg.PingInterval,
	}, h.log)
	if err := sess.Run(ctx); err != nil && ctx.Err() == nil {
		h.log.Warn("session ended with error", "session_id", sess.ID(), "error", err)
	}
}

// checkOrigin accepts non-browser clients, same-host pages and the
// configured origins.
func (h *RealtimeHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}
