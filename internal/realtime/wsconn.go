package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxFrameBytes = 64 * 1024
	writeWait     = 10 * time.Second
)

type wsConn struct {
	ws       *websocket.Conn
	pongWait time.Duration
	mu       sync.Mutex
}

// NewWSConn adapts a gorilla connection. The read deadline is pushed out on
// every pong; pingInterval must be shorter than pongWait.
func NewWSConn(ws *websocket.Conn, pingInterval time.Duration) Conn {
	pongWait := pingInterval * 2
	if pongWait <= 0 {
		pongWait = 60 * time.Second
	}
	c := &wsConn{ws: ws, pongWait: pongWait}
	ws.SetReadLimit(maxFrameBytes)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	return c
}

func (c *wsConn) ReadFrame() ([]byte, error) {
	for {
		kind, raw, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
		if kind == websocket.TextMessage || kind == websocket.BinaryMessage {
			return raw, nil
		}
	}
}

func (c *wsConn) WriteFrame(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return c.ws.Close()
}
