package ws

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tansancola/sceneswitcher/internal/app/ports"
)

var ErrNotOpen = errors.New("transport is not open")

// Conn adapts a websocket session to the line-oriented Transport contract.
// Inbound frames may carry several protocol lines at once; each is delivered
// to OnMessage separately.
type Conn struct {
	dialTimeout time.Duration

	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool
}

func New() *Conn {
	return &Conn{dialTimeout: 10 * time.Second}
}

func (c *Conn) Open(url string, h ports.TransportHandlers) error {
	dialer := websocket.Dialer{HandshakeTimeout: c.dialTimeout}
	conn, resp, err := dialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if h.OnFail != nil {
			h.OnFail(err)
		}
		return err
	}

	c.mu.Lock()
	c.ws = conn
	c.closed = false
	c.mu.Unlock()

	if h.OnOpen != nil {
		h.OnOpen()
	}
	go c.readLoop(conn, h)

	return nil
}

func (c *Conn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil || c.closed {
		return ErrNotOpen
	}

	return c.ws.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil || c.closed {
		return nil
	}
	c.closed = true

	deadline := time.Now().Add(time.Second)
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	return c.ws.Close()
}

func (c *Conn) readLoop(conn *websocket.Conn, h ports.TransportHandlers) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closedByUs := c.closed
			c.mu.Unlock()

			switch {
			case closedByUs || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				if h.OnClose != nil {
					h.OnClose(err)
				}
			default:
				if h.OnFail != nil {
					h.OnFail(err)
				}
			}
			return
		}

		if h.OnMessage == nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\r\n") {
			if line == "" {
				continue
			}
			h.OnMessage(line)
		}
	}
}
