package chat

import (
	"sync"

	"github.com/tansancola/sceneswitcher/internal/app/adapters/twitch/irc"
	"github.com/tansancola/sceneswitcher/internal/app/ports"
	"github.com/tansancola/sceneswitcher/pkg/logger"
)

// The registry deduplicates live connections by identity. It never owns an
// instance: ownership sits with the handles, and the last release tears the
// instance down and removes the map entry.

type chatKey struct {
	channel string
	token   string
}

var (
	chatMu  sync.Mutex
	chatMap = make(map[chatKey]*Connection)
)

// GetChatConnection returns an owning handle to the process-wide connection
// for the given (channel, credential) identity, creating the connection when
// no live instance exists.
func GetChatConnection(log logger.Logger, token, channel string, opts Options) *Handle {
	key := chatKey{channel: irc.NormalizeChannel(channel), token: token}

	chatMu.Lock()
	defer chatMu.Unlock()

	c := chatMap[key]
	if c == nil {
		c = newConnection(log, token, channel, opts)
		chatMap[key] = c
	}
	c.refs++

	return &Handle{conn: c, key: key}
}

// Handle is one owning reference to a shared connection. Releasing the last
// handle stops the background loop and closes the transport.
type Handle struct {
	conn *Connection
	key  chatKey
	once sync.Once
}

var _ ports.ChatPort = (*Handle)(nil)

func (h *Handle) Connect() error {
	return h.conn.Connect()
}

func (h *Handle) SendChatMessage(text string) error {
	return h.conn.SendChatMessage(text)
}

func (h *Handle) RegisterForMessages() ports.MessageReader {
	return h.conn.RegisterForMessages()
}

func (h *Handle) RegisterForWhispers() ports.MessageReader {
	return h.conn.RegisterForWhispers()
}

func (h *Handle) State() State {
	return h.conn.State()
}

func (h *Handle) Release() {
	h.once.Do(func() {
		chatMu.Lock()
		h.conn.refs--
		last := h.conn.refs == 0
		if last {
			delete(chatMap, h.key)
		}
		chatMu.Unlock()

		if last {
			h.conn.shutdown()
		}
	})
}
