package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tansancola/sceneswitcher/internal/app/adapters/metrics"
	"github.com/tansancola/sceneswitcher/internal/app/adapters/transport/ws"
	"github.com/tansancola/sceneswitcher/internal/app/adapters/twitch/irc"
	"github.com/tansancola/sceneswitcher/internal/app/infrastructure/dispatch"
	"github.com/tansancola/sceneswitcher/internal/app/ports"
	"github.com/tansancola/sceneswitcher/pkg/logger"
)

const DefaultServerURL = "wss://irc-ws.chat.twitch.tv:443"

type Options struct {
	URL              string
	Nick             string
	HandshakeTimeout time.Duration
	BufferCapacity   int
	ReconnectEvery   time.Duration
	TransportFactory func() ports.Transport
}

func (o *Options) withDefaults() {
	if o.URL == "" {
		o.URL = DefaultServerURL
	}
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = 10 * time.Second
	}
	if o.BufferCapacity <= 0 {
		o.BufferCapacity = dispatch.DefaultCapacity
	}
	if o.ReconnectEvery <= 0 {
		o.ReconnectEvery = 5 * time.Second
	}
	if o.TransportFactory == nil {
		o.TransportFactory = func() ports.Transport { return ws.New() }
	}
}

// Connection drives one chat session for a (channel, credential) identity.
// All transport I/O and state transitions run on a single background
// goroutine; public entry points only touch state under the mutex and wake
// waiters through the condition variable.
type Connection struct {
	log  logger.Logger
	opts Options

	token      string
	channel    string
	channelTag string
	nick       string

	ctx    context.Context
	cancel context.CancelFunc

	limiter *rate.Limiter

	messages *dispatch.Dispatcher[irc.Message]
	whispers *dispatch.Dispatcher[irc.Message]

	mu            sync.Mutex
	cond          *sync.Cond
	state         State
	authenticated bool
	authErr       error
	stopped       bool
	started       bool
	transport     ports.Transport
	outbound      chan string

	// refs is guarded by the registry mutex, not c.mu.
	refs int
}

func newConnection(log logger.Logger, token, channel string, opts Options) *Connection {
	opts.withDefaults()

	channelTag := irc.NormalizeChannel(channel)
	c := &Connection{
		log:        logger.NewPrefixedLogger(log, strings.TrimPrefix(channelTag, "#")),
		opts:       opts,
		token:      token,
		channel:    strings.TrimPrefix(channelTag, "#"),
		channelTag: channelTag,
		nick:       strings.ToLower(opts.Nick),
		limiter:    rate.NewLimiter(rate.Every(opts.ReconnectEvery), 1),
		messages:   dispatch.NewDispatcher[irc.Message](opts.BufferCapacity),
		whispers:   dispatch.NewDispatcher[irc.Message](opts.BufferCapacity),
	}
	c.cond = sync.NewCond(&c.mu)
	c.ctx, c.cancel = context.WithCancel(context.Background())

	return c
}

// Connect starts the background session loop on first use and blocks until
// the connection is established, the handshake timeout elapses, or the
// connection is stopped.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return ErrStopped
	}

	if !c.started {
		c.started = true
		go c.run()
	}

	c.waitLocked(func() bool { return c.state == Connected }, c.opts.HandshakeTimeout)
	switch {
	case c.state == Connected:
		return nil
	case c.stopped:
		return ErrStopped
	}
	return ErrHandshakeTimeout
}

// SendChatMessage serializes text as a channel message and submits it to the
// background writer. It fails fast while the session is not connected.
func (c *Connection) SendChatMessage(text string) error {
	c.mu.Lock()
	outbound := c.outbound
	ready := c.state == Connected
	c.mu.Unlock()

	if !ready || outbound == nil {
		return ErrNotConnected
	}

	select {
	case outbound <- irc.SerializePrivmsg(c.channel, text):
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (c *Connection) RegisterForMessages() ports.MessageReader {
	return c.messages.Register()
}

func (c *Connection) RegisterForWhispers() ports.MessageReader {
	return c.whispers.Register()
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// run is the connection's background loop: one session per iteration, with
// reconnects paced by the rate limiter until the stop flag is set.
func (c *Connection) run() {
	for {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return
		}
		c.authenticated = false
		c.authErr = nil
		c.setStateLocked(Connecting)
		c.mu.Unlock()

		if err := c.session(); err != nil {
			c.log.Warn("Chat session ended", slog.String("error", err.Error()))
		}

		c.mu.Lock()
		c.authenticated = false
		c.setStateLocked(Disconnected)
		stopped := c.stopped
		c.mu.Unlock()

		if stopped {
			return
		}

		metrics.ReconnectsTotal.WithLabelValues(c.channel).Inc()
		if err := c.limiter.Wait(c.ctx); err != nil {
			return
		}
	}
}

func (c *Connection) session() error {
	t := c.opts.TransportFactory()
	outbound := make(chan string, 64)
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	h := ports.TransportHandlers{
		OnMessage: func(line string) { c.handleLine(outbound, line) },
		OnClose:   func(err error) { finish(err) },
		OnFail: func(err error) {
			if err == nil {
				err = errors.New("transport failure")
			}
			finish(err)
		},
	}

	started := time.Now()
	if err := t.Open(c.opts.URL, h); err != nil {
		return fmt.Errorf("open transport: %w", err)
	}

	c.mu.Lock()
	c.transport = t
	c.outbound = outbound
	c.mu.Unlock()

	defer func() {
		_ = t.Close()
		c.mu.Lock()
		c.transport = nil
		c.outbound = nil
		c.mu.Unlock()
	}()

	sctx, scancel := context.WithCancel(c.ctx)
	defer scancel()

	// single writer: every outbound line leaves through this goroutine
	go func() {
		for {
			select {
			case <-sctx.Done():
				return
			case line := <-outbound:
				if err := t.Send(line); err != nil {
					finish(fmt.Errorf("send: %w", err))
					return
				}
			}
		}
	}()

	outbound <- irc.SerializeCapReq("twitch.tv/tags", "twitch.tv/commands", "twitch.tv/membership")
	outbound <- irc.SerializePass(c.token)
	outbound <- irc.SerializeNick(c.nick)

	c.mu.Lock()
	c.waitLocked(func() bool { return c.authenticated || c.authErr != nil }, c.opts.HandshakeTimeout)
	authenticated, authErr := c.authenticated, c.authErr
	c.mu.Unlock()

	if authErr != nil {
		return fmt.Errorf("authenticate: %w", authErr)
	}
	if !authenticated {
		return fmt.Errorf("authenticate: %w", ErrHandshakeTimeout)
	}

	outbound <- irc.SerializeJoin(c.channel)

	c.mu.Lock()
	c.waitLocked(func() bool { return c.state == Connected }, c.opts.HandshakeTimeout)
	joined := c.state == Connected
	c.mu.Unlock()

	if !joined {
		return fmt.Errorf("join %s: %w", c.channelTag, ErrHandshakeTimeout)
	}

	metrics.HandshakeDuration.Observe(time.Since(started).Seconds())
	c.log.Info("Joined chat")

	select {
	case err := <-done:
		return err
	case <-c.ctx.Done():
		return nil
	}
}

func (c *Connection) handleLine(outbound chan<- string, line string) {
	msg := irc.Parse(line)

	switch msg.Command.Name {
	// keep-alive
	case "PING":
		select {
		case outbound <- irc.SerializePong(msg.Message):
		default:
		}
	case "001":
		c.log.Debug("Authentication acknowledged")
		c.mu.Lock()
		if c.state == Connecting {
			c.authenticated = true
			c.cond.Broadcast()
		}
		c.mu.Unlock()
	case "NOTICE":
		c.handleNotice(msg)
	case "JOIN":
		c.handleJoin(msg)
	case "PRIVMSG":
		c.handleNewMessage(msg)
	case "WHISPER":
		c.handleWhisper(msg)
	case "RECONNECT":
		c.handleReconnect()
	default:
		c.log.Trace("Unhandled command", slog.String("command", msg.Command.Name))
	}
}

func (c *Connection) handleNotice(msg irc.Message) {
	switch {
	case strings.Contains(msg.Message, "Login authentication failed"),
		strings.Contains(msg.Message, "Improperly formatted auth"):
		c.log.Error("Authentication rejected", nil, slog.String("notice", msg.Message))
		c.mu.Lock()
		c.authErr = ErrAuthFailed
		c.cond.Broadcast()
		c.mu.Unlock()
	default:
		c.log.Debug("Server notice", slog.String("notice", msg.Message))
	}
}

func (c *Connection) handleJoin(msg irc.Message) {
	// only our own echo confirms the join; other nicks are chatters
	if !strings.EqualFold(msg.Source.Nick, c.nick) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || !c.authenticated || c.state != Connecting {
		return
	}
	c.setStateLocked(Connected)
}

func (c *Connection) handleNewMessage(msg irc.Message) {
	if msg.Command.Params.Kind != irc.ParamText ||
		!strings.EqualFold(msg.Command.Params.Text, c.channelTag) {
		return
	}

	dropped := c.messages.Dispatch(msg)
	metrics.MessagesDispatched.WithLabelValues(c.channel, "message").Inc()
	if dropped > 0 {
		metrics.MessagesDropped.WithLabelValues(c.channel, "message").Add(float64(dropped))
	}
}

func (c *Connection) handleWhisper(msg irc.Message) {
	dropped := c.whispers.Dispatch(msg)
	metrics.MessagesDispatched.WithLabelValues(c.channel, "whisper").Inc()
	if dropped > 0 {
		metrics.MessagesDropped.WithLabelValues(c.channel, "whisper").Add(float64(dropped))
	}
}

func (c *Connection) handleReconnect() {
	c.log.Info("Server requested reconnect")

	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()

	if t != nil {
		_ = t.Close()
	}
}

// shutdown is called by the registry when the last owning handle releases
// the connection.
func (c *Connection) shutdown() {
	c.mu.Lock()
	c.stopped = true
	t := c.transport
	c.cond.Broadcast()
	c.mu.Unlock()

	c.cancel()
	if t != nil {
		_ = t.Close()
	}
}

func (c *Connection) setStateLocked(s State) {
	if c.state == s {
		return
	}

	c.log.Debug("State change", slog.String("from", c.state.String()), slog.String("to", s.String()))
	c.state = s
	metrics.ConnectionState.WithLabelValues(c.channel).Set(float64(s))
	c.cond.Broadcast()
}

// waitLocked blocks until pred holds, the timeout elapses, or the stop flag
// is set. The caller must hold c.mu.
func (c *Connection) waitLocked(pred func() bool, timeout time.Duration) {
	expired := false
	timer := time.AfterFunc(timeout, func() {
		c.mu.Lock()
		expired = true
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()

	for !pred() && !expired && !c.stopped {
		c.cond.Wait()
	}
}
