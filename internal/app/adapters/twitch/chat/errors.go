package chat

import "errors"

var (
	// ErrNotConnected is returned by SendChatMessage while the session is
	// not in the connected state. The caller decides whether to retry.
	ErrNotConnected = errors.New("chat connection is not ready")

	// ErrHandshakeTimeout covers both a missing authentication
	// acknowledgement and a missing join acknowledgement.
	ErrHandshakeTimeout = errors.New("chat handshake timed out")

	ErrAuthFailed    = errors.New("chat authentication rejected")
	ErrStopped       = errors.New("chat connection is stopped")
	ErrSendQueueFull = errors.New("chat send queue is full")
)
