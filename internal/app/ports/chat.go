package ports

import "github.com/tansancola/sceneswitcher/internal/app/adapters/twitch/irc"

// MessageReader is a consumer-owned queue of chat messages. Poll never
// blocks; it reports false when the queue is empty.
type MessageReader interface {
	Poll() (irc.Message, bool)
	Len() int
}

type ChatPort interface {
	Connect() error
	SendChatMessage(text string) error
	RegisterForMessages() MessageReader
	RegisterForWhispers() MessageReader
	Release()
}
