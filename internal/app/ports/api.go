package ports

import "context"

// TokenValidator resolves a bearer credential to the login it belongs to.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

type ChannelResolver interface {
	GetChannelID(ctx context.Context, login string) (string, error)
}
