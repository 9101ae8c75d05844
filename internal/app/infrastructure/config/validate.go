package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error, fatal; got %s", cfg.App.LogLevel)
	}

	if cfg.App.OAuth == "" {
		return errors.New("app.oauth is required")
	}
	if cfg.App.Username == "" {
		return errors.New("app.username is required")
	}
	if len(cfg.App.Channels) == 0 {
		return errors.New("app.channels is required")
	}
	for _, channel := range cfg.App.Channels {
		if strings.TrimSpace(channel) == "" {
			return errors.New("app.channels must not contain empty names")
		}
	}

	// chat
	if cfg.Chat.ServerURL != "" && !strings.HasPrefix(cfg.Chat.ServerURL, "ws://") && !strings.HasPrefix(cfg.Chat.ServerURL, "wss://") {
		return fmt.Errorf("chat.server_url must be a ws:// or wss:// url; got %s", cfg.Chat.ServerURL)
	}
	if cfg.Chat.BufferCapacity < 0 {
		return errors.New("chat.buffer_capacity must not be negative")
	}
	if cfg.Chat.HandshakeTimeoutSecs < 0 {
		return errors.New("chat.handshake_timeout_secs must not be negative")
	}
	if cfg.Chat.ReconnectEverySecs < 0 {
		return errors.New("chat.reconnect_every_secs must not be negative")
	}

	return nil
}
