package app

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	router "github.com/tansancola/sceneswitcher/internal/app/adapters/http"
	"github.com/tansancola/sceneswitcher/internal/app/adapters/twitch/api"
	"github.com/tansancola/sceneswitcher/internal/app/adapters/twitch/chat"
	"github.com/tansancola/sceneswitcher/internal/app/infrastructure/config"
	"github.com/tansancola/sceneswitcher/internal/app/ports"
	"github.com/tansancola/sceneswitcher/pkg/logger"
)

const configPath = "config.json"

func New() error {
	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: http.DefaultTransport,
	}

	manager, err := config.New(configPath)
	if err != nil {
		logger.New("").Fatal("Error loading config", err)
	}
	cfg := manager.Get()

	log := logger.New(cfg.App.LogFile)
	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	r := router.NewRouter(log, manager)
	go func() {
		if err := r.Run(cfg.App.HTTPAddr); err != nil {
			log.Error("HTTP server stopped", err)
		}
	}()

	ctx := context.Background()
	twitch := api.NewTwitch(log, client, cfg.App.OAuth, cfg.App.ClientID)

	nick := cfg.App.Username
	if login, err := twitch.ValidateToken(ctx, cfg.App.OAuth); err != nil {
		log.Warn("Token validation failed, using configured username", slog.String("error", err.Error()))
	} else if login != "" {
		nick = login
	}

	opts := chat.Options{
		URL:              cfg.Chat.ServerURL,
		Nick:             nick,
		HandshakeTimeout: time.Duration(cfg.Chat.HandshakeTimeoutSecs) * time.Second,
		BufferCapacity:   cfg.Chat.BufferCapacity,
		ReconnectEvery:   time.Duration(cfg.Chat.ReconnectEverySecs) * time.Second,
	}

	var wg sync.WaitGroup
	for _, channel := range cfg.App.Channels {
		wg.Add(1)
		go func() {
			defer wg.Done()

			prefixedLog := logger.NewPrefixedLogger(log, channel)
			if id, err := twitch.GetChannelID(ctx, channel); err != nil {
				prefixedLog.Warn("Could not resolve channel id", slog.String("error", err.Error()))
			} else {
				prefixedLog.Debug("Resolved channel", slog.String("id", id))
			}

			// the app holds the owning handle for its whole lifetime
			conn := chat.GetChatConnection(log, cfg.App.OAuth, channel, opts)
			go logMessages(prefixedLog, conn.RegisterForMessages(), "message")
			go logMessages(prefixedLog, conn.RegisterForWhispers(), "whisper")

			if err := conn.Connect(); err != nil {
				prefixedLog.Warn("Chat not connected yet, retrying in background", slog.String("error", err.Error()))
				return
			}
			prefixedLog.Info("Chat connected")
		}()
	}
	wg.Wait()

	return nil
}

func logMessages(log logger.Logger, reader ports.MessageReader, kind string) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		for {
			msg, ok := reader.Poll()
			if !ok {
				break
			}
			log.Debug("New "+kind,
				slog.String("from", msg.Source.Nick),
				slog.String("display_name", msg.Properties.DisplayName),
				slog.String("text", msg.Message))
		}
	}
}
