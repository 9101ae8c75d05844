package config

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			LogFile:  "logs/main.log",
			GinMode:  "release",
			HTTPAddr: ":8080",
		},
		Chat: Chat{
			ServerURL:            "wss://irc-ws.chat.twitch.tv:443",
			BufferCapacity:       100,
			HandshakeTimeoutSecs: 10,
			ReconnectEverySecs:   5,
		},
	}
}
