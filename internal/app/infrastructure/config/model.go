package config

type Config struct {
	App  App  `json:"app"`
	Chat Chat `json:"chat"`
}

type App struct {
	LogLevel  string   `json:"log_level"`
	LogFile   string   `json:"log_file"`
	GinMode   string   `json:"gin_mode"`
	HTTPAddr  string   `json:"http_addr"`
	AuthToken string   `json:"auth_token"`
	OAuth     string   `json:"oauth"`
	ClientID  string   `json:"client_id"`
	Username  string   `json:"username"`
	Channels  []string `json:"channels"`
}

type Chat struct {
	ServerURL            string `json:"server_url"`
	BufferCapacity       int    `json:"buffer_capacity"`
	HandshakeTimeoutSecs int    `json:"handshake_timeout_secs"`
	ReconnectEverySecs   int    `json:"reconnect_every_secs"`
}
