package main

// Config defines the client-side environment variables.
type Config struct {
	ServerURL   string `env:"CHAT_SERVER_URL,default=http://localhost:8080"`
	RedisAddr   string `env:"REDIS_ADDR,default=localhost:6379"`
	APIToken    string `env:"API_TOKEN,required=true"`
	Username    string `env:"CHAT_USERNAME"`
	HistorySize int    `env:"HISTORY_SIZE,default=20"`
	LogLevel    string `env:"LOG_LEVEL,default=warn"`
}
