package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	RedisAddr       string        `env:"REDIS_ADDR,default=localhost:6379"`
	APIToken        string        `env:"API_TOKEN,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CensoredChar    string        `env:"CENSORED_CHARACTER,default=*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
