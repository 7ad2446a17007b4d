package main

type Config struct {
	AdminAddr string `env:"ADMIN_ADDR,default=127.0.0.1:25001"`
	Watch     bool   `env:"WATCH,default=true"`
	Colours   bool   `env:"COLOURS,default=true"`
	LogLevel  string `env:"LOG_LEVEL,default=WARN"`
}
