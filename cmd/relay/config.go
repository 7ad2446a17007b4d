package main

import "time"

type Config struct {
	Role                 string        `env:"ROLE,default=host"`
	Mode                 string        `env:"MODE,default=forward"`
	PlayerName           string        `env:"PLAYER_NAME,default=Player"`
	Address              string        `env:"ADDRESS,default=127.0.0.1"`
	Port                 int           `env:"PORT,default=25000"`
	Capacity             int           `env:"CAPACITY,default=16"`
	BufferSize           int           `env:"BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=0s"`
	AdminPort            int           `env:"ADMIN_PORT,default=0"`
	LogLevel             string        `env:"LOG_LEVEL,default=WARN"`
}

const (
	roleHost = "host"
	roleJoin = "join"
)
