package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	LogFile          string `mapstructure:"LOG_FILE"`
	HeartbeatSeconds int    `mapstructure:"HEARTBEAT_SECONDS"`
	SubscriberBuffer int    `mapstructure:"SUBSCRIBER_BUFFER"`
}

// Heartbeat returns the SSE keep-alive interval.
func (c Config) Heartbeat() time.Duration {
	if c.HeartbeatSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.HeartbeatSeconds) * time.Second
}

// Addr returns the listen address for the web table.
func (c Config) Addr() string {
	return ":" + c.ServerPort
}

// Setup reads cfgPath if it exists, then lets environment variables
// override any key.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "reversi.log")
	v.SetDefault("HEARTBEAT_SECONDS", 15)
	v.SetDefault("SUBSCRIBER_BUFFER", 1)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.SubscriberBuffer < 1 {
		cfg.SubscriberBuffer = 1
	}
	return &cfg, nil
}
