package config

import "time"

// Mood definition mood_service YAML structure
type Mood struct {
	Port string `mapstructure:"port"`

	Mongo DatabaseConfig `mapstructure:"mongo"`
	Redis RedisConfig    `mapstructure:"redis"`
	Kafka KafkaConfig    `mapstructure:"kafka"`

	Cors CorsConfig `mapstructure:"cors"`

	// BroadcastChannel redis pub/sub channel for the global fan-out
	BroadcastChannel string `mapstructure:"broadcast_channel"`

	// PublicWSURL websocket url handed out by /api/negotiate
	PublicWSURL string `mapstructure:"public_ws_url"`
}

// CorsConfig definition cors origins
type CorsConfig struct {
	// BroadcastOrigin the single origin allowed on /api/broadcast
	BroadcastOrigin string `mapstructure:"broadcast_origin"`
	// NegotiateOrigins allow-list matched against the request Origin
	NegotiateOrigins []string `mapstructure:"negotiate_origins"`
	// DefaultOrigin fallback dev origin when no allow-list match
	DefaultOrigin string `mapstructure:"default_origin"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	RedisDB int    `mapstructure:"redis_db"`
}

// KafkaConfig definition kafka event archive setting
type KafkaConfig struct {
	Brokers       []string      `mapstructure:"brokers"`
	Topic         string        `mapstructure:"topic"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	RetryCount    int           `mapstructure:"retry_count"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}
