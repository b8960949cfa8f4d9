// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	pkgstrings "docflow/pkg/platform/strings"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Notice   NoticeConfig

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"DOCFLOW_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig configures the optional Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the mail outbox producer. No brokers means mail is
// only logged.
type KafkaConfig struct {
	Brokers   []string `env:"KAFKA_BROKERS" envSeparator:","`
	MailTopic string   `env:"MAIL_TOPIC" envDefault:"docflow.mail.outbox"`
}

// NoticeConfig schedules the partner notice job.
type NoticeConfig struct {
	Offsets   string        `env:"NOTICE_OFFSETS" envDefault:"60,30"`
	At        string        `env:"NOTICE_AT" envDefault:"06:00"`
	Interval  time.Duration `env:"NOTICE_INTERVAL" envDefault:"24h"`
	DedupeTTL time.Duration `env:"NOTICE_DEDUPE_TTL" envDefault:"36h"`
	Location  string        `env:"NOTICE_TZ" envDefault:"Europe/Moscow"`
	Language  string        `env:"NOTICE_LANGUAGE" envDefault:"ru-RU"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := c.Notice.ParsedOffsets(); err != nil {
		return err
	}
	if _, _, err := c.Notice.StartClock(); err != nil {
		return err
	}
	if c.Notice.Interval <= 0 {
		return fmt.Errorf("NOTICE_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.Notice.Location); err != nil {
		return fmt.Errorf("NOTICE_TZ: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the process runs in a local environment.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// ParsedOffsets returns the distinct day offsets, in configured order.
func (n NoticeConfig) ParsedOffsets() ([]int, error) {
	parts := pkgstrings.SplitList(n.Offsets, ",")
	offsets := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("NOTICE_OFFSETS: invalid offset %q", p)
		}
		offsets = append(offsets, v)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("NOTICE_OFFSETS: at least one offset is required")
	}
	return offsets, nil
}

// StartClock parses the HH:MM start time.
func (n NoticeConfig) StartClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", n.At)
	if err != nil {
		return 0, 0, fmt.Errorf("NOTICE_AT: expected HH:MM, got %q", n.At)
	}
	return t.Hour(), t.Minute(), nil
}
