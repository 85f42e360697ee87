// Package config loads and validates tool configuration from YAML files
// with environment-variable overrides. It provides typed structs for the
// document source, storage, cache, logging, and metrics subsystems.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tool configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Source  SourceConfig  `yaml:"source"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects the default storage policy used when the CLI
// flag is absent.
type StorageConfig struct {
	Policy string `yaml:"policy"`
}

// SourceConfig selects where documents are read from during a build.
// Kind is one of "file", "postgres", or "kafka".
type SourceConfig struct {
	Kind     string         `yaml:"kind"`
	Encoding string         `yaml:"encoding"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

// PostgresConfig holds PostgreSQL connection parameters and the query
// producing (id, text) document rows.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	Query           string        `yaml:"query"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings for the bounded
// document drain.
type KafkaConfig struct {
	Brokers []string      `yaml:"brokers"`
	Topic   string        `yaml:"topic"`
	GroupID string        `yaml:"groupId"`
	MaxWait time.Duration `yaml:"maxWait"`
}

// CacheConfig controls the optional Redis-backed query result cache.
type CacheConfig struct {
	Enabled bool        `yaml:"enabled"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection and TTL parameters.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus scrape endpoint exposed during
// long-running builds.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config with defaults for local use.
func defaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Policy: "struct",
		},
		Source: SourceConfig{
			Kind:     "file",
			Encoding: "utf-8",
			Postgres: PostgresConfig{
				Host:            "localhost",
				Port:            5432,
				Database:        "documents",
				User:            "invindex",
				Password:        "localdev",
				SSLMode:         "disable",
				Query:           "SELECT id, content FROM documents ORDER BY id",
				MaxOpenConns:    4,
				MaxIdleConns:    2,
				ConnMaxLifetime: 5 * time.Minute,
			},
			Kafka: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "documents",
				GroupID: "invindex-builder",
				MaxWait: time.Second,
			},
		},
		Cache: CacheConfig{
			Enabled: false,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				Password: "",
				DB:       0,
				PoolSize: 10,
				CacheTTL: 60 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads INVIDX_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INVIDX_STORAGE_POLICY"); v != "" {
		cfg.Storage.Policy = v
	}
	if v := os.Getenv("INVIDX_SOURCE_KIND"); v != "" {
		cfg.Source.Kind = v
	}
	if v := os.Getenv("INVIDX_SOURCE_ENCODING"); v != "" {
		cfg.Source.Encoding = v
	}
	if v := os.Getenv("INVIDX_POSTGRES_HOST"); v != "" {
		cfg.Source.Postgres.Host = v
	}
	if v := os.Getenv("INVIDX_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Source.Postgres.Port = port
		}
	}
	if v := os.Getenv("INVIDX_POSTGRES_DATABASE"); v != "" {
		cfg.Source.Postgres.Database = v
	}
	if v := os.Getenv("INVIDX_POSTGRES_USER"); v != "" {
		cfg.Source.Postgres.User = v
	}
	if v := os.Getenv("INVIDX_POSTGRES_PASSWORD"); v != "" {
		cfg.Source.Postgres.Password = v
	}
	if v := os.Getenv("INVIDX_POSTGRES_QUERY"); v != "" {
		cfg.Source.Postgres.Query = v
	}
	if v := os.Getenv("INVIDX_KAFKA_BROKERS"); v != "" {
		cfg.Source.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("INVIDX_KAFKA_TOPIC"); v != "" {
		cfg.Source.Kafka.Topic = v
	}
	if v := os.Getenv("INVIDX_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("INVIDX_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
	if v := os.Getenv("INVIDX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INVIDX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("INVIDX_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
