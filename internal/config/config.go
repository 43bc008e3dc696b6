package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	TokenSecret       string
	NotifyBrokers     string
	NotifyKafkaTopic  string
	DispatchQueueSize int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultNotifyKafkaTopic  = "comedor.order-events"
	defaultDispatchQueueSize = 256
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		NotifyBrokers:     getString(lookup, "NOTIFY_BROKERS", ""),
		NotifyKafkaTopic:  getString(lookup, "NOTIFY_KAFKA_TOPIC", defaultNotifyKafkaTopic),
		DispatchQueueSize: getInt(lookup, "DISPATCH_QUEUE_SIZE", defaultDispatchQueueSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("comedor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.NotifyBrokers, "notify-brokers", cfg.NotifyBrokers, "Kafka brokers for the event bridge (empty disables it)")
	fs.StringVar(&cfg.NotifyKafkaTopic, "notify-topic", cfg.NotifyKafkaTopic, "Kafka topic for bridged lifecycle events")
	fs.IntVar(&cfg.DispatchQueueSize, "dispatch-queue", cfg.DispatchQueueSize, "Notification dispatch queue capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.DispatchQueueSize <= 0 {
		cfg.DispatchQueueSize = defaultDispatchQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
