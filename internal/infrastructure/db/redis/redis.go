package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout      = 5 * time.Second
	defaultNamespace = "lockout"
)

// Config describes the lockout store. URL, when set, wins over Addr, Password
// and DB.
type Config struct {
	URL      string
	Addr     string
	Password string
	DB       int
	// Namespace prefixes every key written by this service.
	Namespace string
	// Timeout bounds the startup ping.
	Timeout time.Duration
}

// NamespaceOrDefault returns the configured key namespace, or "lockout".
func (c Config) NamespaceOrDefault() string {
	if c.Namespace == "" {
		return defaultNamespace
	}
	return c.Namespace
}

func (c Config) options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// Connect opens a client for cfg and fails fast when the server does not answer.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
