package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	RedisAddress          string
	ComposerAddress       string
	MailAPIAddress        string
	MailAPIKey            string
	MailFrom              string
	MailRecipientOverride string
	SentinelKey           string
	SnapshotPollInterval  time.Duration
	SentinelPingInterval  time.Duration
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress           = ":8080"
	defaultMailAPIAddress       = "https://api.resend.com"
	defaultMailFrom             = "Adonay Express <onboarding@resend.dev>"
	defaultSentinelKey          = "connectivity-sentinel"
	defaultSnapshotPollInterval = 2 * time.Second
	defaultSentinelPingInterval = 5 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		RedisAddress:          getString(lookup, "REDIS_ADDRESS", ""),
		ComposerAddress:       getString(lookup, "COMPOSER_ADDRESS", ""),
		MailAPIAddress:        getString(lookup, "MAIL_API_ADDRESS", defaultMailAPIAddress),
		MailAPIKey:            getString(lookup, "MAIL_API_KEY", ""),
		MailFrom:              getString(lookup, "MAIL_FROM", defaultMailFrom),
		MailRecipientOverride: getString(lookup, "MAIL_RECIPIENT_OVERRIDE", ""),
		SentinelKey:           getString(lookup, "CONNECTIVITY_SENTINEL", defaultSentinelKey),
		SnapshotPollInterval:  getDuration(lookup, "SNAPSHOT_POLL_INTERVAL", defaultSnapshotPollInterval),
		SentinelPingInterval:  getDuration(lookup, "SENTINEL_PING_INTERVAL", defaultSentinelPingInterval),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("orderflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.SnapshotPollInterval.String()
		pingIntervalStr    = cfg.SentinelPingInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address holding the batch session key")
	fs.StringVar(&cfg.ComposerAddress, "composer", cfg.ComposerAddress, "Notification composer base URL")
	fs.StringVar(&cfg.MailAPIAddress, "mail-api", cfg.MailAPIAddress, "Mail transport base URL")
	fs.StringVar(&cfg.MailAPIKey, "mail-key", cfg.MailAPIKey, "Mail transport API key")
	fs.StringVar(&cfg.MailRecipientOverride, "mail-override", cfg.MailRecipientOverride, "Redirect all outgoing mail to this address")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between order snapshot polls")
	fs.StringVar(&pingIntervalStr, "ping-interval", pingIntervalStr, "Interval between connectivity sentinel pings")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SnapshotPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.SentinelPingInterval, err = time.ParseDuration(pingIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid ping interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if keyFile, ok := lookup("MAIL_API_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read mail api key file: %w", err)
		}
		cfg.MailAPIKey = string(content)
	}

	if cfg.SnapshotPollInterval <= 0 {
		cfg.SnapshotPollInterval = defaultSnapshotPollInterval
	}

	if cfg.SentinelPingInterval <= 0 {
		cfg.SentinelPingInterval = defaultSentinelPingInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddress == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if cfg.ComposerAddress == "" {
		return nil, fmt.Errorf("composer address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
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
