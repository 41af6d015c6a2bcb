package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nfrund/pollchat/internal/rooms"
)

// Config holds all configuration for the application.
type Config struct {
	HTTPAddr  string `validate:"required"`
	AppEnv    string `validate:"oneof=dev test prod"`
	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	ChatRoute          string        `validate:"required,startswith=/"`
	RoomTTL            time.Duration `validate:"gt=0"`
	PresenceTimeout    time.Duration `validate:"gt=0"`
	TypingVisible      time.Duration `validate:"gt=0,ltefield=TypingStale"`
	TypingStale        time.Duration `validate:"gt=0"`
	MaxUsers           int           `validate:"gt=0"`
	MaxMessages        int           `validate:"gt=0"`
	MaxMessageLen      int           `validate:"gt=0"`
	CodeLength         int           `validate:"min=2,max=32"`
	SweepInterval      time.Duration `validate:"gte=0"`
	CORSAllowOrigins   []string      `validate:"min=1"`
	RateLimitPerMinute int           `validate:"gt=0"`
	ShutdownTimeout    time.Duration `validate:"gt=0"`
	AdminEnabled       bool
	MetricsEnabled     bool
}

// Load reads configuration from a .env file, if present, and the environment.
// Unset keys fall back to their defaults; malformed or out of range values are
// reported together.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	r := reader{}
	cfg := &Config{
		HTTPAddr:  r.getString("HTTP_ADDR", ":8080"),
		AppEnv:    r.getString("APP_ENV", "dev"),
		LogFormat: r.getString("LOG_FORMAT", "text"),
		LogLevel:  r.getString("LOG_LEVEL", "debug"),

		ChatRoute:          r.getString("CHAT_ROUTE", "/api/chat"),
		RoomTTL:            r.getDuration("CHAT_ROOM_TTL", rooms.DefaultRoomTTL),
		PresenceTimeout:    r.getDuration("CHAT_PRESENCE_TIMEOUT", rooms.DefaultPresenceTimeout),
		TypingVisible:      r.getDuration("CHAT_TYPING_VISIBLE", rooms.DefaultTypingVisible),
		TypingStale:        r.getDuration("CHAT_TYPING_STALE", rooms.DefaultTypingStale),
		MaxUsers:           r.getInt("CHAT_MAX_USERS", rooms.DefaultMaxUsers),
		MaxMessages:        r.getInt("CHAT_MAX_MESSAGES", rooms.DefaultMaxMessages),
		MaxMessageLen:      r.getInt("CHAT_MAX_MESSAGE_LEN", rooms.DefaultMaxMessageLen),
		CodeLength:         r.getInt("CHAT_CODE_LENGTH", rooms.DefaultCodeLength),
		SweepInterval:      r.getDuration("CHAT_SWEEP_INTERVAL", 0),
		CORSAllowOrigins:   r.getList("CORS_ALLOW_ORIGINS", []string{"*"}),
		RateLimitPerMinute: r.getInt("RATE_LIMIT_PER_MINUTE", 30),
		ShutdownTimeout:    r.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		AdminEnabled:       r.getBool("ADMIN_ENABLED", true),
		MetricsEnabled:     r.getBool("METRICS_ENABLED", true),
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Limits converts the chat settings into room engine limits.
func (c *Config) Limits() rooms.Limits {
	return rooms.Limits{
		RoomTTL:         c.RoomTTL,
		PresenceTimeout: c.PresenceTimeout,
		TypingVisible:   c.TypingVisible,
		TypingStale:     c.TypingStale,
		MaxUsers:        c.MaxUsers,
		MaxMessages:     c.MaxMessages,
		MaxMessageLen:   c.MaxMessageLen,
		CodeLength:      c.CodeLength,
	}
}

// IsProduction reports whether the app runs with APP_ENV=prod.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}

// reader looks up environment keys and collects parse errors.
type reader struct {
	errs []error
}

func (r *reader) getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) getDuration(key string, def time.Duration) time.Duration {
	v := r.getString(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *reader) getInt(key string, def int) int {
	v := r.getString(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) getBool(key string, def bool) bool {
	v := r.getString(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (r *reader) getList(key string, def []string) []string {
	v := r.getString(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
