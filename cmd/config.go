package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"crowddelivery/internal/adapters/out/locationcache"
	"crowddelivery/internal/adapters/out/orderstream"
	"crowddelivery/internal/adapters/out/persistence"
	"crowddelivery/internal/core/domain/services"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Dispatch DispatchConfig
	Price    PriceConfig
	Bus      BusConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080" validate:"min=1,max=65535"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s" validate:"gt=0"`
}

type DBConfig struct {
	Driver       string `envconfig:"DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`
	Host         string `envconfig:"DB_HOST" validate:"required_if=Driver postgres"`
	Port         int    `envconfig:"DB_PORT" default:"5432" validate:"min=1,max=65535"`
	User         string `envconfig:"DB_USER" validate:"required_if=Driver postgres"`
	Password     string `envconfig:"DB_PASSWORD"`
	Name         string `envconfig:"DB_NAME" validate:"required_if=Driver postgres"`
	SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	SQLitePath   string `envconfig:"DB_SQLITE_PATH" default:"crowddelivery.db"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"20" validate:"min=1"`
	LogQueries   bool   `envconfig:"DB_LOG_QUERIES" default:"false"`
}

type DispatchConfig struct {
	AcceptWindow time.Duration `envconfig:"ACCEPT_WINDOW" default:"180s" validate:"gt=0"`
	SweepSpec    string        `envconfig:"SWEEP_SPEC" default:"@every 1s" validate:"required"`
}

type PriceConfig struct {
	Base  decimal.Decimal `envconfig:"PRICE_BASE" default:"5"`
	PerKm decimal.Decimal `envconfig:"PRICE_PER_KM" default:"2"`
	PerKg decimal.Decimal `envconfig:"PRICE_PER_KG" default:"1"`
}

type BusConfig struct {
	SubscriberQueue int `envconfig:"BUS_SUBSCRIBER_QUEUE" default:"256" validate:"min=1"`
}

// RedisConfig enables the Redis location cache when Addr is set. Without it,
// positions are kept in process memory.
type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
	LocationTTL time.Duration `envconfig:"LOCATION_TTL" default:"30s" validate:"gt=0"`
}

// KafkaConfig enables the order-changed stream when Brokers is set.
type KafkaConfig struct {
	Brokers           []string      `envconfig:"KAFKA_BROKERS" validate:"dive,hostname_port"`
	OrderChangedTopic string        `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"orders.changed" validate:"required_with=Brokers"`
	BatchTimeout      time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"100ms" validate:"gt=0"`
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return ParseConfig()
}

// ParseConfig reads the configuration from the environment and validates it.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Price.Rule().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c AppConfig) Addr() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(c.HTTPPort))
}

// Persistence returns the connection settings for persistence.Open.
func (c DBConfig) Persistence() persistence.Config {
	if c.Driver == persistence.DriverSQLite {
		return persistence.Config{
			Driver:       persistence.DriverSQLite,
			DSN:          c.SQLitePath,
			MaxOpenConns: c.MaxOpenConns,
			LogQueries:   c.LogQueries,
		}
	}
	return persistence.Config{
		Driver: persistence.DriverPostgres,
		DSN: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode),
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: time.Hour,
		LogQueries:      c.LogQueries,
	}
}

func (c PriceConfig) Rule() services.PriceRule {
	return services.PriceRule{Base: c.Base, PerKm: c.PerKm, PerKg: c.PerKg}
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

func (c RedisConfig) Cache() locationcache.RedisConfig {
	return locationcache.RedisConfig{Addr: c.Addr, Password: c.Password, DB: c.DB, TTL: c.LocationTTL}
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

func (c KafkaConfig) Stream() orderstream.Config {
	return orderstream.Config{Brokers: c.Brokers, Topic: c.OrderChangedTopic, BatchTimeout: c.BatchTimeout}
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(c AppConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	var handler slog.Handler
	if c.Env == EnvProduction {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "crowddelivery", "env", c.Env)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
