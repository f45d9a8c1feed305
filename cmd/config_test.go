package cmd

import (
	"log/slog"
	"testing"
	"time"

	"crowddelivery/internal/adapters/out/persistence"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", ":memory:")
}

func TestParseConfig_Defaults(t *testing.T) {
	setSQLiteEnv(t)

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 8080, cfg.App.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 180*time.Second, cfg.Dispatch.AcceptWindow)
	assert.Equal(t, "@every 1s", cfg.Dispatch.SweepSpec)
	assert.True(t, cfg.Price.Base.Equal(decimal.NewFromInt(5)))
	assert.True(t, cfg.Price.PerKm.Equal(decimal.NewFromInt(2)))
	assert.True(t, cfg.Price.PerKg.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 256, cfg.Bus.SubscriberQueue)
	assert.Equal(t, 30*time.Second, cfg.Redis.LocationTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestParseConfig_PostgresRequiresConnectionFields(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")

	_, err := ParseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
	assert.Contains(t, err.Error(), "User")
	assert.Contains(t, err.Error(), "Name")
}

func TestParseConfig_PostgresDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "dispatch")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "orders")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	pc := cfg.DB.Persistence()
	assert.Equal(t, persistence.DriverPostgres, pc.Driver)
	assert.Equal(t, "host=db port=6543 user=dispatch password=secret dbname=orders sslmode=disable", pc.DSN)
	assert.Equal(t, 20, pc.MaxOpenConns)
	assert.Equal(t, time.Hour, pc.ConnMaxLifetime)
}

func TestParseConfig_SQLite(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("DB_LOG_QUERIES", "true")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	pc := cfg.DB.Persistence()
	assert.Equal(t, persistence.DriverSQLite, pc.Driver)
	assert.Equal(t, ":memory:", pc.DSN)
	assert.True(t, pc.LogQueries)
}

func TestParseConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "APP_ENV", "staging"},
		{"unknown log level", "LOG_LEVEL", "trace"},
		{"port out of range", "HTTP_PORT", "70000"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"zero accept window", "ACCEPT_WINDOW", "0s"},
		{"empty sweep spec", "SWEEP_SPEC", ""},
		{"zero subscriber queue", "BUS_SUBSCRIBER_QUEUE", "0"},
		{"redis address without port", "REDIS_ADDR", "localhost"},
		{"kafka broker without port", "KAFKA_BROKERS", "broker"},
		{"negative base price", "PRICE_BASE", "-1"},
		{"negative per kg price", "PRICE_PER_KG", "-0.5"},
		{"malformed duration", "LOCATION_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setSQLiteEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := ParseConfig()
			assert.Error(t, err)
		})
	}
}

func TestParseConfig_OptionalBackends(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOCATION_TTL", "45s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_ORDER_CHANGED_TOPIC", "dispatch.orders")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	require.True(t, cfg.Redis.Enabled())
	cache := cfg.Redis.Cache()
	assert.Equal(t, "redis:6379", cache.Addr)
	assert.Equal(t, 2, cache.DB)
	assert.Equal(t, 45*time.Second, cache.TTL)

	require.True(t, cfg.Kafka.Enabled())
	stream := cfg.Kafka.Stream()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, stream.Brokers)
	assert.Equal(t, "dispatch.orders", stream.Topic)
	assert.Equal(t, 100*time.Millisecond, stream.BatchTimeout)
}

func TestPriceConfig_Rule(t *testing.T) {
	cfg := PriceConfig{
		Base:  decimal.RequireFromString("4.5"),
		PerKm: decimal.RequireFromString("1.2"),
		PerKg: decimal.Zero,
	}

	rule := cfg.Rule()
	assert.True(t, rule.Base.Equal(cfg.Base))
	assert.True(t, rule.PerKm.Equal(cfg.PerKm))
	assert.True(t, rule.PerKg.IsZero())
	assert.NoError(t, rule.Validate())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(AppConfig{Env: EnvProduction, LogLevel: "warn"})
	require.NotNil(t, logger)

	_, isJSON := logger.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
	assert.False(t, logger.Handler().Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Handler().Enabled(t.Context(), slog.LevelWarn))

	dev := NewLogger(AppConfig{Env: EnvDevelopment, LogLevel: "debug"})
	_, isText := dev.Handler().(*slog.TextHandler)
	assert.True(t, isText)
}
