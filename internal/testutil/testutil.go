// Package testutil opens throwaway databases and builds fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"crowddelivery/internal/adapters/out/persistence"
	"crowddelivery/internal/core/domain/model/kernel"
	"crowddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated, uniquely named in-memory database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := persistence.Open(persistence.Config{
		Driver: persistence.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))
	t.Cleanup(func() { _ = persistence.Close(db) })

	return db
}

// NewPostgresDB starts a PostgreSQL container and returns a migrated connection to it.
// The container is terminated when t finishes. t is skipped when no container
// runtime is reachable.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := persistence.Open(persistence.Config{Driver: persistence.DriverPostgres, DSN: dsn, MaxOpenConns: 20})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))
	t.Cleanup(func() { _ = persistence.Close(db) })

	return db
}

// Truncate empties every table between tests.
func Truncate(t testing.TB, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"chat_messages", "reports", "orders"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
}

// Draft returns a valid instant order draft for merchantID.
func Draft(t testing.TB, merchantID int64) order.Draft {
	t.Helper()

	dest, err := kernel.NewLocation(31.2304, 121.4737)
	require.NoError(t, err)

	return order.Draft{
		MerchantID:         merchantID,
		CustomerName:       "Li Wei",
		CustomerPhone:      "13800000000",
		DestinationAddress: "88 Century Avenue",
		Destination:        dest,
		Weight:             1.5,
		Distance:           3,
		Price:              decimal.RequireFromString("12.50"),
		Type:               order.Instant,
	}
}

// NewOrder returns a pending order created at now.
func NewOrder(t testing.TB, merchantID int64, now time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(Draft(t, merchantID), now)
	require.NoError(t, err)
	return o
}
