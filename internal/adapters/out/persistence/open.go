package persistence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/adapters/out/persistence/reportrepo"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and tunes the database backend.
type Config struct {
	Driver string

	// DSN is a postgres connection string or a sqlite database path.
	DSN string

	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	// LogQueries enables gorm's SQL logging.
	LogQueries bool
}

// Open connects to the configured database. Driver errors are translated by gorm,
// so unique violations surface as gorm.ErrDuplicatedKey on both backends.
//
// SQLite is opened with a busy timeout so that writers queue instead of failing.
// An in-memory SQLite database is pinned to a single connection, because every
// new connection to ":memory:" would see an empty database.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogQueries {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.Driver == DriverSQLite && isMemory(cfg.DSN) {
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the tables of every stored aggregate.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &chatrepo.MessageDTO{}, &reportrepo.ReportDTO{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "crowddelivery.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if isMemory(path) {
		return path + sep + "_busy_timeout=5000"
	}
	return path + sep + "_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"
}

func isMemory(path string) bool {
	return strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}
