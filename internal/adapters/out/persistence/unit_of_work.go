// Package persistence provides the GORM-based storage of the dispatch core: opening
// the database (postgres or sqlite), migrating the schema and the Unit of Work that
// groups repository calls into one transaction.
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	stored, err := uow.OrderRepository().Add(ctx, o)
//	if err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Order transitions do not need a Unit of Work: every transition is one conditional
// UPDATE and is atomic on its own. Transactions are used where several rows must be
// written or read consistently, such as filing a report against the order a rider holds.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
package persistence

import (
	"context"

	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/adapters/out/persistence/reportrepo"
	"crowddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := persistence.Open(cfg)
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates database transactions for business operations.
// Repositories obtained from it run inside the active transaction, or directly
// against the database when no transaction was begun.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return gormerr.Translate("transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return gormerr.Translate("transaction", err)
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return gormerr.Translate("transaction", err)
}

// OrderRepository provides access to order persistence operations within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// ChatRepository provides access to chat persistence operations within the unit of work.
func (uow *GormUnitOfWork) ChatRepository() ports.ChatRepository {
	return chatrepo.NewGormChatRepository(uow.conn())
}

// ReportRepository provides access to report persistence operations within the unit of work.
func (uow *GormUnitOfWork) ReportRepository() ports.ReportRepository {
	return reportrepo.NewGormReportRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
