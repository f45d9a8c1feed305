// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
//
// Order status changes never go through a transaction and a read-modify-write cycle:
// each one is a single guarded write executed by ports.OrderRepository.Apply, and the
// handlers only interpret its outcome, publish the committed state and adjust timers.
// Commands that write several rows (order creation, reports) use a Unit of Work.
package commands

import (
	"context"

	"crowddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReportRepoFactory provides access to report repository within a transaction.
	ReportRepoFactory interface {
		ReportRepository() ports.ReportRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReportUoW manages transactions that read an order and write a report.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   stored, err := uow.ReportRepository().Add(ctx, r)
	//
	//   err = uow.Commit(ctx)
	ReportUoW interface {
		TxManager
		OrderRepoFactory
		ReportRepoFactory
	}

	// ReportUoWFactory creates new report unit of work instances.
	ReportUoWFactory interface {
		Create() ReportUoW
	}
)

// OrderUoWFactoryFunc adapts a function to OrderUoWFactory.
type OrderUoWFactoryFunc func() OrderUoW

func (f OrderUoWFactoryFunc) Create() OrderUoW { return f() }

// ReportUoWFactoryFunc adapts a function to ReportUoWFactory.
type ReportUoWFactoryFunc func() ReportUoW

func (f ReportUoWFactoryFunc) Create() ReportUoW { return f() }
