// Package order provides the Order aggregate and the order state machine of the
// dispatch core.
//
// The package includes:
//   - Order: the aggregate root holding identity, delivery attributes and lifecycle state
//   - Status and Action: the six-state machine and the named transitions between states
//   - Transition: a pure description of one guarded state change, executed by the
//     order repository as a single conditional write
//   - Snapshot: the flat persisted form used by repositories, queries and events
//
// Key business rules:
//   - Orders start pending; pending and transferring orders form the dispatch pool
//   - Exactly one rider can accept a dispatchable order; the accept opens a window
//     that ends at the transfer deadline
//   - An accepted order that is not picked up before its deadline returns to the pool
//   - A rider is referenced exactly when the order is accepted, picked up or delivered
//   - delivered and cancelled are terminal; picked up orders cannot be cancelled
package order
