// Package chat models the per-order conversation between merchant, rider and customer.
//
// Messages are immutable once stored. The store assigns a monotonically increasing
// identifier, which defines the order in which messages are shown and delivered.
package chat
