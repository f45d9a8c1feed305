// Package services provides domain services of the dispatch core: business rules
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PriceCalculator: computes the delivery fee of an order from its distance and weight
package services
