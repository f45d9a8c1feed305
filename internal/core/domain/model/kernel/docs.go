// Package kernel provides value objects shared by several aggregates of the
// dispatch domain.
//
// The package includes:
//   - Location: a validated geographic point used by orders, position samples and reports
//
// Values are immutable and safe for concurrent use.
package kernel
