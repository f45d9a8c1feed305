// Package report models incident reports filed by riders about an order they hold,
// for example a damaged parcel or an unreachable customer.
//
// Reports follow their own small workflow, independent of the order state machine:
//
//	pending ──> approved
//	   └──────> rejected
package report
