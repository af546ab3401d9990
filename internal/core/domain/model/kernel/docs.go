// Package kernel holds the shared value objects of the dispatch domain.
//
// Location describes a cell on the 10x10 city grid and knows how to measure
// Manhattan distance and how to take a bounded step toward another cell.
// Volume and Speed are positive integers that the courier and order aggregates
// compare against each other. UUID wraps github.com/google/uuid so identifiers
// cannot be built from a zero value by accident, and Entity gives aggregates
// equality by identity.
//
// Every value object here is immutable. The zero value of each type is treated as
// "absent": it fails Validate and is rejected by every operation that receives it.
package kernel
