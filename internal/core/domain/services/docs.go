// Package services holds domain logic that spans more than one aggregate.
//
// OrderDispatcher matches a Created order to the courier that can reach its
// delivery location in the fewest ticks and binds the two together.
package services
