// Package order contains the Order aggregate and its status lifecycle.
//
// An order is created at a delivery location with a volume and moves strictly
// forward through Created, Assigned and Completed. The courier is referenced by
// id only, so the courier package can depend on order without a cycle.
// Every status change is recorded as a StatusChanged event that the persistence
// layer publishes after the surrounding transaction commits.
package order
