// Package order contains the order aggregate and its lifecycle state machine.
//
// An order moves through its lifecycle exclusively via ApplyEvent: each event
// type maps to exactly one target status, the transition is validated against
// a fixed adjacency table, and every applied transition yields an Event record
// that is persisted atomically with the order mutation. The tables are plain
// package-level maps so tests can cover them exhaustively.
package order
