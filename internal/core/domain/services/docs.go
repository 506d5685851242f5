// Package services provides domain services that implement business logic
// not belonging to a single aggregate.
//
// The package includes:
//   - ManualSequenceCalculator: pure computation of a full stop re-ordering
//     from a partial map of explicit positions
//
// Domain services here are side-effect free; persistence of their results is
// the caller's responsibility.
package services
