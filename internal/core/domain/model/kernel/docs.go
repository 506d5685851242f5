// Package kernel provides the core domain primitives shared across the
// dispatch domain model.
//
// It includes:
//   - UUID: identifier value object with validation and comparison
//   - GeoPoint: WGS84 coordinate value object for pickup/delivery locations
//
// Both primitives are immutable, enforce their invariants at construction,
// and are safe for concurrent use.
package kernel
