// Package route contains the route aggregate and its stops.
//
// Routes are materialized from optimizer results by batch assignment,
// re-sequenced by route reoptimization, and manually reordered by
// dispatchers. Stops carry three independent position fields (optimized,
// custom, pickup); the custom positions of a route always form a contiguous
// 1..N range.
package route
