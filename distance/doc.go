// Package distance provides vector distance and similarity calculations.
//
// All functions operate on raw float32 slices and assume equal lengths unless
// stated otherwise; dimensionality enforcement is the caller's responsibility.
//
// # Supported functions
//
//   - Dot: dot product (inner product)
//   - Norm: L2 magnitude
//   - SquaredL2: squared Euclidean distance
//   - CosineSimilarity: normalized dot product
//
// # Usage
//
//	sim := distance.CosineSimilarity(a, b)
//	dist := distance.SquaredL2(a, b)
package distance
