// Package geometry implements paths (lines and Bézier curves), closed
// areas with feather, flattening to polylines at a tolerance, stroke
// expansion and aspect-ratio fitting — component B of the core.
//
// The Bézier flattening heuristic (recursive subdivision driven by a
// deviation-from-chord estimate) follows golang.org/x/image/vector's
// QuadTo/CubeTo, the pack's one true vector rasterizer reference
// (see _examples/other_examples/..._golang-image__vector-vector.go.go).
package geometry
