// Package raster turns geometry into pixels: a CoverageMask decides how
// much a shape touches each sample point, a Shader decides what color goes
// there, a Compositor blends shader output onto a destination pixel, and a
// SampleGrid supersamples each destination pixel to anti-alias the result.
// The Rasterizer ties the four together — component C of the core.
//
// The per-pixel supersampling loop follows the same accumulate-then-average
// shape as golang.org/x/image/vector's Rasterizer (the pack's reference
// vector rasterizer), generalized from a one-shape/one-color accumulator
// into the mask/shader/compositor split the layered model needs.
package raster
