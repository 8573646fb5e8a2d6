package raster

import (
	"math"

	"github.com/sable-img/sable/geometry"
)

// CoverageMask reports how much a shape covers a sample point, in [0,1].
// Implementations are queried once per supersample position, so they should
// be cheap; geometry.Area already caches its flattened polygon.
type CoverageMask interface {
	CoverageAt(x, y float64) float64
}

// FullCoverage is the identity mask: every point is fully covered. Used
// when a caller wants to paint an already-bounded region (e.g. a whole
// layer image) without an additional shape test.
type FullCoverage struct{}

func (FullCoverage) CoverageAt(x, y float64) float64 { return 1 }

// PolygonCoverage wraps a geometry.Area, delegating to its winding-number
// membership test and feather falloff.
type PolygonCoverage struct {
	Area *geometry.Area
}

func (m PolygonCoverage) CoverageAt(x, y float64) float64 {
	if m.Area == nil {
		return 0
	}
	return m.Area.Coverage(x, y)
}

// BrushCoverageMask is a soft circular stamp: full coverage at the center,
// falling to zero at Radius, with a Hardness-controlled falloff curve
// (1 = hard disc edge, 0 = coverage falls off from the center). Grounded on
// the bounds-checked, clamp-to-zero-outside-extent discipline of
// agg_go's AlphaMaskU8.Pixel (returns 0 once a query falls outside the
// attached buffer) generalized from a raster-sampled mask to an analytic
// one, since a brush stamp has no backing pixel buffer to sample.
type BrushCoverageMask struct {
	CenterX, CenterY float64
	Radius           float64
	Hardness         float64 // in [0,1]
}

func (m BrushCoverageMask) CoverageAt(x, y float64) float64 {
	if m.Radius <= 0 {
		return 0
	}
	dist := math.Hypot(x-m.CenterX, y-m.CenterY)
	if dist >= m.Radius {
		return 0
	}
	hardness := m.Hardness
	if hardness < 0 {
		hardness = 0
	} else if hardness > 1 {
		hardness = 1
	}
	innerRadius := m.Radius * hardness
	if dist <= innerRadius {
		return 1
	}
	if innerRadius >= m.Radius {
		return 1
	}
	t := (dist - innerRadius) / (m.Radius - innerRadius)
	// smoothstep falloff outside the hard core
	t = clamp01(t)
	return 1 - t*t*(3-2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
