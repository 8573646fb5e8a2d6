package geometry

import "math"

// smoothstep is the classic Hermite ease used for feather falloff: 0 below
// edge0, 1 above edge1, cubic in between.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
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

// Area is a closed Path with an associated feather radius, the region
// pipeline's unit of "where to operate". A feather of 0 gives a hard edge;
// feather > 0 ramps coverage from 1 down to 0 over that many pixels inward
// from the boundary. Outside the boundary coverage is always 0.
type Area struct {
	Boundary *Path
	Feather  float64

	polygon []PointF // cached flattening, lazily built
	tol     float64
}

// NewArea wraps a closed Path as an Area with the given feather radius.
func NewArea(boundary *Path, feather float64) *Area {
	if feather < 0 {
		feather = 0
	}
	return &Area{Boundary: boundary, Feather: feather}
}

// RectArea is a convenience constructor for an axis-aligned rectangular
// Area, used throughout the region-pipeline scenario tests.
func RectArea(min, max PointF, feather float64) *Area {
	return NewArea(RectPath(min, max), feather)
}

func (a *Area) polyline() []PointF {
	const tolerance = 0.25
	if a.polygon == nil || a.tol != tolerance {
		a.polygon = a.Boundary.Flatten(tolerance)
		a.tol = tolerance
	}
	return a.polygon
}

// Bounds returns the boundary's axis-aligned bounding box, expanded by the
// feather radius on every side.
func (a *Area) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY, maxX, maxY = a.Boundary.Bounds()
	minX -= a.Feather
	minY -= a.Feather
	maxX += a.Feather
	maxY += a.Feather
	return
}

// Contains reports whether (x,y) is inside the boundary via the non-zero
// winding rule over the flattened polygon.
func (a *Area) Contains(x, y float64) bool {
	return windingNumber(a.polyline(), x, y) != 0
}

func windingNumber(poly []PointF, x, y float64) int {
	if len(poly) < 2 {
		return 0
	}
	wn := 0
	n := len(poly)
	for i := 0; i < n; i++ {
		p1 := poly[i]
		p2 := poly[(i+1)%n]
		if p1.Y <= y {
			if p2.Y > y && isLeft(p1, p2, x, y) > 0 {
				wn++
			}
		} else {
			if p2.Y <= y && isLeft(p1, p2, x, y) < 0 {
				wn--
			}
		}
	}
	return wn
}

func isLeft(p0, p1 PointF, x, y float64) float64 {
	return (p1.X-p0.X)*(y-p0.Y) - (x-p0.X)*(p1.Y-p0.Y)
}

// distanceToPolygon returns the unsigned distance from (x,y) to the nearest
// edge of poly.
func distanceToPolygon(poly []PointF, x, y float64) float64 {
	if len(poly) < 2 {
		return math.Inf(1)
	}
	p := PointF{x, y}
	best := math.Inf(1)
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		d := distToSegment(p, a, b)
		if d < best {
			best = d
		}
	}
	return best
}

func distToSegment(p, a, b PointF) float64 {
	ab := b.Sub(a)
	abLenSq := ab.X*ab.X + ab.Y*ab.Y
	if abLenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Dist(proj)
}

// Coverage returns the fractional [0,1] membership of point (x,y) in the
// area: 1 inside the boundary at least Feather pixels from the edge, 0
// outside the boundary, and smoothstep-interpolated across the feather band
// just inside the edge.
func (a *Area) Coverage(x, y float64) float64 {
	poly := a.polyline()
	inside := windingNumber(poly, x, y) != 0
	if a.Feather <= 0 {
		if inside {
			return 1
		}
		return 0
	}

	dist := distanceToPolygon(poly, x, y)
	if inside {
		return smoothstep(0, a.Feather, dist)
	}
	return 0
}

// Alignment is a nine-point anchor used by Fit to position scaled content
// within a target size.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignTopLeft
	AlignTop
	AlignTopRight
	AlignLeft
	AlignRight
	AlignBottomLeft
	AlignBottom
	AlignBottomRight
)

// AspectPolicy controls how Fit reconciles a source aspect ratio with a
// target size.
type AspectPolicy int

const (
	// FitMeet scales down so the whole source fits inside the target,
	// letterboxing if aspect ratios differ.
	FitMeet AspectPolicy = iota
	// FitSlice scales up so the target is fully covered, cropping the
	// source's overhang.
	FitSlice
	// FitNone stretches the source to the target size, ignoring aspect
	// ratio.
	FitNone
)

// Fit computes the destination rectangle (in target-space pixels) for
// placing a srcW x srcH source into a dstW x dstH target under policy,
// anchored per align. Returns the top-left offset and the scaled size.
func Fit(srcW, srcH, dstW, dstH float64, policy AspectPolicy, align Alignment) (x, y, w, h float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, 0, 0
	}
	srcAspect := srcW / srcH
	dstAspect := dstW / dstH

	switch policy {
	case FitNone:
		w, h = dstW, dstH
	case FitSlice:
		if srcAspect > dstAspect {
			h = dstH
			w = h * srcAspect
		} else {
			w = dstW
			h = w / srcAspect
		}
	default: // FitMeet
		if srcAspect > dstAspect {
			w = dstW
			h = w / srcAspect
		} else {
			h = dstH
			w = h * srcAspect
		}
	}

	x, y = alignOffset(w, h, dstW, dstH, align)
	return
}

func alignOffset(w, h, dstW, dstH float64, align Alignment) (x, y float64) {
	switch align {
	case AlignTopLeft:
		return 0, 0
	case AlignTop:
		return (dstW - w) / 2, 0
	case AlignTopRight:
		return dstW - w, 0
	case AlignLeft:
		return 0, (dstH - h) / 2
	case AlignRight:
		return dstW - w, (dstH - h) / 2
	case AlignBottomLeft:
		return 0, dstH - h
	case AlignBottom:
		return (dstW - w) / 2, dstH - h
	case AlignBottomRight:
		return dstW - w, dstH - h
	default: // AlignCenter
		return (dstW - w) / 2, (dstH - h) / 2
	}
}
