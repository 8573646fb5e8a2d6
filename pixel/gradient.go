package pixel

import "sort"

// GradientStop is one color anchored at a point along a gradient's run.
type GradientStop struct {
	Color Color
	Time  float64 // in [0,1]
}

// Gradient is an ordered sequence of color stops. ColorAt linearly
// interpolates between the two stops bracketing t, clamping to the nearest
// endpoint outside [stops[0].Time, stops[len-1].Time].
type Gradient struct {
	Stops []GradientStop
}

// NewGradient sorts stops by Time and returns the Gradient.
func NewGradient(stops ...GradientStop) Gradient {
	sorted := append([]GradientStop(nil), stops...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return Gradient{Stops: sorted}
}

// ColorAt returns the interpolated color at t.
func (g Gradient) ColorAt(t float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	if len(g.Stops) == 1 || t <= g.Stops[0].Time {
		return g.Stops[0].Color
	}
	last := g.Stops[len(g.Stops)-1]
	if t >= last.Time {
		return last.Color
	}

	for i := 1; i < len(g.Stops); i++ {
		lo, hi := g.Stops[i-1], g.Stops[i]
		if t <= hi.Time {
			span := hi.Time - lo.Time
			if span <= 0 {
				return hi.Color
			}
			local := (t - lo.Time) / span
			return lerpColor(lo.Color, hi.Color, local)
		}
	}
	return last.Color
}

// FillKind tags which variant of the Fill sum type is populated.
type FillKind int

const (
	FillSolid FillKind = iota
	FillGradient
	FillImage
)

// Fill is a sum type over the three ways a shape can be painted: a flat
// color, a gradient (optionally along a direction path, set by the
// rasterizer package since Fill itself doesn't depend on geometry), or an
// image.
type Fill struct {
	Kind     FillKind
	Solid    Color
	Gradient Gradient
	Image    *Image
}

// SolidFill constructs a Fill of kind FillSolid.
func SolidFill(c Color) Fill { return Fill{Kind: FillSolid, Solid: c} }

// GradientFill constructs a Fill of kind FillGradient.
func GradientFill(g Gradient) Fill { return Fill{Kind: FillGradient, Gradient: g} }

// ImageFill constructs a Fill of kind FillImage.
func ImageFill(img *Image) Fill { return Fill{Kind: FillImage, Image: img} }
