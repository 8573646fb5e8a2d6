package raster

import (
	"math"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
)

// Shader answers "what color belongs at this point", independent of
// whether the point ends up covered by the mask.
type Shader interface {
	ColorAt(x, y float64) pixel.Color
}

// SolidShader paints a single flat color everywhere.
type SolidShader struct {
	Color pixel.Color
}

func (s SolidShader) ColorAt(x, y float64) pixel.Color { return s.Color }

// LinearGradientShader paints pixel.Gradient colors along the direction
// defined by a two-point axis (From -> To); points are projected onto the
// axis and parameterized in [0,1] the same way geometry.Path.ClosestTime
// parameterizes a point along a path.
type LinearGradientShader struct {
	From, To geometry.PointF
	Gradient pixel.Gradient
}

func (s LinearGradientShader) ColorAt(x, y float64) pixel.Color {
	axis := s.To.Sub(s.From)
	lenSq := axis.X*axis.X + axis.Y*axis.Y
	if lenSq == 0 {
		return s.Gradient.ColorAt(0)
	}
	p := geometry.PointF{X: x, Y: y}.Sub(s.From)
	t := (p.X*axis.X + p.Y*axis.Y) / lenSq
	return s.Gradient.ColorAt(t)
}

// RadialGradientShader paints pixel.Gradient colors by distance from
// Center, normalized by Radius.
type RadialGradientShader struct {
	Center   geometry.PointF
	Radius   float64
	Gradient pixel.Gradient
}

func (s RadialGradientShader) ColorAt(x, y float64) pixel.Color {
	if s.Radius <= 0 {
		return s.Gradient.ColorAt(0)
	}
	dist := math.Hypot(x-s.Center.X, y-s.Center.Y)
	return s.Gradient.ColorAt(dist / s.Radius)
}

// ImageShader samples a pixel.Image, anchored so that image-space (0,0)
// sits at OriginX, OriginY in shader space. Out-of-bounds samples return
// transparent black, matching pixel.Image.GetPixel's bounds-checked read.
type ImageShader struct {
	Image             *pixel.Image
	OriginX, OriginY  float64
}

func (s ImageShader) ColorAt(x, y float64) pixel.Color {
	if s.Image == nil {
		return pixel.Color{}
	}
	ix := int(math.Round(x - s.OriginX))
	iy := int(math.Round(y - s.OriginY))
	c, ok := s.Image.GetPixel(ix, iy)
	if !ok {
		return pixel.Color{}
	}
	return c
}

// BrushShader paints a solid color whose alpha is scaled by a
// BrushCoverageMask's own falloff, letting a stroke brush carry color and
// softness together without a second coverage pass at composite time.
type BrushShader struct {
	Color pixel.Color
	Brush BrushCoverageMask
}

func (s BrushShader) ColorAt(x, y float64) pixel.Color {
	a := s.Brush.CoverageAt(x, y)
	return pixel.Color{
		R: s.Color.R,
		G: s.Color.G,
		B: s.Color.B,
		A: uint8(math.Round(float64(s.Color.A) * a)),
	}
}

// StrokeBrushShader samples along a path's stroke centerline, holding a
// constant-width soft brush at every point of the flattened stroke. It is
// the shader half of geometry.Path.Stroke's hardness-controlled falloff
// described for component C's brush strokes.
type StrokeBrushShader struct {
	Centerline []geometry.PointF
	Width      float64
	Hardness   float64
	Color      pixel.Color
}

func (s StrokeBrushShader) ColorAt(x, y float64) pixel.Color {
	if len(s.Centerline) == 0 || s.Width <= 0 {
		return pixel.Color{}
	}
	best := math.Inf(1)
	for i := 0; i < len(s.Centerline)-1; i++ {
		d := segmentDistance(s.Centerline[i], s.Centerline[i+1], x, y)
		if d < best {
			best = d
		}
	}
	if len(s.Centerline) == 1 {
		best = s.Centerline[0].Dist(geometry.PointF{X: x, Y: y})
	}

	mask := BrushCoverageMask{Radius: s.Width / 2, Hardness: s.Hardness}
	coverage := mask.coverageAtDistance(best)
	return pixel.Color{
		R: s.Color.R,
		G: s.Color.G,
		B: s.Color.B,
		A: uint8(math.Round(float64(s.Color.A) * coverage)),
	}
}

func (m BrushCoverageMask) coverageAtDistance(dist float64) float64 {
	if m.Radius <= 0 || dist >= m.Radius {
		return 0
	}
	hardness := clamp01(m.Hardness)
	innerRadius := m.Radius * hardness
	if dist <= innerRadius || innerRadius >= m.Radius {
		return 1
	}
	t := clamp01((dist - innerRadius) / (m.Radius - innerRadius))
	return 1 - t*t*(3-2*t)
}

func segmentDistance(a, b geometry.PointF, x, y float64) float64 {
	p := geometry.PointF{X: x, Y: y}
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

// FillFeatherShader wraps another shader, scaling its output alpha by a
// geometry.Area's own feathered coverage. This lets a filled area's
// feather ramp be expressed purely as a shader, for callers that want to
// paint coverage directly without going through a Rasterizer's mask stage.
type FillFeatherShader struct {
	Inner Shader
	Area  *geometry.Area
}

func (s FillFeatherShader) ColorAt(x, y float64) pixel.Color {
	if s.Inner == nil || s.Area == nil {
		return pixel.Color{}
	}
	c := s.Inner.ColorAt(x, y)
	coverage := s.Area.Coverage(x, y)
	return pixel.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * coverage))}
}
