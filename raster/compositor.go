package raster

import "github.com/sable-img/sable/pixel"

// Compositor blends a shader's source color onto an existing destination
// pixel, given the fractional coverage computed by the rasterizer's sample
// grid. Coverage and the shader's own alpha are independent: coverage says
// how much of the sample area the shape touched, alpha says how opaque the
// shader's paint is at that point.
type Compositor interface {
	Composite(dst pixel.Color, src pixel.Color, coverage float64) pixel.Color
}

// SourceOverCompositor implements the standard Porter-Duff "source over"
// rule, the same alpha-compositing formula imop/composite.go's InitOp
// applies before running a blend mode: result = src*srcA*cov + dst*(1-srcA*cov).
type SourceOverCompositor struct{}

func (SourceOverCompositor) Composite(dst, src pixel.Color, coverage float64) pixel.Color {
	srcA := float64(src.A) / 255 * clamp01(coverage)
	if srcA <= 0 {
		return dst
	}
	if srcA >= 1 {
		return pixel.Color{R: src.R, G: src.G, B: src.B, A: 255}
	}

	dr, dg, db, da := dst.RGBf()
	sr, sg, sb, _ := src.RGBf()

	outA := srcA + da*(1-srcA)
	if outA <= 0 {
		return pixel.Color{}
	}
	r := (sr*srcA + dr*da*(1-srcA)) / outA
	g := (sg*srcA + dg*da*(1-srcA)) / outA
	b := (sb*srcA + db*da*(1-srcA)) / outA

	return pixel.Color{
		R: to8(r), G: to8(g), B: to8(b), A: to8(outA),
	}
}

// OverwriteCompositor replaces the destination outright wherever coverage
// is nonzero, ignoring destination alpha entirely — used for operations
// that must not blend (e.g. painting a hard mask preview).
type OverwriteCompositor struct{}

func (OverwriteCompositor) Composite(dst, src pixel.Color, coverage float64) pixel.Color {
	if coverage <= 0 {
		return dst
	}
	if coverage >= 1 {
		return src
	}
	dr, dg, db, da := dst.RGBf()
	sr, sg, sb, sa := src.RGBf()
	t := coverage
	return pixel.Color{
		R: to8(dr + (sr-dr)*t),
		G: to8(dg + (sg-dg)*t),
		B: to8(db + (sb-db)*t),
		A: to8(da + (sa-da)*t),
	}
}

func to8(v float64) uint8 {
	v = clamp01(v)
	return uint8(v*255 + 0.5)
}
