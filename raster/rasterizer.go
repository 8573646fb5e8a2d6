package raster

import (
	"github.com/sable-img/sable/internal/parallel"
	"github.com/sable-img/sable/pixel"
)

// Rasterizer ties a CoverageMask, Shader, and Compositor together and
// walks a destination image's pixels, accumulating per-pixel coverage over
// a SampleGrid the same way golang.org/x/image/vector accumulates
// sub-pixel area before writing out a single alpha value per pixel — except
// here each sample also carries its own shader color, since a gradient or
// image shader's color can vary within a single destination pixel.
type Rasterizer struct {
	Mask       CoverageMask
	Shader     Shader
	Compositor Compositor
	Grid       SampleGrid
}

// NewRasterizer builds a Rasterizer with the package's DefaultSampleGrid.
func NewRasterizer(mask CoverageMask, shader Shader, compositor Compositor) *Rasterizer {
	return &Rasterizer{Mask: mask, Shader: shader, Compositor: compositor, Grid: DefaultSampleGrid}
}

// Rasterize paints into dst across [minX,maxX) x [minY,maxY), clipped to
// dst's bounds. Each destination pixel accumulates Grid.SampleCount()
// mask-weighted samples into one coverage fraction and one averaged color,
// then composites once via Compositor.
func (r *Rasterizer) Rasterize(dst *pixel.Image, minX, minY, maxX, maxY int) {
	if dst == nil || r.Mask == nil || r.Shader == nil {
		return
	}
	compositor := r.Compositor
	if compositor == nil {
		compositor = SourceOverCompositor{}
	}

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > dst.Width {
		maxX = dst.Width
	}
	if maxY > dst.Height {
		maxY = dst.Height
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	offsets := r.Grid.Offsets()
	sampleCount := float64(len(offsets))

	parallel.Rows(maxY-minY, func(start, end int) {
		for py := minY + start; py < minY+end; py++ {
			for px := minX; px < maxX; px++ {
				r.rasterizePixel(dst, px, py, offsets, sampleCount, compositor)
			}
		}
	})
}

func (r *Rasterizer) rasterizePixel(dst *pixel.Image, px, py int, offsets []struct{ DX, DY float64 }, sampleCount float64, compositor Compositor) {
	var covSum float64
	var rSum, gSum, bSum, aSum float64

	for _, off := range offsets {
		x := float64(px) + off.DX
		y := float64(py) + off.DY
		cov := r.Mask.CoverageAt(x, y)
		if cov <= 0 {
			continue
		}
		c := r.Shader.ColorAt(x, y)
		cr, cg, cb, ca := c.RGBf()
		w := cov * ca
		rSum += cr * w
		gSum += cg * w
		bSum += cb * w
		aSum += w
		covSum += cov
	}

	if covSum <= 0 {
		return
	}

	avgCoverage := covSum / sampleCount
	var src pixel.Color
	if aSum > 0 {
		src = pixel.Color{
			R: to8(rSum / aSum),
			G: to8(gSum / aSum),
			B: to8(bSum / aSum),
			A: to8(aSum / sampleCount / avgCoverage),
		}
	}

	dstColor, _ := dst.GetPixel(px, py)
	dst.SetPixel(px, py, compositor.Composite(dstColor, src, avgCoverage))
}
