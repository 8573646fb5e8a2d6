package raster

import (
	"testing"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
)

func TestRasterizeFillsSolidRect(t *testing.T) {
	img, _ := pixel.New(20, 20)
	area := geometry.RectArea(geometry.PointF{X: 5, Y: 5}, geometry.PointF{X: 15, Y: 15}, 0)

	rz := NewRasterizer(PolygonCoverage{Area: area}, SolidShader{Color: pixel.Color{R: 255, A: 255}}, SourceOverCompositor{})
	rz.Rasterize(img, 0, 0, 20, 20)

	inside, _ := img.GetPixel(10, 10)
	if inside.R != 255 || inside.A != 255 {
		t.Errorf("inside pixel = %+v, want opaque red", inside)
	}
	outside, _ := img.GetPixel(1, 1)
	if outside.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", outside)
	}
}

func TestRasterizeAntiAliasesEdge(t *testing.T) {
	img, _ := pixel.New(20, 20)
	area := geometry.RectArea(geometry.PointF{X: 0, Y: 0}, geometry.PointF{X: 10.5, Y: 20}, 0)

	rz := NewRasterizer(PolygonCoverage{Area: area}, SolidShader{Color: pixel.Color{R: 255, A: 255}}, SourceOverCompositor{})
	rz.Rasterize(img, 0, 0, 20, 20)

	edge, _ := img.GetPixel(10, 10)
	if edge.A == 0 || edge.A == 255 {
		t.Errorf("edge pixel alpha = %d, want a partial value from supersampling", edge.A)
	}
}

func TestRasterizeClipsToDestinationBounds(t *testing.T) {
	img, _ := pixel.New(4, 4)
	rz := NewRasterizer(FullCoverage{}, SolidShader{Color: pixel.Color{G: 255, A: 255}}, SourceOverCompositor{})
	rz.Rasterize(img, -5, -5, 100, 100) // should not panic, should clip

	c, _ := img.GetPixel(0, 0)
	if c.G != 255 {
		t.Errorf("clipped rasterize left corner unpainted: %+v", c)
	}
}

func TestOverwriteCompositorIgnoresDestinationAlpha(t *testing.T) {
	c := OverwriteCompositor{}.Composite(pixel.Color{R: 10, A: 10}, pixel.Color{B: 200, A: 200}, 1)
	if c.B != 200 || c.A != 200 {
		t.Errorf("OverwriteCompositor at full coverage = %+v, want source verbatim", c)
	}
}

func TestBrushCoverageMaskFalloff(t *testing.T) {
	m := BrushCoverageMask{CenterX: 0, CenterY: 0, Radius: 10, Hardness: 0.5}
	center := m.CoverageAt(0, 0)
	edge := m.CoverageAt(9.9, 0)
	outside := m.CoverageAt(20, 0)

	if center != 1 {
		t.Errorf("center coverage = %v, want 1", center)
	}
	if edge <= 0 || edge >= 1 {
		t.Errorf("near-edge coverage = %v, want strictly between 0 and 1", edge)
	}
	if outside != 0 {
		t.Errorf("outside coverage = %v, want 0", outside)
	}
}
