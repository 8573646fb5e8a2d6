package raster

import (
	"testing"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
)

func TestLinearGradientShaderEndpoints(t *testing.T) {
	grad := pixel.NewGradient(
		pixel.GradientStop{Color: pixel.Color{R: 255, A: 255}, Time: 0},
		pixel.GradientStop{Color: pixel.Color{B: 255, A: 255}, Time: 1},
	)
	shader := LinearGradientShader{
		From:     geometry.PointF{X: 0, Y: 0},
		To:       geometry.PointF{X: 100, Y: 0},
		Gradient: grad,
	}

	start := shader.ColorAt(0, 0)
	end := shader.ColorAt(100, 0)
	if start.R != 255 {
		t.Errorf("gradient start = %+v, want R=255", start)
	}
	if end.B != 255 {
		t.Errorf("gradient end = %+v, want B=255", end)
	}
}

func TestImageShaderSamplesWithOrigin(t *testing.T) {
	img, _ := pixel.New(2, 2)
	img.SetPixel(1, 1, pixel.Color{R: 9, A: 255})

	shader := ImageShader{Image: img, OriginX: 10, OriginY: 10}
	c := shader.ColorAt(11, 11)
	if c.R != 9 {
		t.Errorf("ImageShader sampled %+v, want R=9 at offset (1,1)", c)
	}
}

func TestImageShaderOutOfBoundsIsTransparent(t *testing.T) {
	img, _ := pixel.New(2, 2)
	shader := ImageShader{Image: img}
	c := shader.ColorAt(100, 100)
	if c.A != 0 {
		t.Errorf("out-of-bounds ImageShader sample = %+v, want transparent", c)
	}
}

func TestFillFeatherShaderScalesAlphaByCoverage(t *testing.T) {
	area := geometry.RectArea(geometry.PointF{X: 0, Y: 0}, geometry.PointF{X: 10, Y: 10}, 5)
	shader := FillFeatherShader{Inner: SolidShader{Color: pixel.Color{R: 255, A: 255}}, Area: area}

	deepInside := shader.ColorAt(5, 5)
	farOutside := shader.ColorAt(-50, 5)
	if deepInside.A != 255 {
		t.Errorf("deep inside alpha = %d, want 255", deepInside.A)
	}
	if farOutside.A != 0 {
		t.Errorf("far outside alpha = %d, want 0", farOutside.A)
	}
}
