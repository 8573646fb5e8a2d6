package sable

import (
	"testing"

	"github.com/sable-img/sable/pixel"
)

func TestGrayscaleEqualizesChannels(t *testing.T) {
	img, _ := pixel.NewFromColor(2, 2, pixel.Color{R: 200, G: 100, B: 50, A: 255})
	if err := Grayscale(img); err != nil {
		t.Fatalf("Grayscale: %v", err)
	}
	c, _ := img.GetPixel(0, 0)
	if c.R != c.G || c.G != c.B {
		t.Errorf("grayscale pixel = %+v, want R==G==B", c)
	}
	if c.A != 255 {
		t.Errorf("alpha = %d, want untouched 255", c.A)
	}
}

func TestContrastAtFiftyMatchesKnownValue(t *testing.T) {
	img, _ := pixel.NewFromColor(1, 1, pixel.Color{R: 100, G: 100, B: 100, A: 255})
	op := Contrast(50)
	if err := op(img); err != nil {
		t.Fatalf("Contrast: %v", err)
	}
	c, _ := img.GetPixel(0, 0)
	// factor = 259*(50+255) / (255*(259-50)) ~= 1.482; round(1.482*(100-128)+128) = 86
	if c.R != 86 {
		t.Errorf("contrast(50) on 100 = %d, want 86", c.R)
	}
}

func TestContrastZeroIsIdentity(t *testing.T) {
	img, _ := pixel.NewFromColor(1, 1, pixel.Color{R: 77, G: 150, B: 220, A: 255})
	op := Contrast(0)
	if err := op(img); err != nil {
		t.Fatalf("Contrast: %v", err)
	}
	c, _ := img.GetPixel(0, 0)
	if c.R != 77 || c.G != 150 || c.B != 220 {
		t.Errorf("contrast(0) = %+v, want unchanged", c)
	}
}

func TestEdgeDetectFindsVerticalBoundary(t *testing.T) {
	img, _ := pixel.New(6, 6)
	for y := 0; y < 6; y++ {
		for x := 3; x < 6; x++ {
			img.SetPixel(x, y, pixel.Color{R: 255, G: 255, B: 255, A: 255})
		}
	}
	op := EdgeDetect(50)
	if err := op(img); err != nil {
		t.Fatalf("EdgeDetect: %v", err)
	}
	edge, _ := img.GetPixel(3, 3)
	if edge.R == 0 {
		t.Error("expected a nonzero edge response at the black/white boundary")
	}
	flat, _ := img.GetPixel(0, 0)
	if flat.R != 0 {
		t.Errorf("flat region response = %d, want 0", flat.R)
	}
}

func TestBlurSmoothsASharpBoundary(t *testing.T) {
	img, _ := pixel.New(20, 20)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.SetPixel(x, y, pixel.Color{R: 255, G: 255, B: 255, A: 255})
		}
	}
	op := Blur(4)
	if err := op(img); err != nil {
		t.Fatalf("Blur: %v", err)
	}
	c, _ := img.GetPixel(10, 10)
	if c.R == 0 || c.R == 255 {
		t.Errorf("blurred boundary R = %d, want a value strictly between 0 and 255", c.R)
	}
}
