package region

import (
	"context"
	"errors"
	"testing"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
)

func solidImage(w, h int, c pixel.Color) *pixel.Image {
	img, _ := pixel.NewFromColor(w, h, c)
	return img
}

func TestProcessAppliesOpOnlyInsideHardArea(t *testing.T) {
	img := solidImage(20, 20, pixel.Color{R: 0, G: 0, B: 0, A: 255})
	area := geometry.RectArea(geometry.PointF{X: 5, Y: 5}, geometry.PointF{X: 15, Y: 15}, 0)

	err := Process(context.Background(), img, Options{
		Area: area,
		Op: func(w *pixel.Image) error {
			w.MutPixels(func(px *[4]uint8) { px[0] = 255 })
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	inside, _ := img.GetPixel(10, 10)
	if inside.R != 255 {
		t.Errorf("inside area R = %d, want 255", inside.R)
	}
	outside, _ := img.GetPixel(1, 1)
	if outside.R != 0 {
		t.Errorf("outside area R = %d, want untouched 0", outside.R)
	}
}

func TestProcessFeatherBlendsAtBoundary(t *testing.T) {
	img := solidImage(40, 40, pixel.Color{R: 0, A: 255})
	area := geometry.RectArea(geometry.PointF{X: 10, Y: 10}, geometry.PointF{X: 30, Y: 30}, 8)

	err := Process(context.Background(), img, Options{
		Area: area,
		Op: func(w *pixel.Image) error {
			w.MutPixels(func(px *[4]uint8) { px[0] = 255 })
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	edge, _ := img.GetPixel(14, 20)
	if edge.R == 0 || edge.R == 255 {
		t.Errorf("feather band R = %d, want a value strictly between 0 and 255", edge.R)
	}
}

func TestProcessKernelPaddingDoesNotCropIntoOp(t *testing.T) {
	img := solidImage(20, 20, pixel.Color{A: 255})
	area := geometry.RectArea(geometry.PointF{X: 8, Y: 8}, geometry.PointF{X: 12, Y: 12}, 0)

	var sawWidth int
	err := Process(context.Background(), img, Options{
		Area:          area,
		KernelPadding: 3,
		Op: func(w *pixel.Image) error {
			sawWidth = w.Width
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	// area is 4px wide, padding adds 3px each side plus the +1 rounding
	// fudge: work rect should be noticeably wider than the bare area.
	if sawWidth < 10 {
		t.Errorf("work rect width = %d, want kernel padding to have widened it well past 4", sawWidth)
	}
}

func TestProcessDebugPaintsCoverageWithoutRunningOp(t *testing.T) {
	img := solidImage(20, 20, pixel.Color{R: 10, G: 20, B: 30, A: 255})
	area := geometry.RectArea(geometry.PointF{X: 5, Y: 5}, geometry.PointF{X: 15, Y: 15}, 0)

	called := false
	err := Process(context.Background(), img, Options{
		Area:  area,
		Debug: true,
		Op: func(w *pixel.Image) error {
			called = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if called {
		t.Error("Debug mode ran Op, want it skipped")
	}

	inside, _ := img.GetPixel(10, 10)
	if inside != (pixel.Color{R: 255, G: 0, B: 255, A: 255}) {
		t.Errorf("debug coverage inside = %+v, want opaque magenta", inside)
	}
}

func TestProcessMaskZeroBlocksOperation(t *testing.T) {
	img := solidImage(10, 10, pixel.Color{A: 255})
	mask, _ := pixel.NewFromColor(10, 10, pixel.Color{R: 0, G: 0, B: 0, A: 255})

	err := Process(context.Background(), img, Options{
		Mask: mask,
		Op: func(w *pixel.Image) error {
			w.MutPixels(func(px *[4]uint8) { px[0] = 255 })
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	c, _ := img.GetPixel(5, 5)
	if c.R != 0 {
		t.Errorf("R = %d, want 0 with a black (zero-weight) mask", c.R)
	}
}

func TestProcessMaskFullAllowsOperation(t *testing.T) {
	img := solidImage(10, 10, pixel.Color{A: 255})
	mask, _ := pixel.NewFromColor(10, 10, pixel.Color{R: 255, G: 255, B: 255, A: 255})

	err := Process(context.Background(), img, Options{
		Mask: mask,
		Op: func(w *pixel.Image) error {
			w.MutPixels(func(px *[4]uint8) { px[0] = 255 })
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	c, _ := img.GetPixel(5, 5)
	if c.R != 255 {
		t.Errorf("R = %d, want 255 with a white (full-weight) mask", c.R)
	}
}

func TestProcessDebugLeavesPixelsOutsideWorkRectUntouched(t *testing.T) {
	original := pixel.Color{R: 10, G: 20, B: 30, A: 255}
	img := solidImage(20, 20, original)
	area := geometry.RectArea(geometry.PointF{X: 5, Y: 5}, geometry.PointF{X: 15, Y: 15}, 0)

	err := Process(context.Background(), img, Options{Area: area, Debug: true})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	far, _ := img.GetPixel(0, 0)
	if far != original {
		t.Errorf("pixel outside work rect = %+v, want untouched %+v", far, original)
	}
}

func TestProcessNilImageReturnsError(t *testing.T) {
	if err := Process(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected an error for a nil image")
	}
}

func TestProcessRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := solidImage(4, 4, pixel.Color{A: 255})
	if err := Process(ctx, img, Options{}); err == nil {
		t.Fatal("expected Process to return the context's error")
	}
}

type fakeProvider struct {
	processed bool
	fail      bool
}

func TestProcessFallsBackToCPUWhenGPUProviderFails(t *testing.T) {
	fp := &fakeProvider{fail: true}
	Register(GpuCallback{
		ShouldProcess: func(OpKind, int, int) bool { return true },
		Process: func(OpKind, *pixel.Image) error {
			fp.processed = true
			return errors.New("simulated device failure")
		},
	})
	defer Clear()

	img := solidImage(10, 10, pixel.Color{A: 255})
	cpuRan := false
	err := Process(context.Background(), img, Options{
		Op: func(w *pixel.Image) error {
			cpuRan = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !fp.processed {
		t.Fatal("expected the GPU provider to have been consulted")
	}
	if !cpuRan {
		t.Error("expected CPU fallback to run after GPU provider failure")
	}
}

func TestProcessSkipsGPUWhenProviderDeclines(t *testing.T) {
	Register(GpuCallback{
		ShouldProcess: func(OpKind, int, int) bool { return false },
		Process: func(OpKind, *pixel.Image) error {
			t.Fatal("Process should not be called when ShouldProcess declines")
			return nil
		},
	})
	defer Clear()

	img := solidImage(10, 10, pixel.Color{A: 255})
	cpuRan := false
	err := Process(context.Background(), img, Options{
		Op: func(w *pixel.Image) error {
			cpuRan = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !cpuRan {
		t.Error("expected CPU path to run when provider declines")
	}
}
