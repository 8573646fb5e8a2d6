package sable

import (
	"testing"

	"github.com/sable-img/sable/pixel"
)

func TestAddLayerFromColorAppendsToTop(t *testing.T) {
	c := NewCanvas("scene", 10, 10)
	l, err := c.AddLayerFromColor("red", 10, 10, pixel.Color{R: 255, A: 255}, DefaultLayerOptions())
	if err != nil {
		t.Fatalf("AddLayerFromColor: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if l.ZOrder() != 0 {
		t.Errorf("ZOrder() = %d, want 0", l.ZOrder())
	}
}

func TestMoveUpAndDownSwapZOrder(t *testing.T) {
	c := NewCanvas("scene", 10, 10)
	c.AddLayerFromColor("a", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())
	c.AddLayerFromColor("b", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())

	if err := c.MoveUp(0); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	if c.Layers()[1].Name != "a" {
		t.Errorf("top layer = %q, want %q", c.Layers()[1].Name, "a")
	}
	if err := c.MoveDown(1); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	if c.Layers()[0].Name != "a" {
		t.Errorf("bottom layer = %q, want %q", c.Layers()[0].Name, "a")
	}
}

func TestMoveToTopAndBottom(t *testing.T) {
	c := NewCanvas("scene", 10, 10)
	c.AddLayerFromColor("a", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())
	c.AddLayerFromColor("b", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())
	c.AddLayerFromColor("c", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())

	if err := c.MoveToBottom(2); err != nil {
		t.Fatalf("MoveToBottom: %v", err)
	}
	if c.Layers()[0].Name != "c" {
		t.Errorf("bottom layer after MoveToBottom = %q, want %q", c.Layers()[0].Name, "c")
	}
	if err := c.MoveToTop(0); err != nil {
		t.Fatalf("MoveToTop: %v", err)
	}
	if c.Layers()[2].Name != "c" {
		t.Errorf("top layer after MoveToTop = %q, want %q", c.Layers()[2].Name, "c")
	}
}

func TestDeleteByNameRemovesFirstMatch(t *testing.T) {
	c := NewCanvas("scene", 10, 10)
	c.AddLayerFromColor("x", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())
	c.AddLayerFromColor("y", 10, 10, pixel.Color{A: 255}, DefaultLayerOptions())

	if err := c.DeleteByName("x"); err != nil {
		t.Fatalf("DeleteByName: %v", err)
	}
	if c.Len() != 1 || c.Layers()[0].Name != "y" {
		t.Fatalf("layers after delete = %+v, want only %q", c.Layers(), "y")
	}
}

func TestDeleteByIDUnknownReturnsError(t *testing.T) {
	c := NewCanvas("scene", 10, 10)
	if err := c.DeleteByID(999); err == nil {
		t.Fatal("expected an error deleting an unknown id")
	}
}

func TestAddCanvasRejectsCycle(t *testing.T) {
	parent := NewCanvas("parent", 10, 10)
	child := NewCanvas("child", 5, 5)
	if err := parent.AddCanvas(child, 0, 0, Anchor{Kind: AnchorTopLeft}, 0); err != nil {
		t.Fatalf("AddCanvas: %v", err)
	}
	if err := child.AddCanvas(parent, 0, 0, Anchor{Kind: AnchorTopLeft}, 0); err == nil {
		t.Fatal("expected adding an ancestor as a child to be rejected")
	}
}

func TestAddLayerFromImageSizeFitPreservesAspect(t *testing.T) {
	c := NewCanvas("scene", 100, 100)
	src, _ := pixel.NewFromColor(200, 100, pixel.Color{A: 255})
	opts := DefaultLayerOptions()
	opts.SizePolicy = SizeFit
	opts.TargetW, opts.TargetH = 100, 100

	l, err := c.AddLayerFromImage("wide", src, opts)
	if err != nil {
		t.Fatalf("AddLayerFromImage: %v", err)
	}
	img := l.Image()
	if img.Width != 100 || img.Height != 50 {
		t.Errorf("fit dimensions = %dx%d, want 100x50", img.Width, img.Height)
	}
}

func TestAddLayerFromImageSizeFillCropsToTarget(t *testing.T) {
	c := NewCanvas("scene", 100, 100)
	src, _ := pixel.NewFromColor(200, 100, pixel.Color{A: 255})
	opts := DefaultLayerOptions()
	opts.SizePolicy = SizeFill
	opts.TargetW, opts.TargetH = 100, 100

	l, err := c.AddLayerFromImage("wide", src, opts)
	if err != nil {
		t.Fatalf("AddLayerFromImage: %v", err)
	}
	img := l.Image()
	if img.Width != 100 || img.Height != 100 {
		t.Errorf("fill dimensions = %dx%d, want 100x100", img.Width, img.Height)
	}
}
