package sable

import (
	"testing"

	"github.com/sable-img/sable/pixel"
)

func square(w, h, fillW, fillH int) *pixel.Image {
	img, _ := pixel.New(w, h)
	ox, oy := (w-fillW)/2, (h-fillH)/2
	for y := oy; y < oy+fillH; y++ {
		for x := ox; x < ox+fillW; x++ {
			img.SetPixel(x, y, pixel.Color{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestEffectListEmptyPaddingIsZero(t *testing.T) {
	var e EffectList
	l, tp, r, b := e.Padding()
	if l != 0 || tp != 0 || r != 0 || b != 0 {
		t.Errorf("padding = (%d,%d,%d,%d), want all zero", l, tp, r, b)
	}
}

func TestStrokeOutsidePadsBoundsBySize(t *testing.T) {
	e := EffectList{Stroke: &Stroke{Fill: pixel.Color{R: 255, A: 255}, Opacity: 1, Size: 10, Position: StrokeOutside}}
	l, tp, r, b := e.Padding()
	if l != 10 || tp != 10 || r != 10 || b != 10 {
		t.Errorf("padding = (%d,%d,%d,%d), want all 10", l, tp, r, b)
	}
}

func TestStrokeInsideAddsNoPadding(t *testing.T) {
	e := EffectList{Stroke: &Stroke{Fill: pixel.Color{R: 255, A: 255}, Opacity: 1, Size: 10, Position: StrokeInside}}
	l, tp, r, b := e.Padding()
	if l != 0 || tp != 0 || r != 0 || b != 0 {
		t.Errorf("inside-stroke padding = (%d,%d,%d,%d), want all zero", l, tp, r, b)
	}
}

func TestApplyWithNoEffectsReturnsSourceUnchanged(t *testing.T) {
	var e EffectList
	src := square(20, 20, 10, 10)
	out, ox, oy, err := e.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != src || ox != 0 || oy != 0 {
		t.Error("expected Apply with no effects to return src unchanged at offset (0,0)")
	}
}

func TestApplyOutsideStrokeGrowsCanvasAndPlacesContent(t *testing.T) {
	e := EffectList{Stroke: &Stroke{Fill: pixel.Color{B: 255, A: 255}, Opacity: 1, Size: 5, Position: StrokeOutside}}
	src := square(20, 20, 10, 10)

	out, ox, oy, err := e.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Width != 30 || out.Height != 30 {
		t.Fatalf("canvas size = %dx%d, want 30x30", out.Width, out.Height)
	}
	if ox != 5 || oy != 5 {
		t.Fatalf("content offset = (%d,%d), want (5,5)", ox, oy)
	}

	center, _ := out.GetPixel(15, 15)
	if center.R != 255 {
		t.Errorf("center pixel R = %d, want the original content's 255", center.R)
	}
}

func TestApplyStrokeOutsidePaintsRingAroundSilhouette(t *testing.T) {
	e := EffectList{Stroke: &Stroke{Fill: pixel.Color{B: 255, A: 255}, Opacity: 1, Size: 3, Position: StrokeOutside}}
	src := square(20, 20, 10, 10)

	out, ox, oy, err := e.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// the silhouette's left edge sits at ox+5; 2px outside it is within
	// the stroke's 3px reach but still outside the filled square.
	edge, _ := out.GetPixel(ox+3, oy+10)
	if edge.B == 0 {
		t.Error("expected the stroke fill just outside the silhouette")
	}
}

func TestDropShadowPaddingRoundsOffsetAndExcludesSpread(t *testing.T) {
	e := EffectList{DropShadow: &DropShadow{
		Fill: pixel.Color{A: 255}, BlendMode: BlendNormal, Opacity: 1,
		AngleDeg: 45, Distance: 20, Spread: 0.5, Size: 12,
	}}
	left, top, right, bottom := e.Padding()
	if right != 26 || bottom != 26 {
		t.Errorf("padding right,bottom = %d,%d, want 26,26 (round(20*cos(45))+12)", right, bottom)
	}
	if left != 12 || top != 12 {
		t.Errorf("padding left,top = %d,%d, want 12,12 (max(0,-offset)+size)", left, top)
	}
}

func TestDropShadowOffsetsByAngleAndDistance(t *testing.T) {
	e := EffectList{DropShadow: &DropShadow{
		Fill: pixel.Color{A: 255}, BlendMode: BlendNormal, Opacity: 1,
		AngleDeg: 0, Distance: 10, Spread: 1, Size: 0,
	}}
	src := square(20, 20, 10, 10)
	out, ox, oy, err := e.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// the 10x10 silhouette sits at (ox+5,oy+5)-(ox+15,oy+15); at angle 0
	// distance 10 the shadow shifts to (ox+15,oy+5)-(ox+25,oy+15), so a
	// point in that band but outside the silhouette should be shadowed.
	p, _ := out.GetPixel(ox+19, oy+10)
	if p.A == 0 {
		t.Error("expected a drop shadow to the right of the silhouette at angle 0")
	}
}
