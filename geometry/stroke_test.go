package geometry

import "testing"

func TestStrokeOpenLineProducesClosedRibbon(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{100, 0})

	outline := p.Stroke(StrokeStyle{Width: 10, Join: JoinMiter, Cap: CapButt}, 0.1)
	if len(outline.Segments) == 0 {
		t.Fatal("expected a non-empty stroked outline")
	}

	minX, minY, maxX, maxY := outline.Bounds()
	if minY > -4.9 || maxY < 4.9 {
		t.Errorf("stroked ribbon bounds y=[%v,%v], want to span roughly [-5,5]", minY, maxY)
	}
	if minX > 0.1 || maxX < 99.9 {
		t.Errorf("stroked ribbon bounds x=[%v,%v], want to span roughly [0,100]", minX, maxX)
	}
}

func TestStrokeClosedRectExpandsOutward(t *testing.T) {
	rect := RectPath(PointF{10, 10}, PointF{20, 20})
	outline := rect.Stroke(StrokeStyle{Width: 4, Join: JoinBevel}, 0.1)

	minX, minY, maxX, maxY := outline.Bounds()
	if minX > 8.1 || minY > 8.1 || maxX < 21.9 || maxY < 21.9 {
		t.Errorf("stroked rect bounds = (%v,%v,%v,%v), want roughly (8,8,22,22)", minX, minY, maxX, maxY)
	}
}

func TestStrokeZeroWidthIsEmpty(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{10, 0})

	outline := p.Stroke(StrokeStyle{Width: 0}, 0.1)
	if len(outline.Segments) != 0 {
		t.Errorf("expected an empty outline for zero-width stroke, got %d segments", len(outline.Segments))
	}
}

func TestStrokeRoundCapExtendsBeyondEndpoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{50, 0})

	outline := p.Stroke(StrokeStyle{Width: 10, Cap: CapRound}, 0.1)
	minX, _, maxX, _ := outline.Bounds()
	if minX > -4.9 || maxX < 54.9 {
		t.Errorf("round cap bounds x=[%v,%v], want to extend ~5px past each endpoint", minX, maxX)
	}
}
