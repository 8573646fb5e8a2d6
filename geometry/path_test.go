package geometry

import "testing"

func TestFlattenLineSegmentsUnchanged(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{10, 0})
	p.LineTo(PointF{10, 10})

	pts := p.Flatten(0.1)
	want := []PointF{{0, 0}, {10, 0}, {10, 10}}
	if len(pts) != len(want) {
		t.Fatalf("Flatten = %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestFlattenQuadraticStaysWithinTolerance(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.QuadTo(PointF{50, 100}, PointF{100, 0})

	pts := p.Flatten(0.01)
	if len(pts) < 3 {
		t.Fatalf("expected a multi-point flattening of a curved quad, got %v", pts)
	}
	if pts[0] != (PointF{0, 0}) || pts[len(pts)-1] != (PointF{100, 0}) {
		t.Errorf("flattened endpoints = %v .. %v, want (0,0)..(100,0)", pts[0], pts[len(pts)-1])
	}
}

func TestBoundsOfRectPath(t *testing.T) {
	p := RectPath(PointF{1, 2}, PointF{11, 22})
	minX, minY, maxX, maxY := p.Bounds()
	if minX != 1 || minY != 2 || maxX != 11 || maxY != 22 {
		t.Errorf("Bounds = (%v,%v,%v,%v), want (1,2,11,22)", minX, minY, maxX, maxY)
	}
}

func TestClosestTimeAtMidpoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{100, 0})

	tm := p.ClosestTime(50, 5)
	if !approxEqFloat(tm, 0.5, 0.02) {
		t.Errorf("ClosestTime = %v, want ~0.5", tm)
	}
}

func TestClosestTimeClampsAtEnds(t *testing.T) {
	p := NewPath()
	p.MoveTo(PointF{0, 0})
	p.LineTo(PointF{100, 0})

	if tm := p.ClosestTime(-50, 0); tm != 0 {
		t.Errorf("ClosestTime before start = %v, want 0", tm)
	}
	if tm := p.ClosestTime(500, 0); tm != 1 {
		t.Errorf("ClosestTime past end = %v, want 1", tm)
	}
}

func approxEqFloat(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
