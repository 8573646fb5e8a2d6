package geometry

import "math"

// PointF is a 2-D point in device pixel units.
type PointF struct {
	X, Y float64
}

func (p PointF) Add(q PointF) PointF { return PointF{p.X + q.X, p.Y + q.Y} }
func (p PointF) Sub(q PointF) PointF { return PointF{p.X - q.X, p.Y - q.Y} }
func (p PointF) Scale(s float64) PointF { return PointF{p.X * s, p.Y * s} }
func (p PointF) Dist(q PointF) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func lerpPoint(t float64, p, q PointF) PointF {
	return PointF{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// SegmentKind tags which field of Segment is populated.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Segment is one instruction in a Path.
type Segment struct {
	Kind SegmentKind
	// P is the destination point for MoveTo/LineTo/QuadTo/CubicTo.
	P PointF
	// Ctrl is the control point for QuadTo.
	Ctrl PointF
	// C1, C2 are the control points for CubicTo.
	C1, C2 PointF
}

// Path is an ordered list of segments, mirroring the spec's
// MoveTo/LineTo/QuadTo/CubicTo/Close vocabulary.
type Path struct {
	Segments []Segment
	pen      PointF
	first    PointF
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

func (p *Path) MoveTo(pt PointF) *Path {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, P: pt})
	p.pen, p.first = pt, pt
	return p
}

func (p *Path) LineTo(pt PointF) *Path {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, P: pt})
	p.pen = pt
	return p
}

func (p *Path) QuadTo(ctrl, pt PointF) *Path {
	p.Segments = append(p.Segments, Segment{Kind: QuadTo, Ctrl: ctrl, P: pt})
	p.pen = pt
	return p
}

func (p *Path) CubicTo(c1, c2, pt PointF) *Path {
	p.Segments = append(p.Segments, Segment{Kind: CubicTo, C1: c1, C2: c2, P: pt})
	p.pen = pt
	return p
}

func (p *Path) ClosePath() *Path {
	p.Segments = append(p.Segments, Segment{Kind: Close})
	p.pen = p.first
	return p
}

// Pen returns the path's current pen position.
func (p *Path) Pen() PointF { return p.pen }

// RectPath returns a closed rectangular Path, a convenience matching the
// spec's Area::rect helper used throughout the scenario tests.
func RectPath(min, max PointF) *Path {
	p := NewPath()
	p.MoveTo(min)
	p.LineTo(PointF{max.X, min.Y})
	p.LineTo(max)
	p.LineTo(PointF{min.X, max.Y})
	p.ClosePath()
	return p
}

// devSquared measures how curvy a->b->c is, the same heuristic
// golang.org/x/image/vector's Rasterizer uses to decide subdivision depth.
func devSquared(a, b, c PointF) float64 {
	devx := a.X - 2*b.X + c.X
	devy := a.Y - 2*b.Y + c.Y
	return devx*devx + devy*devy
}

// Flatten converts the path to a polyline such that no flattened segment
// deviates from the true curve by more than tolerance pixels. MoveTo starts
// a new subpath; the return value is the concatenation of all subpaths'
// vertices in order; per-subpath boundaries are not marked in the result.
func (p *Path) Flatten(tolerance float64) []PointF {
	var out []PointF
	var pen, first PointF
	emit := func(pt PointF) {
		if len(out) == 0 || out[len(out)-1] != pt {
			out = append(out, pt)
		}
	}

	for _, seg := range p.Segments {
		switch seg.Kind {
		case MoveTo:
			pen, first = seg.P, seg.P
			emit(pen)
		case LineTo:
			pen = seg.P
			emit(pen)
		case QuadTo:
			flattenQuad(pen, seg.Ctrl, seg.P, tolerance, emit)
			pen = seg.P
		case CubicTo:
			flattenCubic(pen, seg.C1, seg.C2, seg.P, tolerance, emit)
			pen = seg.P
		case Close:
			pen = first
			emit(pen)
		}
	}
	return out
}

func flattenQuad(a, b, c PointF, tolerance float64, emit func(PointF)) {
	devsq := devSquared(a, b, c)
	if devsq < tolerance {
		emit(c)
		return
	}
	n := 1 + int(math.Sqrt(math.Sqrt(3*devsq/tolerance)))
	nInv := 1 / float64(n)
	for i := 1; i < n; i++ {
		t := float64(i) * nInv
		ab := lerpPoint(t, a, b)
		bc := lerpPoint(t, b, c)
		emit(lerpPoint(t, ab, bc))
	}
	emit(c)
}

func flattenCubic(a, b, c, d PointF, tolerance float64, emit func(PointF)) {
	devsq := devSquared(a, b, d)
	if alt := devSquared(a, c, d); alt > devsq {
		devsq = alt
	}
	if devsq < tolerance {
		emit(d)
		return
	}
	n := 1 + int(math.Sqrt(math.Sqrt(3*devsq/tolerance)))
	nInv := 1 / float64(n)
	for i := 1; i < n; i++ {
		t := float64(i) * nInv
		ab := lerpPoint(t, a, b)
		bc := lerpPoint(t, b, c)
		cd := lerpPoint(t, c, d)
		abc := lerpPoint(t, ab, bc)
		bcd := lerpPoint(t, bc, cd)
		emit(lerpPoint(t, abc, bcd))
	}
	emit(d)
}

// Bounds returns the axis-aligned bounding box of the path's flattened
// vertices at a coarse tolerance (bounds don't need curve-accurate points).
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	pts := p.Flatten(0.5)
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = pts[0].X, pts[0].Y
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return
}

// ClosestTime returns the parametric position t∈[0,1] of the point on the
// flattened path nearest to (x,y): the fraction of total arc-length reached
// at the nearest projected point on the nearest segment. Used to
// parameterize linear gradients along a direction path.
func (p *Path) ClosestTime(x, y float64) float64 {
	pts := p.Flatten(0.5)
	if len(pts) < 2 {
		return 0
	}

	lengths := make([]float64, len(pts)-1)
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		lengths[i] = pts[i].Dist(pts[i+1])
		total += lengths[i]
	}
	if total == 0 {
		return 0
	}

	target := PointF{x, y}
	bestDist := math.Inf(1)
	bestArc := 0.0
	arc := 0.0

	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		segLen := lengths[i]
		var t float64
		if segLen > 0 {
			t = ((target.X-a.X)*(b.X-a.X) + (target.Y-a.Y)*(b.Y-a.Y)) / (segLen * segLen)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		proj := lerpPoint(t, a, b)
		d := proj.Dist(target)
		if d < bestDist {
			bestDist = d
			bestArc = arc + t*segLen
		}
		arc += segLen
	}

	result := bestArc / total
	if result < 0 {
		return 0
	}
	if result > 1 {
		return 1
	}
	return result
}
