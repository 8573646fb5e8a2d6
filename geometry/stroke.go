package geometry

import "math"

// LineJoin selects how Stroke bridges the outer corner between two
// consecutive segments.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineCap selects how Stroke terminates an open subpath's two ends.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// StrokeStyle bundles the parameters Stroke needs beyond width.
type StrokeStyle struct {
	Width      float64
	Join       LineJoin
	Cap        LineCap
	MiterLimit float64 // ratio of miter length to width; 0 means default (4)
}

func normal(a, b PointF) PointF {
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return PointF{}
	}
	return PointF{-d.Y / length, d.X / length}
}

// Stroke expands the path into a new closed Path outlining its stroked
// silhouette at the given style, flattening curves at tolerance first. Each
// input subpath (as delimited by MoveTo) becomes one outline: a closed ring
// for closed subpaths, or a ribbon with end caps for open ones.
func (p *Path) Stroke(style StrokeStyle, tolerance float64) *Path {
	if style.Width <= 0 {
		return NewPath()
	}
	half := style.Width / 2
	limit := style.MiterLimit
	if limit <= 0 {
		limit = 4
	}

	out := NewPath()
	for _, sub := range p.subpaths() {
		pts := sub.path.Flatten(tolerance)
		pts = dedupe(pts)
		if len(pts) < 2 {
			continue
		}
		strokeSubpath(out, pts, sub.closed, half, style.Join, style.Cap, limit)
	}
	return out
}

func dedupe(pts []PointF) []PointF {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

type subpath struct {
	path   *Path
	closed bool
}

// subpaths splits p's segment list at each MoveTo into independent paths,
// recording whether each ends in Close.
func (p *Path) subpaths() []subpath {
	var out []subpath
	var cur *Path
	closed := false

	flush := func() {
		if cur != nil && len(cur.Segments) > 0 {
			out = append(out, subpath{path: cur, closed: closed})
		}
	}

	for _, seg := range p.Segments {
		switch seg.Kind {
		case MoveTo:
			flush()
			cur = NewPath()
			closed = false
			cur.MoveTo(seg.P)
		case Close:
			closed = true
			if cur != nil {
				cur.ClosePath()
			}
		default:
			if cur == nil {
				cur = NewPath()
			}
			cur.Segments = append(cur.Segments, seg)
		}
	}
	flush()
	return out
}

func strokeSubpath(out *Path, pts []PointF, closed bool, half float64, join LineJoin, cap LineCap, miterLimit float64) {
	n := len(pts)
	if closed && pts[0] == pts[n-1] {
		pts = pts[:n-1]
		n = len(pts)
	}
	if n < 2 {
		return
	}

	left := offsetSide(pts, closed, half, join, miterLimit)
	right := offsetSide(reverse(pts), closed, half, join, miterLimit)

	out.MoveTo(left[0])
	for _, p := range left[1:] {
		out.LineTo(p)
	}

	if closed {
		out.ClosePath()
		out.MoveTo(right[0])
		for _, p := range right[1:] {
			out.LineTo(p)
		}
		out.ClosePath()
		return
	}

	appendCap(out, pts[n-1], normal(pts[n-2], pts[n-1]), half, cap)
	out.LineTo(right[0])
	for _, p := range right[1:] {
		out.LineTo(p)
	}
	appendCap(out, pts[0], normal(pts[1], pts[0]), half, cap)
	out.LineTo(left[0])
	out.ClosePath()
}

func reverse(pts []PointF) []PointF {
	out := make([]PointF, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// offsetSide walks pts and emits the polyline offset by half to the left of
// travel direction, inserting a join at each interior vertex (and, for
// closed paths, at the wrap-around vertex too).
func offsetSide(pts []PointF, closed bool, half float64, join LineJoin, miterLimit float64) []PointF {
	n := len(pts)
	var out []PointF

	segNormal := func(i int) PointF {
		j := i + 1
		if j >= n {
			j = 0
		}
		return normal(pts[i], pts[j])
	}

	start := 0
	end := n - 1
	if !closed {
		out = append(out, pts[0].Add(segNormal(0).Scale(half)))
		start = 0
		end = n - 2
	}

	for i := start; i <= end; i++ {
		nA := segNormal(i)
		j := i + 1
		if j >= n {
			j = 0
		}
		out = append(out, pts[j].Add(nA.Scale(half)))

		if closed || i != end {
			nB := segNormal(j)
			if nB != nA {
				appendJoin(&out, pts[j], nA, nB, half, join, miterLimit)
			}
		}
	}

	return out
}

func appendJoin(out *[]PointF, center PointF, nA, nB PointF, half float64, join LineJoin, miterLimit float64) {
	switch join {
	case JoinRound:
		appendArc(out, center, nA, nB, half)
	case JoinMiter:
		m, ok := miterPoint(center, nA, nB, half, miterLimit)
		if ok {
			*out = append(*out, m)
		} else {
			*out = append(*out, center.Add(nB.Scale(half)))
		}
	default: // JoinBevel
		*out = append(*out, center.Add(nB.Scale(half)))
	}
}

func miterPoint(center, nA, nB PointF, half, miterLimit float64) (PointF, bool) {
	bisector := PointF{nA.X + nB.X, nA.Y + nB.Y}
	blen := math.Hypot(bisector.X, bisector.Y)
	if blen < 1e-9 {
		return PointF{}, false
	}
	bisector = PointF{bisector.X / blen, bisector.Y / blen}

	cosHalfAngle := (nA.X*bisector.X + nA.Y*bisector.Y)
	if cosHalfAngle < 1e-6 {
		return PointF{}, false
	}
	miterLen := 1 / cosHalfAngle
	if miterLen > miterLimit {
		return PointF{}, false
	}
	return center.Add(bisector.Scale(half * miterLen)), true
}

func appendArc(out *[]PointF, center, nA, nB PointF, radius float64) {
	a0 := math.Atan2(nA.Y, nA.X)
	a1 := math.Atan2(nB.Y, nB.X)
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}

	const step = math.Pi / 12
	steps := int(math.Ceil(math.Abs(delta) / step))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		a := a0 + delta*float64(i)/float64(steps)
		*out = append(*out, PointF{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)})
	}
}

func appendCap(out *Path, center PointF, n PointF, half float64, cap LineCap) {
	switch cap {
	case CapRound:
		tangent := PointF{n.Y, -n.X}
		steps := 8
		for i := 1; i < steps; i++ {
			a := math.Pi * float64(i) / float64(steps)
			p := center.Add(n.Scale(half * math.Cos(a))).Add(tangent.Scale(half * math.Sin(a)))
			out.LineTo(p)
		}
	case CapSquare:
		tangent := PointF{n.Y, -n.X}
		p1 := center.Add(n.Scale(half)).Add(tangent.Scale(half))
		p2 := center.Add(n.Scale(-half)).Add(tangent.Scale(half))
		out.LineTo(p1)
		out.LineTo(p2)
	default: // CapButt
		// straight across; the following LineTo in the caller does the work
	}
}
