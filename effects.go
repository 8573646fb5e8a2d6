package sable

import (
	"math"

	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/utils"
)

// StrokePosition controls where an outline effect sits relative to a
// layer's alpha silhouette.
type StrokePosition int

const (
	StrokeInside StrokePosition = iota
	StrokeOutside
	StrokeCenter
)

// Stroke outlines a layer's non-transparent silhouette with a solid fill.
type Stroke struct {
	Fill     pixel.Color
	Opacity  float64
	Size     int
	Position StrokePosition
}

// DropShadow casts a blurred, offset copy of a layer's silhouette behind it.
// Spread is a fraction in [0,1] of Size: it dilates the silhouette before
// the blur, the way a CSS box-shadow spread grows a shape without itself
// adding to the shadow's reach.
type DropShadow struct {
	Fill      pixel.Color
	BlendMode BlendModeName
	Opacity   float64
	AngleDeg  float64
	Distance  float64
	Spread    float64
	Size      int
}

// EffectList holds the effects attached to a layer. Apply paints them in a
// fixed order regardless of the order fields are set here: the drop shadow
// first, cast from the layer's own alpha silhouette, then the stroke, then
// the layer content on top. The shadow does not include the stroke outline.
type EffectList struct {
	Stroke     *Stroke
	DropShadow *DropShadow
}

func (e EffectList) empty() bool { return e.Stroke == nil && e.DropShadow == nil }

// Padding returns how many extra pixels an effect-bearing layer's bounding
// box must grow by on each side (left, top, right, bottom) to contain every
// effect without clipping.
func (e EffectList) Padding() (left, top, right, bottom int) {
	if e.Stroke != nil && e.Stroke.Position != StrokeInside {
		s := e.Stroke.Size
		left, top, right, bottom = s, s, s, s
	}
	if e.DropShadow != nil {
		ds := e.DropShadow
		rad := ds.AngleDeg * math.Pi / 180
		dx := int(math.Round(ds.Distance * math.Cos(rad)))
		dy := int(math.Round(ds.Distance * math.Sin(rad)))
		grow := func(cur, extra int) int {
			if extra > cur {
				return extra
			}
			return cur
		}
		left = grow(left, utils.Max(0, -dx)+ds.Size)
		right = grow(right, utils.Max(0, dx)+ds.Size)
		top = grow(top, utils.Max(0, -dy)+ds.Size)
		bottom = grow(bottom, utils.Max(0, dy)+ds.Size)
	}
	return
}

// Apply renders src (a layer's own image, already composited with its
// opacity and blend mode is irrelevant here) into a larger canvas padded
// per Padding, painting DropShadow, then Stroke, then src itself, and returns
// the new image plus the (offsetX, offsetY) the original content now sits
// at within it.
func (e EffectList) Apply(src *pixel.Image) (out *pixel.Image, offsetX, offsetY int, err error) {
	if e.empty() {
		return src, 0, 0, nil
	}
	left, top, right, bottom := e.Padding()
	w, h := src.Width+left+right, src.Height+top+bottom
	canvas, err := pixel.New(w, h)
	if err != nil {
		return nil, 0, 0, err
	}

	if e.DropShadow != nil {
		paintDropShadow(canvas, src, *e.DropShadow, left, top)
	}

	contentX, contentY := left, top
	if e.Stroke != nil {
		strokeLayer, pad := renderStroke(src, *e.Stroke)
		canvas.CopyFromRect(strokeLayer, 0, 0, strokeLayer.Width, strokeLayer.Height, left-pad, top-pad)
	}
	canvas.MutPixelsWithPosition(func(x, y int, rgba *[4]uint8) {
		sx, sy := x-contentX, y-contentY
		if sx < 0 || sy < 0 || sx >= src.Width || sy >= src.Height {
			return
		}
		topColor, _ := src.GetPixel(sx, sy)
		under := pixel.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
		blended := sourceOver(under, topColor)
		rgba[0], rgba[1], rgba[2], rgba[3] = blended.R, blended.G, blended.B, blended.A
	})

	return canvas, contentX, contentY, nil
}

// renderStroke builds the stroke fill as its own image, padded by pad
// pixels on each side (0 for StrokeInside, s.Size otherwise, returned so
// the caller can place it correctly within a larger, asymmetrically
// padded effect canvas), by dilating the alpha silhouette and subtracting
// the un-dilated (Outside) or half-dilated (Center) interior.
func renderStroke(src *pixel.Image, s Stroke) (img *pixel.Image, pad int) {
	size := s.Size
	pad = size
	if s.Position == StrokeInside {
		pad = 0
	}
	w, h := src.Width+2*pad, src.Height+2*pad
	out, _ := pixel.New(w, h)

	alphaAt := func(x, y int) uint8 {
		sx, sy := x-pad, y-pad
		if sx < 0 || sy < 0 || sx >= src.Width || sy >= src.Height {
			return 0
		}
		c, _ := src.GetPixel(sx, sy)
		return c.A
	}

	dilated := dilateAlpha(w, h, size, alphaAt)
	var inner func(x, y int) bool
	switch s.Position {
	case StrokeInside:
		inner = func(x, y int) bool { return alphaAt(x, y) > 0 }
	case StrokeCenter:
		halfDilated := dilateAlpha(w, h, size/2, alphaAt)
		inner = func(x, y int) bool { return halfDilated[y*w+x] }
	default: // StrokeOutside
		inner = func(x, y int) bool { return alphaAt(x, y) > 0 }
	}

	fillA := uint8(float64(s.Fill.A) * clampOpacity(s.Opacity))
	out.MutPixelsWithPosition(func(x, y int, rgba *[4]uint8) {
		if !dilated[y*w+x] || inner(x, y) {
			return
		}
		rgba[0], rgba[1], rgba[2], rgba[3] = s.Fill.R, s.Fill.G, s.Fill.B, fillA
	})
	return out, pad
}

// dilateAlpha returns, for each pixel, whether any pixel within a circular
// radius of size has nonzero alpha, i.e. a round-brush morphological
// dilation of the alpha silhouette.
func dilateAlpha(w, h, size int, alphaAt func(x, y int) uint8) []bool {
	out := make([]bool, w*h)
	if size <= 0 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out[y*w+x] = alphaAt(x, y) > 0
			}
		}
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hit := false
			for dy := -size; dy <= size && !hit; dy++ {
				for dx := -size; dx <= size; dx++ {
					if dx*dx+dy*dy > size*size {
						continue
					}
					if alphaAt(x+dx, y+dy) > 0 {
						hit = true
						break
					}
				}
			}
			out[y*w+x] = hit
		}
	}
	return out
}

func paintDropShadow(canvas, src *pixel.Image, ds DropShadow, contentX, contentY int) {
	rad := ds.AngleDeg * math.Pi / 180
	dx := int(math.Round(ds.Distance * math.Cos(rad)))
	dy := int(math.Round(ds.Distance * math.Sin(rad)))

	alphaAt := func(x, y int) uint8 {
		sx, sy := x-contentX-dx, y-contentY-dy
		if sx < 0 || sy < 0 || sx >= src.Width || sy >= src.Height {
			return 0
		}
		c, _ := src.GetPixel(sx, sy)
		return c.A
	}

	w, h := canvas.Width, canvas.Height
	spreadRadius := int(math.Round(ds.Spread * float64(ds.Size)))
	dilated := dilateAlpha(w, h, spreadRadius, alphaAt)
	shadow, _ := pixel.New(w, h)
	fillA := ds.Fill.A
	shadow.MutPixelsWithPosition(func(x, y int, rgba *[4]uint8) {
		if !dilated[y*w+x] {
			return
		}
		rgba[0], rgba[1], rgba[2], rgba[3] = ds.Fill.R, ds.Fill.G, ds.Fill.B, fillA
	})
	if ds.Size > 0 {
		shadow = gaussianBlur(shadow, float64(ds.Size))
	}

	blend := BlendFunc(ds.BlendMode)
	if blend == nil {
		blend = BlendFunc(BlendNormal)
	}
	opacity := clampOpacity(ds.Opacity)
	canvas.MutPixelsWithPosition(func(x, y int, rgba *[4]uint8) {
		s, _ := shadow.GetPixel(x, y)
		if s.A == 0 {
			return
		}
		under := pixel.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
		blended := blend(under, s)
		blended.A = uint8(float64(s.A) * opacity)
		result := sourceOver(under, blended)
		rgba[0], rgba[1], rgba[2], rgba[3] = result.R, result.G, result.B, result.A
	})
}

// sourceOver is the Porter-Duff source-over compositing formula used
// whenever two already-rendered pixel.Colors need folding together
// in-process (effects, flatten), grounded in imop/composite.go's SrcOver.
func sourceOver(dst, src pixel.Color) pixel.Color {
	dr, dg, db, da := dst.RGBf()
	sr, sg, sb, sa := src.RGBf()
	outA := sa + da*(1-sa)
	if outA == 0 {
		return pixel.Color{}
	}
	mix := func(d, s float64) float64 { return (s*sa + d*da*(1-sa)) / outA }
	return pixel.Color{
		R: channel8(mix(dr, sr)),
		G: channel8(mix(dg, sg)),
		B: channel8(mix(db, sb)),
		A: channel8(outA),
	}
}
