package sable

import (
	"github.com/sable-img/sable/pixel"
)

// Flatten composites the canvas's layer stack bottom to top, then each
// child canvas (flattened recursively) on top of the layers, and caches the
// result until the canvas (or any layer/child within it) is marked dirty
// again.
func (c *Canvas) Flatten() (*pixel.Image, error) {
	if !c.dirty && c.cachedFlat != nil {
		return c.cachedFlat, nil
	}

	out, err := pixel.New(c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	for _, l := range c.layers {
		if !l.Visible || l.opacity <= 0 {
			continue
		}
		composited, offsetX, offsetY, err := compositeLayer(l)
		if err != nil {
			return nil, err
		}
		blendOnto(out, composited, l.PositionX-offsetX, l.PositionY-offsetY, l.BlendMode, l.opacity)
		if c.frameRecorder != nil {
			c.frameRecorder.Capture(out.ToStdImage())
		}
	}

	for _, child := range c.children {
		flat, err := child.Canvas.Flatten()
		if err != nil {
			return nil, err
		}
		rotated := flat
		if child.RotationDeg != 0 {
			rotated = flat.Rotate(child.RotationDeg)
		}
		ax, ay := child.Anchor.Resolve(float64(rotated.Width), float64(rotated.Height))
		blendOnto(out, rotated, child.PositionX-int(ax), child.PositionY-int(ay), BlendNormal, 1)
		if c.frameRecorder != nil {
			c.frameRecorder.Capture(out.ToStdImage())
		}
	}

	for _, l := range c.layers {
		l.dirty = false
	}
	c.cachedFlat = out
	c.dirty = false
	return out, nil
}

// compositeLayer renders a layer's own image with its effects applied,
// returning the result plus the offset its content now sits at relative
// to the effect canvas's origin (effects pad outward, shifting content).
func compositeLayer(l *Layer) (img *pixel.Image, offsetX, offsetY int, err error) {
	return l.Effects.Apply(l.shared.image)
}

// blendOnto composites src onto dst at (x,y) using mode for the per-channel
// blend and opacity as an overall alpha multiplier, source-over for the
// final alpha compositing step — mirroring how imop/composite.go layers
// a blend-mode result back onto the destination via Porter-Duff source-over
// rather than replacing pixels outright.
func blendOnto(dst, src *pixel.Image, x, y int, mode BlendModeName, opacity float64) {
	blend := BlendFunc(mode)
	if blend == nil {
		blend = BlendFunc(BlendNormal)
	}
	dst.MutPixelsWithPosition(func(dx, dy2 int, rgba *[4]uint8) {
		sx, sy := dx-x, dy2-y
		if sx < 0 || sy < 0 || sx >= src.Width || sy >= src.Height {
			return
		}
		top, _ := src.GetPixel(sx, sy)
		if top.A == 0 {
			return
		}
		under := pixel.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
		blended := blend(under, top)
		blended.A = uint8(float64(top.A) * opacity)
		result := sourceOver(under, blended)
		rgba[0], rgba[1], rgba[2], rgba[3] = result.R, result.G, result.B, result.A
	})
}
