package sable

import (
	"math"
	"sort"

	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/utils"
)

// BlendMode is a pure per-channel function combining a layer with whatever
// sits below it in the stack, before source-over alpha compositing folds
// the result onto the destination.
type BlendMode func(bottom, top pixel.Color) pixel.Color

// BlendModeName identifies one of the recognized blend modes by the same
// lowercase-with-underscore vocabulary imop/blend.go's Blend.Modes uses
// (Normal, Multiply, Screen, ...), so a caller can round-trip a blend mode
// through a config file or CLI flag.
type BlendModeName string

const (
	BlendNormal     BlendModeName = "normal"
	BlendMultiply   BlendModeName = "multiply"
	BlendScreen     BlendModeName = "screen"
	BlendOverlay    BlendModeName = "overlay"
	BlendDarken     BlendModeName = "darken"
	BlendLighten    BlendModeName = "lighten"
	BlendColorDodge BlendModeName = "color_dodge"
	BlendColorBurn  BlendModeName = "color_burn"
	BlendHardLight  BlendModeName = "hard_light"
	BlendSoftLight  BlendModeName = "soft_light"
	BlendDifference BlendModeName = "difference"
	BlendExclusion  BlendModeName = "exclusion"
	BlendDivide     BlendModeName = "divide"
	BlendAdd        BlendModeName = "add"
	BlendSubtract   BlendModeName = "subtract"

	// Non-separable blend modes, ported from imop/blend.go's Hue/Saturation/
	// Color/Luminosity (there implemented against a standalone Color struct
	// and image.NRGBA bitmaps; here against pixel.Color), since these mix
	// hue/saturation/luminosity across all three channels at once and can't
	// be expressed as a per-channel blendModes entry.
	BlendHue        BlendModeName = "hue"
	BlendSaturation BlendModeName = "saturation"
	BlendColor      BlendModeName = "color"
	BlendLuminosity BlendModeName = "luminosity"
)

var nonSeparableBlendModes = map[BlendModeName]bool{
	BlendHue: true, BlendSaturation: true, BlendColor: true, BlendLuminosity: true,
}

// blendModes maps each recognized name to its per-channel function. Each
// function operates on normalized [0,1] channel values the same way
// imop/composite.go's Draw normalizes src/dst before applying a blend
// formula (Multiply: rn = rsn*rbn; Screen: 1-(1-rsn)*(1-rbn); Darken/Lighten:
// per-channel min/max; Overlay: the rsn<=0.5 piecewise split) — extended
// here to the remaining separable blend modes the teacher's Blend.Modes
// list names but its Draw switch never implements (ColorDodge, ColorBurn,
// HardLight, SoftLight, Difference, Exclusion) plus Divide/Add/Subtract,
// using each mode's standard definition from the W3C compositing spec.
var blendModes = map[BlendModeName]func(b, t float64) float64{
	BlendNormal:     func(b, t float64) float64 { return t },
	BlendMultiply:   func(b, t float64) float64 { return b * t },
	BlendScreen:     func(b, t float64) float64 { return 1 - (1-b)*(1-t) },
	BlendDarken:     utils.Min[float64],
	BlendLighten:    utils.Max[float64],
	BlendOverlay:    func(b, t float64) float64 { return hardLight(t, b) },
	BlendHardLight:  hardLight,
	BlendSoftLight:  softLight,
	BlendColorDodge: colorDodge,
	BlendColorBurn:  colorBurn,
	BlendDifference: func(b, t float64) float64 { return utils.Abs(b - t) },
	BlendExclusion:  func(b, t float64) float64 { return b + t - 2*b*t },
	BlendDivide: func(b, t float64) float64 {
		if t == 0 {
			return 1
		}
		return b / t
	},
	BlendAdd:      func(b, t float64) float64 { return b + t },
	BlendSubtract: func(b, t float64) float64 { return b - t },
}

// hardLight implements both HardLight(bottom,top) and, via its arguments
// swapped, Overlay(bottom,top) = HardLight(top,bottom) per the W3C
// compositing spec's definition of overlay as hard-light with the layers
// swapped.
func hardLight(b, t float64) float64 {
	if t <= 0.5 {
		return 2 * b * t
	}
	return 1 - 2*(1-b)*(1-t)
}

func softLight(b, t float64) float64 {
	if t <= 0.5 {
		return b - (1-2*t)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*t-1)*(d-b)
}

func colorDodge(b, t float64) float64 {
	if b == 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	v := b / (1 - t)
	if v > 1 {
		return 1
	}
	return v
}

func colorBurn(b, t float64) float64 {
	if b >= 1 {
		return 1
	}
	if t <= 0 {
		return 0
	}
	v := 1 - (1-b)/t
	if v < 0 {
		return 0
	}
	return v
}

// BlendFunc resolves name to a BlendMode, or nil if name isn't recognized
// (callers that need to surface UnsupportedOperation should check for nil).
func BlendFunc(name BlendModeName) BlendMode {
	if nonSeparableBlendModes[name] {
		return nonSeparableBlend(name)
	}
	fn, ok := blendModes[name]
	if !ok {
		return nil
	}
	return func(bottom, top pixel.Color) pixel.Color {
		br, bg, bb, _ := bottom.RGBf()
		tr, tg, tb, ta := top.RGBf()
		return pixel.Color{
			R: channel8(fn(br, tr)),
			G: channel8(fn(bg, tg)),
			B: channel8(fn(bb, tb)),
			A: channel8(ta),
		}
	}
}

type rgbTriple struct{ r, g, b float64 }

func nonSeparableBlend(name BlendModeName) BlendMode {
	return func(bottom, top pixel.Color) pixel.Color {
		br, bg, bb, _ := bottom.RGBf()
		tr, tg, tb, ta := top.RGBf()
		bot, over := rgbTriple{br, bg, bb}, rgbTriple{tr, tg, tb}

		var out rgbTriple
		switch name {
		case BlendHue:
			out = setLum(setSat(over, sat(bot)), lum(bot))
		case BlendSaturation:
			out = setLum(setSat(bot, sat(over)), lum(bot))
		case BlendColor:
			out = setLum(over, lum(bot))
		case BlendLuminosity:
			out = setLum(bot, lum(over))
		}
		return pixel.Color{R: channel8(out.r), G: channel8(out.g), B: channel8(out.b), A: channel8(ta)}
	}
}

// lum is the W3C compositing spec's non-separable luminosity weighting,
// matching imop/blend.go's Blend.Lum.
func lum(c rgbTriple) float64 { return 0.3*c.r + 0.59*c.g + 0.11*c.b }

// setLum shifts c's channels so its luminosity becomes l, then clips any
// out-of-gamut channel back into [0,1] around that luminosity, matching
// imop/blend.go's Blend.SetLum and Blend.clip.
func setLum(c rgbTriple, l float64) rgbTriple {
	d := l - lum(c)
	out := rgbTriple{c.r + d, c.g + d, c.b + d}

	lOut := lum(out)
	cmin := utils.Min(utils.Min(out.r, out.g), out.b)
	cmax := utils.Max(utils.Max(out.r, out.g), out.b)
	if cmin < 0 {
		out.r = lOut + (out.r-lOut)*lOut/(lOut-cmin)
		out.g = lOut + (out.g-lOut)*lOut/(lOut-cmin)
		out.b = lOut + (out.b-lOut)*lOut/(lOut-cmin)
	}
	if cmax > 1 {
		out.r = lOut + (out.r-lOut)*(1-lOut)/(cmax-lOut)
		out.g = lOut + (out.g-lOut)*(1-lOut)/(cmax-lOut)
		out.b = lOut + (out.b-lOut)*(1-lOut)/(cmax-lOut)
	}
	return out
}

// sat is the channel spread used as the non-separable saturation value,
// matching imop/blend.go's Blend.Sat.
func sat(c rgbTriple) float64 {
	return utils.Max(utils.Max(c.r, c.g), c.b) - utils.Min(utils.Min(c.r, c.g), c.b)
}

// setSat rescales c's channels so its saturation becomes s while keeping
// the min/mid/max channel ordering, matching imop/blend.go's Blend.SetSat.
func setSat(c rgbTriple, s float64) rgbTriple {
	type slot struct {
		val *float64
	}
	slots := []slot{{&c.r}, {&c.g}, {&c.b}}
	sort.Slice(slots, func(i, j int) bool { return *slots[i].val < *slots[j].val })
	minS, midS, maxS := slots[0].val, slots[1].val, slots[2].val

	if *maxS > *minS {
		*midS = (*midS - *minS) * s / (*maxS - *minS)
		*maxS = s
	} else {
		*midS, *maxS = 0, 0
	}
	*minS = 0
	return c
}

func channel8(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
