package pixel

import "math"

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Luma returns the ITU-R BT.601 luma of c, the same weighting caire's
// Grayscale uses (grayscale.go): 0.299 R + 0.587 G + 0.114 B.
func (c Color) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// RGBf returns the channels normalized to [0,1].
func (c Color) RGBf() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func u8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// ToHSL converts c to hue [0,360), saturation and lightness in [0,1].
func (c Color) ToHSL() (h, s, l float64) {
	r, g, b, _ := c.RGBf()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g-b)/d + boolToFloat(g < b)*6
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// HSLToColor is the inverse of ToHSL; alpha defaults to opaque.
func HSLToColor(h, s, l float64) Color {
	if s == 0 {
		v := u8(l)
		return Color{R: v, G: v, B: v, A: 255}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	return Color{
		R: u8(hueToRGB(p, q, hk+1.0/3)),
		G: u8(hueToRGB(p, q, hk)),
		B: u8(hueToRGB(p, q, hk-1.0/3)),
		A: 255,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// ToHSV converts c to hue [0,360), saturation and value in [0,1].
func (c Color) ToHSV() (h, s, v float64) {
	r, g, b, _ := c.RGBf()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max
	d := max - min
	if max != 0 {
		s = d / max
	}
	if d == 0 {
		return 0, s, v
	}
	switch max {
	case r:
		h = (g-b)/d + boolToFloat(g < b)*6
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// HSVToColor is the inverse of ToHSV; alpha defaults to opaque.
func HSVToColor(h, s, v float64) Color {
	i := math.Floor(h / 60)
	f := h/60 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Color{R: u8(r), G: u8(g), B: u8(b), A: 255}
}

// srgbToLinear converts a single sRGB channel to linear light, per the IEC
// 61966-2-1 transfer function.
func srgbToLinear(c uint8) float64 {
	cs := float64(c) / 255
	if cs <= 0.04045 {
		return cs / 12.92
	}
	return math.Pow((cs+0.055)/1.055, 2.4)
}

func linearToSRGB(l float64) uint8 {
	l = clamp01(l)
	var cs float64
	if l <= 0.0031308 {
		cs = l * 12.92
	} else {
		cs = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return u8(cs)
}

// ToLab converts c to CIE L*a*b* using the D65 white point.
func (c Color) ToLab() (l, a, b float64) {
	rl, gl, bl := srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)

	// sRGB -> XYZ (D65)
	x := rl*0.4124564 + gl*0.3575761 + bl*0.1804375
	y := rl*0.2126729 + gl*0.7151522 + bl*0.0721750
	z := rl*0.0193339 + gl*0.1191920 + bl*0.9503041

	const (
		xn = 0.95047
		yn = 1.00000
		zn = 1.08883
	)
	fx, fy, fz := labF(x/xn), labF(y/yn), labF(z/zn)

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return l, a, b
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// LabToColor is the inverse of ToLab; alpha defaults to opaque.
func LabToColor(l, a, b float64) Color {
	const (
		xn = 0.95047
		yn = 1.00000
		zn = 1.08883
	)
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x := xn * labFInv(fx)
	y := yn * labFInv(fy)
	z := zn * labFInv(fz)

	rl := x*3.2404542 + y*-1.5371385 + z*-0.4985314
	gl := x*-0.9692660 + y*1.8760108 + z*0.0415560
	bl := x*0.0556434 + y*-0.2040259 + z*1.0572252

	return Color{R: linearToSRGB(rl), G: linearToSRGB(gl), B: linearToSRGB(bl), A: 255}
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

// ContrastRatio computes the WCAG contrast ratio between two colors using
// relative luminance (the same linear-light Y channel ToLab derives from).
func ContrastRatio(a, b Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c Color) float64 {
	rl, gl, bl := srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)
	return 0.2126*rl + 0.7152*gl + 0.0722*bl
}
