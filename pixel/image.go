package pixel

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sable-img/sable/internal/parallel"
	"github.com/sable-img/sable/xerrors"
)

// Channels names the pixel layout new_from_pixels accepts.
type Channels int

const (
	RGB Channels = iota
	RGBA
)

func (c Channels) count() int {
	if c == RGB {
		return 3
	}
	return 4
}

// Channel selects a single color channel for mutation.
type Channel int

const (
	ChanR Channel = iota
	ChanG
	ChanB
	ChanA
)

// Image is a fixed-dimension RGBA8 pixel buffer. Pixel (0,0) is top-left,
// channels are interleaved R,G,B,A, and len(Pix) always equals
// Width*Height*4 — invariants every constructor and mutator below upholds.
type Image struct {
	Width, Height int
	Pix           []uint8
}

// New returns a transparent-black image of the given dimensions.
func New(w, h int) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, xerrors.New(xerrors.InvalidDimensions, "width and height must be positive, got %dx%d", w, h)
	}
	return &Image{Width: w, Height: h, Pix: make([]uint8, w*h*4)}, nil
}

// NewFromColor returns an image of the given dimensions filled with c.
func NewFromColor(w, h int, c Color) (*Image, error) {
	img, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img, nil
}

// NewFromPixels builds an image from an interleaved byte slice. RGB input
// is expanded to RGBA with alpha forced to 255 for every pixel. A length
// mismatch is a hard InvalidDimensions error (spec.md §9 open question 2
// elevates what the original source only logged).
func NewFromPixels(w, h int, bytes []byte, channels Channels) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, xerrors.New(xerrors.InvalidDimensions, "width and height must be positive, got %dx%d", w, h)
	}
	n := channels.count()
	if len(bytes) != w*h*n {
		return nil, xerrors.New(xerrors.InvalidDimensions,
			"expected %d bytes for a %dx%d image with %d channels, got %d", w*h*n, w, h, n, len(bytes))
	}

	img := &Image{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	if channels == RGBA {
		copy(img.Pix, bytes)
		return img, nil
	}
	for i, j := 0, 0; i < len(bytes); i, j = i+3, j+4 {
		img.Pix[j+0] = bytes[i+0]
		img.Pix[j+1] = bytes[i+1]
		img.Pix[j+2] = bytes[i+2]
		img.Pix[j+3] = 255
	}
	return img, nil
}

// FromStdImage converts any image.Image (as returned by an external codec's
// decode step) into an *Image with a (0,0) origin, mirroring the conversion
// caire's imgToNRGBA performs for the seam carver.
func FromStdImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	img := &Image{Width: w, Height: h, Pix: make([]uint8, w*h*4)}

	if nrgba, ok := src.(*image.NRGBA); ok {
		parallel.Rows(h, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				si := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
				di := y * w * 4
				copy(img.Pix[di:di+w*4], nrgba.Pix[si:si+w*4])
			}
		})
		return img
	}

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			di := y * w * 4
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				img.Pix[di+0] = c.R
				img.Pix[di+1] = c.G
				img.Pix[di+2] = c.B
				img.Pix[di+3] = c.A
				di += 4
			}
		}
	})
	return img
}

// ToStdImage returns a *image.NRGBA view suitable for handing to an
// external codec's encode step.
func (img *Image) ToStdImage() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(dst.Pix, img.Pix)
	return dst
}

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

func (img *Image) offset(x, y int) int { return (y*img.Width + x) * 4 }

// GetPixel returns the pixel at (x,y), or ok=false when out of bounds.
func (img *Image) GetPixel(x, y int) (c Color, ok bool) {
	if !img.inBounds(x, y) {
		return Color{}, false
	}
	o := img.offset(x, y)
	return Color{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: img.Pix[o+3]}, true
}

// SetPixel writes c at (x,y); out-of-bounds writes are silently ignored.
func (img *Image) SetPixel(x, y int, c Color) {
	if !img.inBounds(x, y) {
		return
	}
	o := img.offset(x, y)
	img.Pix[o+0] = c.R
	img.Pix[o+1] = c.G
	img.Pix[o+2] = c.B
	img.Pix[o+3] = c.A
}

// MutChannel applies fn to a single channel of every pixel, in parallel
// over row chunks above parallel.Threshold.
func (img *Image) MutChannel(ch Channel, fn func(uint8) uint8) {
	parallel.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			base := y * img.Width * 4
			for x := 0; x < img.Width; x++ {
				i := base + x*4 + int(ch)
				img.Pix[i] = fn(img.Pix[i])
			}
		}
	})
}

// MutChannelsRGB applies fn to the R, G and B channels of every pixel;
// alpha is left untouched.
func (img *Image) MutChannelsRGB(fn func(uint8) uint8) {
	parallel.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			base := y * img.Width * 4
			for x := 0; x < img.Width; x++ {
				i := base + x*4
				img.Pix[i+0] = fn(img.Pix[i+0])
				img.Pix[i+1] = fn(img.Pix[i+1])
				img.Pix[i+2] = fn(img.Pix[i+2])
			}
		}
	})
}

// MutPixels applies fn in place to every pixel's [4]uint8 RGBA slice.
func (img *Image) MutPixels(fn func(rgba *[4]uint8)) {
	parallel.Rows(img.Height, func(y0, y1 int) {
		var px [4]uint8
		for y := y0; y < y1; y++ {
			base := y * img.Width * 4
			for x := 0; x < img.Width; x++ {
				i := base + x*4
				copy(px[:], img.Pix[i:i+4])
				fn(&px)
				copy(img.Pix[i:i+4], px[:])
			}
		}
	})
}

// MutPixelsWithPosition is MutPixels but fn also receives the pixel's
// coordinates, for position-dependent ops (vignettes, gradients-as-filters).
func (img *Image) MutPixelsWithPosition(fn func(x, y int, rgba *[4]uint8)) {
	parallel.Rows(img.Height, func(y0, y1 int) {
		var px [4]uint8
		for y := y0; y < y1; y++ {
			base := y * img.Width * 4
			for x := 0; x < img.Width; x++ {
				i := base + x*4
				copy(px[:], img.Pix[i:i+4])
				fn(x, y, &px)
				copy(img.Pix[i:i+4], px[:])
			}
		}
	})
}

// CopyFromRect copies the overlapping region of src into img at (dx,dy).
func (img *Image) CopyFromRect(src *Image, sx, sy, w, h, dx, dy int) {
	for y := 0; y < h; y++ {
		srcY, dstY := sy+y, dy+y
		if srcY < 0 || srcY >= src.Height || dstY < 0 || dstY >= img.Height {
			continue
		}
		for x := 0; x < w; x++ {
			srcX, dstX := sx+x, dx+x
			if srcX < 0 || srcX >= src.Width || dstX < 0 || dstX >= img.Width {
				continue
			}
			c, _ := src.GetPixel(srcX, srcY)
			img.SetPixel(dstX, dstY, c)
		}
	}
}

// Crop returns a new image covering [x,y,x+w,y+h), clamped to img's bounds.
// A starting corner outside the image is an OutOfBounds error.
func (img *Image) Crop(x, y, w, h int) (*Image, error) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return nil, xerrors.New(xerrors.OutOfBounds, "crop origin (%d,%d) outside %dx%d image", x, y, img.Width, img.Height)
	}
	if w <= 0 || h <= 0 {
		return nil, xerrors.New(xerrors.InvalidDimensions, "crop width/height must be positive, got %dx%d", w, h)
	}
	if x+w > img.Width {
		w = img.Width - x
	}
	if y+h > img.Height {
		h = img.Height - y
	}
	out, err := New(w, h)
	if err != nil {
		return nil, err
	}
	out.CopyFromRect(img, x, y, w, h, 0, 0)
	return out, nil
}

// FlipHorizontal returns a new image mirrored left-right.
func (img *Image) FlipHorizontal() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Pix: make([]uint8, len(img.Pix))}
	parallel.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < img.Width; x++ {
				c, _ := img.GetPixel(img.Width-1-x, y)
				out.SetPixel(x, y, c)
			}
		}
	})
	return out
}

// FlipVertical returns a new image mirrored top-bottom.
func (img *Image) FlipVertical() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Pix: make([]uint8, len(img.Pix))}
	parallel.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			copy(out.Pix[y*img.Width*4:(y+1)*img.Width*4], img.Pix[(img.Height-1-y)*img.Width*4:(img.Height-y)*img.Width*4])
		}
	})
	return out
}

// ResizeAlgorithm selects the interpolation kernel Resize uses.
type ResizeAlgorithm int

const (
	Auto ResizeAlgorithm = iota
	NearestNeighbor
	Bilinear
	Bicubic
	Lanczos
	EdgeDirectEDI
	EdgeDirectNEDI
)

// Resize scales img to w x h using algorithm, resolving Auto to a concrete
// kernel based on the scale factor per spec.md §4.A.
func (img *Image) Resize(w, h int, algorithm ResizeAlgorithm) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, xerrors.New(xerrors.InvalidDimensions, "resize target must be positive, got %dx%d", w, h)
	}
	if algorithm == Auto {
		algorithm = resolveAuto(img.Width, img.Height, w, h)
	}

	switch algorithm {
	case NearestNeighbor, Bilinear, Bicubic, Lanczos:
		filter := map[ResizeAlgorithm]imaging.ResampleFilter{
			NearestNeighbor: imaging.NearestNeighbor,
			Bilinear:        imaging.Linear,
			Bicubic:         imaging.CatmullRom,
			Lanczos:         imaging.Lanczos,
		}[algorithm]
		resized := imaging.Resize(img.ToStdImage(), w, h, filter)
		return FromStdImage(resized), nil
	case EdgeDirectEDI, EdgeDirectNEDI:
		return img.resizeEdgeDirected(w, h, algorithm == EdgeDirectNEDI)
	default:
		return nil, xerrors.New(xerrors.UnsupportedOperation, "unsupported resize algorithm %d", algorithm)
	}
}

func resolveAuto(sw, sh, dw, dh int) ResizeAlgorithm {
	scaleX := float64(dw) / float64(sw)
	scaleY := float64(dh) / float64(sh)
	scale := math.Min(scaleX, scaleY)

	switch {
	case scale < 0.5:
		return Bicubic
	case scale < 1:
		return Lanczos
	case scale <= 2:
		return Bilinear
	default:
		return EdgeDirectEDI
	}
}

// resizeEdgeDirected implements a lightweight edge-directed interpolation:
// at each new sample it compares the two diagonal gradients of the 2x2
// neighborhood and runs a bilinear blend biased toward the corners of the
// smoother diagonal, giving the other two corners weight 0.25 (the
// new-edge-directed variant uses a milder 0.5). No pack example
// implements edge-directed interpolation, so this is hand-rolled against
// the textbook EDI/NEDI description.
func (img *Image) resizeEdgeDirected(w, h int, nedi bool) (*Image, error) {
	out, err := New(w, h)
	if err != nil {
		return nil, err
	}
	sx := float64(img.Width) / float64(w)
	sy := float64(img.Height) / float64(h)

	sample := func(x, y int) Color {
		x = clampInt(x, 0, img.Width-1)
		y = clampInt(y, 0, img.Height-1)
		c, _ := img.GetPixel(x, y)
		return c
	}

	parallel.Rows(h, func(y0, y1 int) {
		for dy := y0; dy < y1; dy++ {
			srcYf := (float64(dy)+0.5)*sy - 0.5
			y0i := int(math.Floor(srcYf))
			fy := srcYf - float64(y0i)
			for dx := 0; dx < w; dx++ {
				srcXf := (float64(dx)+0.5)*sx - 0.5
				x0i := int(math.Floor(srcXf))
				fx := srcXf - float64(x0i)

				c00 := sample(x0i, y0i)
				c10 := sample(x0i+1, y0i)
				c01 := sample(x0i, y0i+1)
				c11 := sample(x0i+1, y0i+1)

				gradMain := colorGradient(c00, c11)
				gradAnti := colorGradient(c10, c01)

				var out00, out11, out10, out01 float64 = 1, 1, 1, 1
				if nedi {
					// NEDI-style: weight the direct (non-diagonal) neighbors
					// more heavily once an edge direction is chosen.
					if gradMain < gradAnti {
						out10, out01 = 0.5, 0.5
					} else {
						out00, out11 = 0.5, 0.5
					}
				} else if gradMain < gradAnti {
					out10, out01 = 0.25, 0.25
				} else {
					out00, out11 = 0.25, 0.25
				}

				out.SetPixel(dx, dy, bilerpWeighted(c00, c10, c01, c11, fx, fy, out00, out10, out01, out11))
			}
		}
	})
	return out, nil
}

func colorGradient(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

func bilerpWeighted(c00, c10, c01, c11 Color, fx, fy, w00, w10, w01, w11 float64) Color {
	top := lerpColor(c00, c10, fx*w10/(w00+w10+1e-9))
	bot := lerpColor(c01, c11, fx*w11/(w01+w11+1e-9))
	return lerpColor(top, bot, fy)
}

func lerpColor(a, b Color, t float64) Color {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return Color{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rotate returns a new image rotated by deg degrees, sized to the rotated
// bounding box with transparent corners. imaging.Rotate has no filter
// parameter of its own, unlike Resize, so there is no algorithm to select
// here.
func (img *Image) Rotate(deg float64) *Image {
	rotated := imaging.Rotate(img.ToStdImage(), deg, color.NRGBA{})
	return FromStdImage(rotated)
}
