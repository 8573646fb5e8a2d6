// Package region implements the scoped pixel pipeline (component D) and
// the GPU provider registry it consults (component F), kept in one package
// since D calls into F on every operation and the two are described as
// tightly coupled.
//
// Process mirrors the shape of caire's own Processor.Process (process.go):
// crop to a work rectangle, run an operation, paste the result back,
// except the crop/paste here is driven by a geometry.Area's bounding box
// and feather rather than a seam-carving energy map.
package region

import (
	"context"

	"github.com/sable-img/sable/geometry"
	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/xerrors"
)

// OpKind names a region operation for GPU provider dispatch. New
// adjustment operations register their own constant here as they're added.
type OpKind int

const (
	OpUnknown OpKind = iota
	OpBlur
	OpGrayscale
	OpEdgeDetect
	OpContrast
	OpCustom
)

// Op is an in-place pixel transform applied to the cropped work rectangle.
// It must not resize img; region.Process pastes the result back into the
// same rectangle it cropped from.
type Op func(img *pixel.Image) error

// Options controls how Process scopes, runs, and blends an operation.
type Options struct {
	// Op is the transform to run over the cropped work rectangle.
	Op Op
	// Kind identifies the operation for GPU provider dispatch.
	Kind OpKind
	// Area restricts where the operation runs and supplies the feather
	// ramp for blending its result back. A nil Area runs the operation
	// over the whole image with hard edges.
	Area *geometry.Area
	// KernelPadding widens the cropped work rectangle by this many pixels
	// on each side beyond the Area's bounds, so kernels that read
	// neighboring pixels (blur, edge detection) don't darken or blank out
	// the area's boundary.
	KernelPadding int
	// Mask, if set, scales blend weight by this grayscale image's luma at
	// each pixel (sampled in the destination image's coordinate space),
	// multiplied with the Area's own coverage. A nil Mask behaves as if
	// every pixel had full weight.
	Mask *pixel.Image
	// Debug, when true, skips running Op entirely and instead paints the
	// Area's coverage mask directly into img as magenta blended over the
	// original pixel by coverage weight (opaque magenta where coverage is 1,
	// the original pixel untouched where 0). Used to visualize exactly what
	// region a pipeline call would have touched.
	Debug bool
}

// Process runs opts.Op over img scoped by opts, blending the operation's
// output back using the area's coverage as blend weight: coverage 1 takes
// the operation's result outright, coverage 0 keeps the original pixel
// untouched, and the feather band linearly interpolates between the two.
// ctx is checked before doing any work; long-running ops should poll
// ctx.Err() themselves since Process itself runs opts.Op synchronously.
func Process(ctx context.Context, img *pixel.Image, opts Options) error {
	if img == nil {
		return xerrors.New(xerrors.InvalidDimensions, "region: nil image")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	minX, minY, maxX, maxY := 0, 0, img.Width, img.Height
	if opts.Area != nil {
		bx0, by0, bx1, by1 := opts.Area.Bounds()
		minX = clampInt(int(bx0)-opts.KernelPadding, 0, img.Width)
		minY = clampInt(int(by0)-opts.KernelPadding, 0, img.Height)
		maxX = clampInt(int(bx1)+opts.KernelPadding+1, 0, img.Width)
		maxY = clampInt(int(by1)+opts.KernelPadding+1, 0, img.Height)
	}
	if minX >= maxX || minY >= maxY {
		return nil
	}
	w, h := maxX-minX, maxY-minY

	if opts.Debug {
		paintDebugCoverage(img, opts.Area, minX, minY, maxX, maxY)
		return nil
	}

	work, err := pixel.New(w, h)
	if err != nil {
		return err
	}
	work.CopyFromRect(img, minX, minY, w, h, 0, 0)

	if err := runOp(opts.Kind, work, opts.Op); err != nil {
		return err
	}

	blendBack(img, work, opts.Area, opts.Mask, minX, minY, w, h)
	return nil
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

// runOp tries the active GPU provider first, falling back to the CPU
// implementation when no provider is registered, the provider declines the
// op via ShouldProcess, or the provider's Process call itself fails.
func runOp(kind OpKind, work *pixel.Image, op Op) error {
	if cb, ok := Get(); ok && cb.ShouldProcess != nil && cb.ShouldProcess(kind, work.Width, work.Height) {
		if err := cb.Process(kind, work); err == nil {
			return nil
		}
	}
	if op == nil {
		return nil
	}
	return op(work)
}

func blendBack(dst, work *pixel.Image, area *geometry.Area, mask *pixel.Image, ox, oy, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			areaWeight := 1.0
			if area != nil {
				areaWeight = area.Coverage(float64(ox+x), float64(oy+y))
			}
			maskWeight := 1.0
			if mask != nil {
				if c, ok := mask.GetPixel(ox+x, oy+y); ok {
					maskWeight = c.Luma() / 255
				} else {
					maskWeight = 0
				}
			}
			weight := areaWeight * maskWeight
			if weight <= 0 {
				continue
			}
			processed, _ := work.GetPixel(x, y)
			if weight >= 1 {
				dst.SetPixel(ox+x, oy+y, processed)
				continue
			}
			orig, _ := dst.GetPixel(ox+x, oy+y)
			dst.SetPixel(ox+x, oy+y, lerpChannels(orig, processed, weight))
		}
	}
}

func lerpChannels(a, b pixel.Color, t float64) pixel.Color {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return pixel.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// paintDebugCoverage paints the work rectangle's area-coverage mask
// directly in magenta, scaled by coverage weight (opaque magenta at
// weight 1, leaving the original pixel untouched at weight 0), in the
// spirit of caire's seam-debug rendering which paints seam pixels red.
func paintDebugCoverage(img *pixel.Image, area *geometry.Area, minX, minY, maxX, maxY int) {
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			weight := 1.0
			if area != nil {
				weight = area.Coverage(float64(x), float64(y))
			}
			if weight <= 0 {
				continue
			}
			orig, _ := img.GetPixel(x, y)
			magenta := pixel.Color{R: 255, B: 255, A: 255}
			img.SetPixel(x, y, lerpChannels(orig, magenta, weight))
		}
	}
}
