package utils

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"sync"
)

// FrameRecorder accumulates snapshots of an in-progress render, modeled on
// caire's package-level g *gif.GIF plus encodeImageToGif/writeGifToFile,
// pulled out of package-level state and into a value a Canvas can hold
// optionally instead of always paying for it.
type FrameRecorder struct {
	mu     sync.Mutex
	frames []*image.Paletted
	delay  int
}

// NewFrameRecorder returns a recorder whose frames play back delay
// 100ths-of-a-second apart once written out by WriteGIF.
func NewFrameRecorder(delay int) *FrameRecorder {
	return &FrameRecorder{delay: delay}
}

// Capture quantizes img onto the Plan9 palette and appends it as the next
// frame, the same palette and draw.Src composite caire's encodeImageToGif
// uses.
func (r *FrameRecorder) Capture(img image.Image) {
	bounds := img.Bounds()
	dst := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, dst)
}

// Len returns the number of frames captured so far.
func (r *FrameRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// WriteGIF encodes every captured frame as an animated GIF, mirroring
// caire's writeGifToFile.
func (r *FrameRecorder) WriteGIF(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := &gif.GIF{
		Image: r.frames,
		Delay: make([]int, len(r.frames)),
	}
	for i := range g.Delay {
		g.Delay[i] = r.delay
	}
	return gif.EncodeAll(w, g)
}
