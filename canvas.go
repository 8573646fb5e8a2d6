package sable

import (
	"github.com/sable-img/sable/pixel"
	"github.com/sable-img/sable/utils"
	"github.com/sable-img/sable/xerrors"
)

// ChildCanvas places a nested Canvas within a parent at a position and
// rotation, flattened as one unit before compositing onto the parent.
type ChildCanvas struct {
	Canvas      *Canvas
	PositionX   int
	PositionY   int
	Anchor      Anchor
	RotationDeg float64
}

// Canvas owns an ordered stack of layers (bottom to top) plus any nested
// child canvases, and caches the result of flattening them.
type Canvas struct {
	Name   string
	Width  int
	Height int

	layers   []*Layer
	children []ChildCanvas
	nextID   uint64

	dirty      bool
	cachedFlat *pixel.Image
	parent     *Canvas

	frameRecorder *utils.FrameRecorder
}

// SetFrameRecorder attaches r as a recording side channel: Flatten pushes a
// snapshot into it after compositing each visible layer and each child
// canvas, modeled on caire's encodeImageToGif accumulation during iterative
// carving. A nil r detaches any previously attached recorder.
func (c *Canvas) SetFrameRecorder(r *utils.FrameRecorder) {
	c.frameRecorder = r
}

// NewCanvas returns an empty canvas of the given size, dirty by default so
// the first Flatten call always renders.
func NewCanvas(name string, width, height int) *Canvas {
	return &Canvas{Name: name, Width: width, Height: height, dirty: true}
}

func (c *Canvas) markDirty() {
	c.dirty = true
	c.cachedFlat = nil
	if c.parent != nil {
		c.parent.markDirty()
	}
}

// Layers returns the layer stack, bottom to top. The returned slice is
// owned by the canvas; callers must not mutate it directly.
func (c *Canvas) Layers() []*Layer { return c.layers }

// Len returns the number of layers.
func (c *Canvas) Len() int { return len(c.layers) }

func (c *Canvas) reindex() {
	for i, l := range c.layers {
		l.zOrder = uint32(i)
	}
}

func placedImage(src *pixel.Image, opts LayerOptions) (*pixel.Image, error) {
	switch opts.SizePolicy {
	case SizeOriginal:
		return src, nil
	case SizeStretch:
		return src.Resize(opts.TargetW, opts.TargetH, pixel.Auto)
	case SizeFit, SizeFill:
		return fitOrFillImage(src, opts)
	default:
		return nil, xerrors.New(xerrors.UnsupportedOperation, "sable: unrecognized size policy %d", opts.SizePolicy)
	}
}

// addLayer appends a ready-made layer handle to the top of the stack and
// marks the canvas dirty.
func (c *Canvas) addLayer(l *Layer) *Layer {
	c.nextID++
	l.id = c.nextID
	l.owner = c
	l.zOrder = uint32(len(c.layers))
	c.layers = append(c.layers, l)
	c.markDirty()
	return l
}

// AddLayerFromImage adds img (taking ownership, not copying) as a new top
// layer, applying opts' placement and size policy.
func (c *Canvas) AddLayerFromImage(name string, img *pixel.Image, opts LayerOptions) (*Layer, error) {
	placed, err := placedImage(img, opts)
	if err != nil {
		return nil, err
	}
	if opts.BlendMode == "" {
		opts.BlendMode = BlendNormal
	}
	ax, ay := opts.Anchor.Resolve(float64(c.Width), float64(c.Height))
	ox, oy := opts.Origin.Resolve(float64(placed.Width), float64(placed.Height))
	l := &Layer{
		Name:      name,
		shared:    newSharedImage(placed),
		PositionX: int(ax - ox),
		PositionY: int(ay - oy),
		Anchor:    opts.Anchor,
		Origin:    opts.Origin,
		opacity:   clampOpacity(opts.Opacity),
		Visible:   true,
		BlendMode: opts.BlendMode,
		dirty:     true,
	}
	return c.addLayer(l), nil
}

// AddLayerFromColor adds a solid-color w x h layer.
func (c *Canvas) AddLayerFromColor(name string, w, h int, col pixel.Color, opts LayerOptions) (*Layer, error) {
	img, err := pixel.NewFromColor(w, h, col)
	if err != nil {
		return nil, err
	}
	return c.AddLayerFromImage(name, img, opts)
}

// AddCanvas nests child as a sub-canvas of c. Returns UnsupportedOperation
// if doing so would create a cycle (child already contains c as an
// ancestor).
func (c *Canvas) AddCanvas(child *Canvas, positionX, positionY int, anchor Anchor, rotationDeg float64) error {
	for p := c; p != nil; p = p.parent {
		if p == child {
			return xerrors.New(xerrors.UnsupportedOperation, "sable: adding canvas %q would create a cycle", child.Name)
		}
	}
	child.parent = c
	c.children = append(c.children, ChildCanvas{
		Canvas: child, PositionX: positionX, PositionY: positionY, Anchor: anchor, RotationDeg: rotationDeg,
	})
	c.markDirty()
	return nil
}

// Children returns the canvas's nested child canvases.
func (c *Canvas) Children() []ChildCanvas { return c.children }

func (c *Canvas) findIndex(index int, name string, id uint64, byID bool) int {
	if name != "" {
		for i, l := range c.layers {
			if l.Name == name {
				return i
			}
		}
		return -1
	}
	if byID {
		for i, l := range c.layers {
			if l.id == id {
				return i
			}
		}
		return -1
	}
	if index >= 0 && index < len(c.layers) {
		return index
	}
	return -1
}

// MoveUp swaps the layer at index with the one above it.
func (c *Canvas) MoveUp(index int) error {
	if index < 0 || index+1 >= len(c.layers) {
		return xerrors.New(xerrors.OutOfBounds, "sable: cannot move layer %d up, only %d layers", index, len(c.layers))
	}
	c.layers[index], c.layers[index+1] = c.layers[index+1], c.layers[index]
	c.reindex()
	c.markDirty()
	return nil
}

// MoveDown swaps the layer at index with the one below it.
func (c *Canvas) MoveDown(index int) error {
	if index <= 0 || index >= len(c.layers) {
		return xerrors.New(xerrors.OutOfBounds, "sable: cannot move layer %d down, only %d layers", index, len(c.layers))
	}
	c.layers[index], c.layers[index-1] = c.layers[index-1], c.layers[index]
	c.reindex()
	c.markDirty()
	return nil
}

// MoveToTop moves the layer at index to the end of the stack.
func (c *Canvas) MoveToTop(index int) error {
	if index < 0 || index >= len(c.layers) {
		return xerrors.New(xerrors.OutOfBounds, "sable: index %d out of range", index)
	}
	l := c.layers[index]
	c.layers = append(append(c.layers[:index:index], c.layers[index+1:]...), l)
	c.reindex()
	c.markDirty()
	return nil
}

// MoveToBottom moves the layer at index to the start of the stack.
func (c *Canvas) MoveToBottom(index int) error {
	if index < 0 || index >= len(c.layers) {
		return xerrors.New(xerrors.OutOfBounds, "sable: index %d out of range", index)
	}
	l := c.layers[index]
	rest := append(c.layers[:index:index], c.layers[index+1:]...)
	c.layers = append([]*Layer{l}, rest...)
	c.reindex()
	c.markDirty()
	return nil
}

// DeleteByIndex removes the layer at index.
func (c *Canvas) DeleteByIndex(index int) error {
	if index < 0 || index >= len(c.layers) {
		return xerrors.New(xerrors.OutOfBounds, "sable: index %d out of range", index)
	}
	c.layers = append(c.layers[:index], c.layers[index+1:]...)
	c.reindex()
	c.markDirty()
	return nil
}

// DeleteByName removes the first layer whose Name matches name.
func (c *Canvas) DeleteByName(name string) error {
	i := c.findIndex(0, name, 0, false)
	if i < 0 {
		return xerrors.New(xerrors.OutOfBounds, "sable: no layer named %q", name)
	}
	return c.DeleteByIndex(i)
}

// DeleteByID removes the layer with the given stable id.
func (c *Canvas) DeleteByID(id uint64) error {
	i := c.findIndex(0, "", id, true)
	if i < 0 {
		return xerrors.New(xerrors.OutOfBounds, "sable: no layer with id %d", id)
	}
	return c.DeleteByIndex(i)
}

// DuplicateByIndex clones the layer at index, sharing its image buffer
// copy-on-write, and inserts the clone directly above the original.
func (c *Canvas) DuplicateByIndex(index int) (*Layer, error) {
	if index < 0 || index >= len(c.layers) {
		return nil, xerrors.New(xerrors.OutOfBounds, "sable: index %d out of range", index)
	}
	src := c.layers[index]
	dup := &Layer{
		Name:      src.Name + " copy",
		shared:    src.shared.retain(),
		PositionX: src.PositionX,
		PositionY: src.PositionY,
		Anchor:    src.Anchor,
		Origin:    src.Origin,
		opacity:   src.opacity,
		Visible:   src.Visible,
		BlendMode: src.BlendMode,
		Effects:   src.Effects,
		dirty:     true,
	}
	c.nextID++
	dup.id = c.nextID
	dup.owner = c
	c.layers = append(c.layers, nil)
	copy(c.layers[index+2:], c.layers[index+1:])
	c.layers[index+1] = dup
	c.reindex()
	c.markDirty()
	return dup, nil
}

func fitOrFillImage(src *pixel.Image, opts LayerOptions) (*pixel.Image, error) {
	sw, sh := float64(src.Width), float64(src.Height)
	tw, th := float64(opts.TargetW), float64(opts.TargetH)
	if tw <= 0 || th <= 0 {
		return nil, xerrors.New(xerrors.InvalidDimensions, "sable: fit/fill target must be positive, got %gx%g", tw, th)
	}
	scaleFit := utils.Min(tw/sw, th/sh)
	scaleFill := utils.Max(tw/sw, th/sh)
	scale := scaleFit
	if opts.SizePolicy == SizeFill {
		scale = scaleFill
	}
	rw, rh := int(sw*scale+0.5), int(sh*scale+0.5)
	if rw < 1 {
		rw = 1
	}
	if rh < 1 {
		rh = 1
	}
	resized, err := src.Resize(rw, rh, pixel.Auto)
	if err != nil {
		return nil, err
	}
	if opts.SizePolicy == SizeFit {
		return resized, nil
	}
	// SizeFill: crop the overscanned result back down to target, centered.
	cx := clampInt((rw-opts.TargetW)/2, 0, rw-1)
	cy := clampInt((rh-opts.TargetH)/2, 0, rh-1)
	return resized.Crop(cx, cy, opts.TargetW, opts.TargetH)
}

func clampInt(v, lo, hi int) int {
	return utils.Max(lo, utils.Min(v, hi))
}
