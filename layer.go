package sable

import (
	"sync/atomic"

	"github.com/sable-img/sable/pixel"
)

// AnchorKind is either one of the nine compass points or a custom pixel
// offset, used for both a layer's Anchor (a point in the parent canvas)
// and its Origin (a point within the layer's own image).
type AnchorKind int

const (
	AnchorTopLeft AnchorKind = iota
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
	AnchorCustom
)

// Anchor is a point, either one of the nine compass positions relative to
// a width/height rectangle or an explicit pixel offset.
type Anchor struct {
	Kind AnchorKind
	X, Y float64 // only read when Kind == AnchorCustom
}

// Resolve returns the anchor's (x,y) position within a w x h rectangle.
func (a Anchor) Resolve(w, h float64) (x, y float64) {
	switch a.Kind {
	case AnchorTopLeft:
		return 0, 0
	case AnchorTop:
		return w / 2, 0
	case AnchorTopRight:
		return w, 0
	case AnchorLeft:
		return 0, h / 2
	case AnchorCenter:
		return w / 2, h / 2
	case AnchorRight:
		return w, h / 2
	case AnchorBottomLeft:
		return 0, h
	case AnchorBottom:
		return w / 2, h
	case AnchorBottomRight:
		return w, h
	default: // AnchorCustom
		return a.X, a.Y
	}
}

// SizePolicy controls how a layer's source image is placed when added to a
// canvas, mirroring LayerOptions.size_policy.
type SizePolicy int

const (
	SizeOriginal SizePolicy = iota
	SizeFit
	SizeFill
	SizeStretch
)

// LayerOptions carries the optional fields add_layer_from_* accepts.
type LayerOptions struct {
	Anchor     Anchor
	Origin     Anchor
	Opacity    float64
	BlendMode  BlendModeName
	SizePolicy SizePolicy
	TargetW    int // used when SizePolicy is Fit/Fill/Stretch
	TargetH    int
}

// DefaultLayerOptions returns fully opaque, top-left-anchored, normal-blend
// options with SizeOriginal.
func DefaultLayerOptions() LayerOptions {
	return LayerOptions{Opacity: 1, BlendMode: BlendNormal, SizePolicy: SizeOriginal}
}

// sharedImage is a reference-counted pixel.Image, the copy-on-write unit
// duplicate() shares between layer handles until one of them writes.
type sharedImage struct {
	refs  int32
	image *pixel.Image
}

func newSharedImage(img *pixel.Image) *sharedImage {
	return &sharedImage{refs: 1, image: img}
}

func (s *sharedImage) retain() *sharedImage {
	atomic.AddInt32(&s.refs, 1)
	return s
}

// Layer is one entry in a Canvas's layer stack.
type Layer struct {
	id        uint64
	Name      string
	shared    *sharedImage
	PositionX int
	PositionY int
	Anchor    Anchor
	Origin    Anchor
	opacity   float64
	Visible   bool
	BlendMode BlendModeName
	Effects   EffectList
	zOrder    uint32
	dirty     bool

	cachedComposited *pixel.Image
	owner            *Canvas
}

// ID returns the layer's stable identifier, unique within its owning
// canvas's lifetime.
func (l *Layer) ID() uint64 { return l.id }

// ZOrder returns the layer's current stack index (0 = bottom).
func (l *Layer) ZOrder() uint32 { return l.zOrder }

// Dirty reports whether the layer has changed since the canvas was last
// flattened.
func (l *Layer) Dirty() bool { return l.dirty }

// Image returns the layer's current pixel buffer. Callers that intend to
// mutate it must go through MutateImage so copy-on-write and dirty
// propagation happen correctly; reading through the returned pointer
// directly is fine, mutating it directly is not.
func (l *Layer) Image() *pixel.Image { return l.shared.image }

// Opacity returns the layer's opacity in [0,1].
func (l *Layer) Opacity() float64 { return l.opacity }

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (l *Layer) markDirty() {
	l.dirty = true
	l.cachedComposited = nil
	if l.owner != nil {
		l.owner.markDirty()
	}
}

// SetOpacity clamps and sets the layer's opacity, marking it dirty.
func (l *Layer) SetOpacity(v float64) {
	l.opacity = clampOpacity(v)
	l.markDirty()
}

// SetVisible sets visibility, marking the layer dirty.
func (l *Layer) SetVisible(v bool) {
	l.Visible = v
	l.markDirty()
}

// SetBlendMode sets the blend mode, marking the layer dirty.
func (l *Layer) SetBlendMode(name BlendModeName) {
	l.BlendMode = name
	l.markDirty()
}

// SetPosition sets the layer's position offset, marking it dirty.
func (l *Layer) SetPosition(x, y int) {
	l.PositionX, l.PositionY = x, y
	l.markDirty()
}

// SetEffects replaces the layer's effect list, marking it dirty.
func (l *Layer) SetEffects(effects EffectList) {
	l.Effects = effects
	l.markDirty()
}

// MutateImage runs fn over the layer's image, copy-on-write: if the
// underlying buffer is shared with another layer handle (via duplicate),
// it's cloned first so the mutation is not observed by the sibling. Marks
// the layer dirty.
func (l *Layer) MutateImage(fn func(*pixel.Image)) {
	if atomic.LoadInt32(&l.shared.refs) > 1 {
		cloned := cloneImage(l.shared.image)
		atomic.AddInt32(&l.shared.refs, -1)
		l.shared = newSharedImage(cloned)
	}
	fn(l.shared.image)
	l.markDirty()
}

// SetImage replaces the layer's image outright (e.g. after a resize),
// marking it dirty. The new image becomes sole-owned by this layer.
func (l *Layer) SetImage(img *pixel.Image) {
	atomic.AddInt32(&l.shared.refs, -1)
	l.shared = newSharedImage(img)
	l.markDirty()
}

func cloneImage(img *pixel.Image) *pixel.Image {
	out, _ := pixel.New(img.Width, img.Height)
	copy(out.Pix, img.Pix)
	return out
}
