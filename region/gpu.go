package region

import (
	"sync"

	"github.com/sable-img/sable/pixel"
)

// GpuCallback is a GPU-accelerated implementation of a region operation.
// ShouldProcess is consulted first so a provider can decline work it
// doesn't support (unsupported op, image too large, device unavailable)
// and let region.Process fall back to the CPU path; Process does the
// actual work on pixels already cropped to the operation's work rectangle.
type GpuCallback struct {
	ShouldProcess func(op OpKind, width, height int) bool
	Process       func(op OpKind, img *pixel.Image) error
}

// registry is the process-wide GPU provider slot described by component F:
// at most one provider is registered at a time, consulted per-operation by
// component D. The lock is only ever held long enough to clone the current
// callback value; it is never held across a callback invocation, so a
// provider is free to re-register itself (or another goroutine to call
// Register/Clear) from within its own Process implementation without
// deadlocking.
var registry struct {
	mu       sync.RWMutex
	callback *GpuCallback
}

// Register installs cb as the active GPU provider, replacing any existing
// one.
func Register(cb GpuCallback) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.callback = &cb
}

// Clear removes the active GPU provider, if any. Subsequent operations run
// on the CPU path.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.callback = nil
}

// Get returns a copy of the active GPU provider and whether one is
// registered.
func Get() (GpuCallback, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if registry.callback == nil {
		return GpuCallback{}, false
	}
	return *registry.callback, true
}
