// Package settings models the small amount of process-wide configuration
// the core needs: whether GPU acceleration is enabled and where to find
// on-disk AI model assets (cascade files, upscaling models). It takes no
// position on an on-disk file format — callers own how they load or
// persist a Settings value.
package settings

import "sync"

// Settings holds process-wide configuration for the compositing core.
type Settings struct {
	mu           sync.RWMutex
	gpuEnabled   bool
	aiModelPaths []string
}

// New returns a Settings with GPU acceleration enabled and no model paths
// configured.
func New() *Settings {
	return &Settings{gpuEnabled: true}
}

// GPUEnabled reports whether GPU-accelerated operations should be
// attempted.
func (s *Settings) GPUEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gpuEnabled
}

// SetGPUEnabled toggles GPU acceleration.
func (s *Settings) SetGPUEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gpuEnabled = enabled
}

// AIModelPaths returns a copy of the configured AI model asset paths.
func (s *Settings) AIModelPaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.aiModelPaths...)
}

// SetAIModelPaths replaces the configured AI model asset paths.
func (s *Settings) SetAIModelPaths(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiModelPaths = append([]string(nil), paths...)
}

// AddAIModelPath appends a single AI model asset path.
func (s *Settings) AddAIModelPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiModelPaths = append(s.aiModelPaths, path)
}
