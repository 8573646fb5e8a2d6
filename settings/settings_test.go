package settings

import "testing"

func TestNewDefaultsGPUEnabled(t *testing.T) {
	s := New()
	if !s.GPUEnabled() {
		t.Error("New() should default to GPU enabled")
	}
}

func TestSetGPUEnabledToggles(t *testing.T) {
	s := New()
	s.SetGPUEnabled(false)
	if s.GPUEnabled() {
		t.Error("expected GPU disabled after SetGPUEnabled(false)")
	}
}

func TestAIModelPathsCopyIsolatesCaller(t *testing.T) {
	s := New()
	s.SetAIModelPaths([]string{"a.bin", "b.bin"})

	paths := s.AIModelPaths()
	paths[0] = "mutated"

	if got := s.AIModelPaths(); got[0] != "a.bin" {
		t.Errorf("internal state leaked through returned slice: %v", got)
	}
}

func TestAddAIModelPathAppends(t *testing.T) {
	s := New()
	s.AddAIModelPath("one.bin")
	s.AddAIModelPath("two.bin")

	got := s.AIModelPaths()
	if len(got) != 2 || got[0] != "one.bin" || got[1] != "two.bin" {
		t.Errorf("AIModelPaths = %v, want [one.bin two.bin]", got)
	}
}
