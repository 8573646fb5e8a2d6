package region

import "testing"

func TestGetReportsNoProviderByDefault(t *testing.T) {
	Clear()
	if _, ok := Get(); ok {
		t.Fatal("expected no GPU provider registered after Clear")
	}
}

func TestRegisterThenGetReturnsProvider(t *testing.T) {
	Register(GpuCallback{
		ShouldProcess: func(OpKind, int, int) bool { return true },
	})
	defer Clear()

	cb, ok := Get()
	if !ok {
		t.Fatal("expected a registered provider")
	}
	if !cb.ShouldProcess(OpBlur, 1, 1) {
		t.Error("expected ShouldProcess from the registered callback")
	}
}

func TestClearRemovesProvider(t *testing.T) {
	Register(GpuCallback{ShouldProcess: func(OpKind, int, int) bool { return true }})
	Clear()
	if _, ok := Get(); ok {
		t.Fatal("expected no provider after Clear")
	}
}

func TestRegisterReplacesExistingProvider(t *testing.T) {
	Register(GpuCallback{ShouldProcess: func(OpKind, int, int) bool { return false }})
	Register(GpuCallback{ShouldProcess: func(OpKind, int, int) bool { return true }})
	defer Clear()

	cb, _ := Get()
	if !cb.ShouldProcess(OpBlur, 1, 1) {
		t.Error("expected the second Register call to replace the first")
	}
}
