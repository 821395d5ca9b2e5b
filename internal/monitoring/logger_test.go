package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("bias send failed: %v", "test")
	if !called {
		t.Error("custom logger was not called")
	}

	// A nil logger installs a no-op rather than panicking.
	SetLogger(nil)
	Logf("dropped message")
}
