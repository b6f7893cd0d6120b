package dispatch

import "testing"

func TestDispatch_NoDispatcherRegistered(t *testing.T) {
	Reset()

	if Dispatch(func() {}) {
		t.Error("expected Dispatch to return false with no dispatcher registered")
	}
}

func TestDispatch_SchedulesCallback(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var queued []func()
	Register(func(cb func()) { queued = append(queued, cb) })

	ran := false
	if !Dispatch(func() { ran = true }) {
		t.Fatal("expected Dispatch to return true")
	}
	if ran {
		t.Error("callback should not run until the scheduler invokes it")
	}

	queued[0]()
	if !ran {
		t.Error("expected callback to run")
	}
}

func TestDispatch_NilCallback(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(func(cb func()) { cb() })

	if Dispatch(nil) {
		t.Error("expected Dispatch to reject a nil callback")
	}
}
