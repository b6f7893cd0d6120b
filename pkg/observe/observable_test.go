package observe

import (
	"sync"
	"testing"
)

func TestObservable_Value(t *testing.T) {
	obs := NewObservable(42)
	if obs.Value() != 42 {
		t.Errorf("expected 42, got %d", obs.Value())
	}
}

func TestObservable_SetNotifiesListeners(t *testing.T) {
	obs := NewObservable(0)

	var received []int
	obs.AddListener(func(v int) {
		received = append(received, v)
	})

	obs.Set(1)
	obs.Set(2)

	if len(received) != 2 || received[0] != 1 || received[1] != 2 {
		t.Errorf("expected [1 2], got %v", received)
	}
	if obs.Value() != 2 {
		t.Errorf("expected value 2, got %d", obs.Value())
	}
}

func TestObservable_SetSameValueStillNotifies(t *testing.T) {
	obs := NewObservable(7)

	calls := 0
	obs.AddListener(func(int) { calls++ })

	obs.Set(7)

	if calls != 1 {
		t.Errorf("expected 1 notification without equality fn, got %d", calls)
	}
}

func TestObservableWithEquality_SkipsEqualValues(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	obs := NewObservableWithEquality(user{ID: 1, Name: "Alice"}, func(a, b user) bool {
		return a.ID == b.ID
	})

	var names []string
	obs.AddListener(func(u user) { names = append(names, u.Name) })

	obs.Set(user{ID: 1, Name: "Alice Updated"})
	obs.Set(user{ID: 2, Name: "Bob"})

	if len(names) != 1 || names[0] != "Bob" {
		t.Errorf("expected only Bob, got %v", names)
	}
}

func TestObservable_Update(t *testing.T) {
	obs := NewObservable(10)
	obs.Update(func(v int) int { return v * 2 })

	if obs.Value() != 20 {
		t.Errorf("expected 20, got %d", obs.Value())
	}
}

func TestObservable_Unsubscribe(t *testing.T) {
	obs := NewObservable(0)

	calls := 0
	unsub := obs.AddListener(func(int) { calls++ })

	obs.Set(1)
	unsub()
	obs.Set(2)

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}
	if obs.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", obs.ListenerCount())
	}
}

func TestObservable_UnsubscribeIsIdempotent(t *testing.T) {
	obs := NewObservable(0)
	unsub := obs.AddListener(func(int) {})
	unsub()
	unsub()

	if obs.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", obs.ListenerCount())
	}
}

func TestObservable_ConcurrentSet(t *testing.T) {
	obs := NewObservable(0)

	var mu sync.Mutex
	calls := 0
	obs.AddListener(func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				obs.Set(n)
			}
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 800 {
		t.Errorf("expected 800 notifications, got %d", calls)
	}
}

func TestNotifier_Notify(t *testing.T) {
	n := NewNotifier()

	calls := 0
	unsub := n.AddListener(func() { calls++ })

	n.Notify()
	n.Notify()

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}

	unsub()
	n.Notify()

	if calls != 2 {
		t.Errorf("expected no calls after unsubscribe, got %d", calls)
	}
}

func TestNotifier_ListenerCount(t *testing.T) {
	n := NewNotifier()
	if n.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", n.ListenerCount())
	}

	unsub1 := n.AddListener(func() {})
	n.AddListener(func() {})

	if n.ListenerCount() != 2 {
		t.Errorf("expected 2 listeners, got %d", n.ListenerCount())
	}

	unsub1()
	if n.ListenerCount() != 1 {
		t.Errorf("expected 1 listener, got %d", n.ListenerCount())
	}
}
