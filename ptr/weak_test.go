package ptr

import (
	"testing"
)

func TestWeak_ZeroValue(t *testing.T) {
	var w Weak[tracked]

	if !w.Empty() {
		t.Fatal("zero value should be empty")
	}
	if !w.IsExpired() {
		t.Fatal("empty weak pointer should be expired")
	}
	if s := w.Lock(); !s.Empty() {
		t.Fatal("Lock on empty weak pointer should return an empty Strong")
	}

	w.Release()
	w.Release()
}

func TestWeak_ObservesOwner(t *testing.T) {
	v, drops := newTracked("watched")
	s := NewStrong(v)
	w := s.Downgrade()

	if w.IsExpired() {
		t.Fatal("weak pointer should see the live resource")
	}
	shared, weak, _ := s.Counts()
	if shared != 1 || weak != 1 {
		t.Fatalf("expected counts (1, 1), got (%d, %d)", shared, weak)
	}

	s.Release()
	if !w.IsExpired() {
		t.Fatal("weak pointer should expire when the last owner releases")
	}
	if *drops != 1 {
		t.Fatalf("expected 1 drop, got %d", *drops)
	}

	w.Release()
}

func TestWeak_DoesNotKeepAlive(t *testing.T) {
	v, drops := newTracked("unowned")
	s := NewStrong(v)
	w := WeakOf(&s)

	s.Release()
	if *drops != 1 {
		t.Fatal("weak observer must not keep the resource alive")
	}

	if got := w.Lock(); !got.Empty() {
		t.Fatal("Lock after expiry should return an empty Strong")
	}
	w.Release()
}

func TestWeak_LockPromotes(t *testing.T) {
	v, drops := newTracked("promoted")
	s := NewStrong(v)
	w := s.Downgrade()

	p := w.Lock()
	if p.Empty() {
		t.Fatal("Lock with a live owner should succeed")
	}
	if p.Deref() != v {
		t.Fatal("promoted pointer should reference the live resource")
	}
	if shared, _, _ := countsOf(t, &p); shared != 2 {
		t.Fatalf("promotion should increment the shared count, got %d", shared)
	}

	// The promotion itself keeps the resource alive.
	s.Release()
	if *drops != 0 {
		t.Fatal("resource destroyed while the promoted owner remains")
	}

	p.Release()
	if *drops != 1 {
		t.Fatalf("expected 1 drop, got %d", *drops)
	}
	w.Release()
}

func TestWeak_NewWeakNeverAttaches(t *testing.T) {
	v, _ := newTracked("detached")
	w := NewWeak(v)

	// The raw-reference constructor has no block to attach to, so the
	// observer is expired from birth.
	if !w.IsExpired() {
		t.Fatal("raw-reference weak pointer should be expired")
	}
	if s := w.Lock(); !s.Empty() {
		t.Fatal("Lock on a raw-reference weak pointer should fail")
	}
	if _, _, ok := w.Counts(); ok {
		t.Fatal("raw-reference weak pointer should report no block")
	}
	w.Release()
}

func TestWeak_CloneSharesObservation(t *testing.T) {
	v, _ := newTracked("watched")
	s := NewStrong(v)
	w1 := s.Downgrade()
	w2 := w1.Clone()

	_, weak, _ := s.Counts()
	if weak != 2 {
		t.Fatalf("expected weak count 2, got %d", weak)
	}

	w1.Release()
	if w2.IsExpired() {
		t.Fatal("releasing one observer should not expire another")
	}

	s.Release()
	if !w2.IsExpired() {
		t.Fatal("surviving observer should see expiry")
	}
	w2.Release()
}

func TestWeak_MoveEmptiesSource(t *testing.T) {
	v, _ := newTracked("moved")
	s := NewStrong(v)
	w1 := s.Downgrade()
	w2 := w1.Move()

	if !w1.Empty() {
		t.Fatal("moved-from weak pointer should be empty")
	}
	if !w1.IsExpired() {
		t.Fatal("moved-from weak pointer should report expired")
	}
	if w2.IsExpired() {
		t.Fatal("move target should observe the live resource")
	}
	if _, weak, _ := s.Counts(); weak != 1 {
		t.Fatalf("move must not touch the counter, got weak=%d", weak)
	}

	w1.Release()
	if _, weak, _ := s.Counts(); weak != 1 {
		t.Fatal("release of moved-from pointer touched the counter")
	}

	w2.Release()
	s.Release()
}

func TestWeak_SetReleasesOldObservation(t *testing.T) {
	v1, _ := newTracked("first")
	v2, _ := newTracked("second")
	s1 := NewStrong(v1)
	s2 := NewStrong(v2)
	w1 := s1.Downgrade()
	w2 := s2.Downgrade()

	w1.Set(&w2)

	if _, weak, _ := s1.Counts(); weak != 0 {
		t.Fatalf("assignment should detach from the old block, weak=%d", weak)
	}
	if _, weak, _ := s2.Counts(); weak != 2 {
		t.Fatalf("assignment should attach to the new block, weak=%d", weak)
	}

	w1.Release()
	w2.Release()
	s1.Release()
	s2.Release()
}

func TestWeak_SetSelf(t *testing.T) {
	v, _ := newTracked("self")
	s := NewStrong(v)
	w := s.Downgrade()

	w.Set(&w)

	if w.IsExpired() {
		t.Fatal("self-assignment expired the observer")
	}
	if _, weak, _ := s.Counts(); weak != 1 {
		t.Fatalf("self-assignment corrupted the weak count: %d", weak)
	}

	w.Take(&w)
	if w.IsExpired() {
		t.Fatal("self-move emptied the observer")
	}

	w.Release()
	s.Release()
}

func TestWeak_PromoteAfterReset(t *testing.T) {
	v, drops := newTracked("hello")
	a := NewStrong(v)
	b := a.Clone()
	w := a.Downgrade()

	a.Reset(nil)
	if w.IsExpired() {
		t.Fatal("observer expired while an owner remains")
	}
	if got := w.Lock(); got.Empty() || got.Deref() != v {
		t.Fatal("Lock should still promote to the live resource")
	} else {
		got.Release()
	}

	b.Reset(nil)
	if !w.IsExpired() {
		t.Fatal("observer should expire once every owner resets")
	}
	if got := w.Lock(); !got.Empty() {
		t.Fatal("Lock after full expiry should return an empty Strong")
	}
	if *drops != 1 {
		t.Fatalf("expected exactly 1 drop, got %d", *drops)
	}

	w.Release()
}
