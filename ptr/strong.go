package ptr

// Strong is an owning pointer. While at least one Strong pointer for a block
// is alive, the resource is guaranteed alive. The zero value is an empty
// pointer owning nothing.
//
// A Strong pointer must be released exactly once per construction or
// assignment from a non-empty source: by Release, by Reset, or by being
// overwritten through Set/Take. Releasing an empty or moved-from pointer is
// a no-op.
type Strong[T any] struct {
	val   *T
	block *control
}

// NewStrong takes ownership of v, allocating a fresh control block with a
// shared count of 1. A nil v yields an empty pointer and allocates nothing.
func NewStrong[T any](v *T) Strong[T] {
	if v == nil {
		return Strong[T]{}
	}
	return Strong[T]{val: v, block: newControl()}
}

// FromWeak attempts to promote a weak observer into an owner. If the weak
// pointer's block is live (shared count above zero) the result shares the
// resource and increments the shared count; otherwise the result is empty.
func FromWeak[T any](w *Weak[T]) Strong[T] {
	if w.block == nil || w.block.shared == 0 {
		return Strong[T]{}
	}
	w.block.shared++
	emit(w.block, EventPromoted)
	return Strong[T]{val: w.val, block: w.block}
}

// Clone is copy construction: the result references the same resource and
// block and the shared count grows by one. Cloning an empty pointer yields
// an empty pointer.
func (s *Strong[T]) Clone() Strong[T] {
	if s.block != nil {
		s.block.shared++
		emit(s.block, EventShared)
	}
	return Strong[T]{val: s.val, block: s.block}
}

// Move is move construction: the result takes over the receiver's resource
// and block without touching the counters, and the receiver becomes empty.
func (s *Strong[T]) Move() Strong[T] {
	out := Strong[T]{val: s.val, block: s.block}
	s.val = nil
	s.block = nil
	return out
}

// Set is copy assignment: the receiver releases whatever it held, then
// shares other's state. Self-assignment is a no-op.
func (s *Strong[T]) Set(other *Strong[T]) {
	if s == other {
		return
	}
	s.release()
	s.val = other.val
	s.block = other.block
	if s.block != nil {
		s.block.shared++
		emit(s.block, EventShared)
	}
}

// Take is move assignment: the receiver releases whatever it held, takes
// over other's state, and other becomes empty. Self-move is a no-op.
func (s *Strong[T]) Take(other *Strong[T]) {
	if s == other {
		return
	}
	s.release()
	s.val = other.val
	s.block = other.block
	other.val = nil
	other.block = nil
}

// Deref returns the owned value. The pointer must be non-empty; dereferencing
// an empty pointer panics. Callers that cannot guarantee liveness should use
// Get and check for nil.
func (s *Strong[T]) Deref() *T {
	if s.val == nil {
		panic("ptr: deref of empty Strong pointer")
	}
	return s.val
}

// Get returns the raw resource reference, or nil for an empty pointer.
func (s *Strong[T]) Get() *T {
	return s.val
}

// Empty reports whether the pointer owns nothing.
func (s *Strong[T]) Empty() bool {
	return s.block == nil
}

// Counts reports the block's counters. ok is false for an empty pointer.
func (s *Strong[T]) Counts() (shared, weak uint, ok bool) {
	if s.block == nil {
		return 0, 0, false
	}
	return s.block.shared, s.block.weak, true
}

// Downgrade returns a Weak pointer observing the same block, incrementing
// the weak count. Downgrading an empty pointer yields an empty Weak.
func (s *Strong[T]) Downgrade() Weak[T] {
	return WeakOf(s)
}

// Reset releases the current resource, then takes ownership of v exactly as
// NewStrong does: a non-nil v gets a fresh block with a shared count of 1,
// a nil v leaves the pointer empty. Weak pointers watching the old resource
// are unaffected except that the receiver's owning reference is gone.
func (s *Strong[T]) Reset(v *T) {
	s.release()
	if v != nil {
		s.val = v
		s.block = newControl()
	}
}

// Release is the destructor. The shared count drops by one; if it reaches
// zero the resource is destroyed, and if no weak observers remain the block
// is freed. The pointer is empty afterwards, so a second Release is a no-op.
func (s *Strong[T]) Release() {
	s.release()
}

func (s *Strong[T]) release() {
	if s.block != nil {
		val := s.val
		s.block.releaseShared(func() { destroyValue(val) })
	}
	s.val = nil
	s.block = nil
}
