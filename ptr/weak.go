package ptr

// Weak is a non-owning observer. It never keeps the resource alive; it can
// outlive every owner and report that the resource expired. The zero value
// is an empty pointer observing nothing.
type Weak[T any] struct {
	val   *T
	block *control
}

// NewWeak stores a raw resource reference without attaching to any control
// block. No block exists at this point in construction, so the result never
// observes a live resource: IsExpired reports true and Lock returns an empty
// Strong pointer. The path is kept for contract compatibility with the
// original system; WeakOf is the way to obtain a live observer.
func NewWeak[T any](v *T) Weak[T] {
	return Weak[T]{val: v}
}

// WeakOf attaches an observer to a Strong pointer's block, incrementing the
// weak count. An empty source yields an empty Weak.
func WeakOf[T any](s *Strong[T]) Weak[T] {
	if s.block != nil {
		s.block.weak++
		emit(s.block, EventWeakAttached)
	}
	return Weak[T]{val: s.val, block: s.block}
}

// Clone is copy construction: shares the observed block and increments the
// weak count. Cloning an empty pointer yields an empty pointer.
func (w *Weak[T]) Clone() Weak[T] {
	if w.block != nil {
		w.block.weak++
		emit(w.block, EventWeakAttached)
	}
	return Weak[T]{val: w.val, block: w.block}
}

// Move is move construction: transfers the observation without touching the
// counters and empties the receiver.
func (w *Weak[T]) Move() Weak[T] {
	out := Weak[T]{val: w.val, block: w.block}
	w.val = nil
	w.block = nil
	return out
}

// Set is copy assignment: releases the receiver's prior observation, then
// shares other's. Self-assignment is a no-op.
func (w *Weak[T]) Set(other *Weak[T]) {
	if w == other {
		return
	}
	w.release()
	w.val = other.val
	w.block = other.block
	if w.block != nil {
		w.block.weak++
		emit(w.block, EventWeakAttached)
	}
}

// Take is move assignment: releases the receiver's prior observation, takes
// over other's, and empties other. Self-move is a no-op.
func (w *Weak[T]) Take(other *Weak[T]) {
	if w == other {
		return
	}
	w.release()
	w.val = other.val
	w.block = other.block
	other.val = nil
	other.block = nil
}

// Lock attempts to promote the observer into an owner. If the block is live
// it returns a Strong pointer sharing the resource (shared count grows by
// one); otherwise it returns an empty Strong pointer. Absence of a live
// resource is signaled purely by the empty result.
func (w *Weak[T]) Lock() Strong[T] {
	if w.block != nil && w.block.shared > 0 {
		return FromWeak(w)
	}
	return Strong[T]{}
}

// IsExpired reports whether the observed resource is gone: the pointer is
// empty, was never attached, or every owner has released.
func (w *Weak[T]) IsExpired() bool {
	return w.block == nil || w.block.shared == 0
}

// Empty reports whether the pointer observes no block.
func (w *Weak[T]) Empty() bool {
	return w.block == nil
}

// Counts reports the observed block's counters. ok is false when no block
// is attached.
func (w *Weak[T]) Counts() (shared, weak uint, ok bool) {
	if w.block == nil {
		return 0, 0, false
	}
	return w.block.shared, w.block.weak, true
}

// Release is the destructor. The weak count drops by one; if both counters
// are now zero the block is freed. The pointer is empty afterwards, so a
// second Release is a no-op.
func (w *Weak[T]) Release() {
	w.release()
}

func (w *Weak[T]) release() {
	if w.block != nil {
		w.block.releaseWeak()
	}
	w.val = nil
	w.block = nil
}
