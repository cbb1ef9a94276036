package ptr

import (
	"github.com/google/uuid"

	"github.com/wippyai/refptr"
)

// control is the bookkeeping record shared by every pointer that references
// the same resource. It is owned jointly: no single pointer frees it, the
// last one out does.
type control struct {
	id        uuid.UUID
	shared    uint
	weak      uint
	destroyed bool
	freed     bool
}

// newControl allocates a block for a freshly owned resource.
// Always created together with a Strong pointer, so shared starts at 1.
func newControl() *control {
	c := &control{
		id:     uuid.New(),
		shared: 1,
	}
	emit(c, EventAllocated)
	return c
}

// releaseShared drops one owning reference. When the last owner lets go the
// resource's destructor runs; when no weak observers remain either, the
// block is freed.
func (c *control) releaseShared(destroy func()) {
	c.shared--
	if c.shared > 0 {
		return
	}
	destroy()
	c.destroyed = true
	emit(c, EventResourceDestroyed)
	if c.weak == 0 {
		c.free()
	}
}

// releaseWeak drops one observing reference, freeing the block if no owners
// or observers remain.
func (c *control) releaseWeak() {
	c.weak--
	if c.weak == 0 && c.shared == 0 {
		c.free()
	}
}

func (c *control) free() {
	if c.freed {
		// A second free would be a double-free in the original model.
		panic("ptr: control block freed twice")
	}
	c.freed = true
	emit(c, EventBlockFreed)
}

// destroyValue invokes the resource destructor if the value carries one.
func destroyValue[T any](v *T) {
	if d, ok := any(v).(refptr.Dropper); ok {
		d.Drop()
	}
}
