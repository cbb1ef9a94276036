// Package ptr implements the strong/weak pointer pair and the control block
// that binds them.
//
// # Ownership Model
//
// A resource and its control block form a paired unit. The block is allocated
// the moment the first Strong pointer takes ownership of a non-nil resource
// and records two plain counters:
//
//	shared — number of live Strong pointers owning the resource
//	weak   — number of live Weak pointers observing it
//
// The resource is destroyed exactly when shared drops from 1 to 0. The block
// itself is freed when both counters reach zero, which may happen at that
// same moment or later if weak observers outlive every owner.
//
// # Strong and Weak
//
// Strong[T] is the owning handle. While at least one Strong pointer for a
// block is alive, the resource is guaranteed alive. Weak[T] observes the same
// block without keeping the resource alive; it can report expiry (IsExpired)
// or attempt a promotion back to ownership (Lock).
//
// Go has no copy constructors or destructors, so the special members are
// explicit methods:
//
//	b := a.Clone()   // copy construction: shares the block, shared++
//	b := a.Move()    // move construction: transfer, a becomes empty
//	b.Set(&a)        // copy assignment: release b's old state, then share a's
//	b.Take(&a)       // move assignment: release, transfer, empty a
//	a.Release()      // destruction: every pointer must be released exactly once
//
// Release on an already-empty pointer is a no-op; moved-from pointers are
// emptied structurally, so releasing them is always safe.
//
// # Lifecycle Events
//
// Every counter transition emits an Event to subscribed Observers, carrying
// the block's identity and the counter values after the transition. Tests and
// the trace package use this to assert that destruction and block teardown
// each happen exactly once.
//
// # Concurrency
//
// None. Counters are plain integers and the observer list is an unguarded
// slice. All pointers sharing a block belong to one goroutine.
package ptr
