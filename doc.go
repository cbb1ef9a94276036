// Package refptr provides a manual reference-counting smart-pointer pair:
// a strong (owning) pointer and a weak (observing) pointer sharing a
// hand-maintained control block.
//
// Unlike Go's garbage collector, which decides object lifetime implicitly,
// this library makes ownership explicit: a resource is destroyed at the exact
// moment its last strong pointer releases it, and weak pointers can observe
// that moment without extending the resource's life. The counters are plain
// (non-atomic) by design — the library models single-threaded ownership and
// a control block must not be shared across goroutines.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	refptr/          Root package with the Dropper destructor interface
//	├── ptr/         Strong[T] and Weak[T] pointers and the control block
//	├── text/        The text buffer resource type
//	├── script/      YAML-driven pointer lifetime scenarios
//	├── trace/       Lifecycle event tracing through zap
//	└── errors/      Structured error types for scripts and tooling
//
// # Quick Start
//
// Create an owning pointer, share it, and watch it expire:
//
//	a := ptr.NewStrong(text.New("hello"))
//	b := a.Clone()          // shared count is now 2
//	w := a.Downgrade()      // weak observer
//
//	a.Release()
//	fmt.Println(w.IsExpired()) // false, b still owns the buffer
//
//	b.Release()
//	fmt.Println(w.IsExpired()) // true
//	s := w.Lock()
//	fmt.Println(s.Get() == nil) // true, promotion failed
//
// # Destruction
//
// When the last strong pointer releases a resource whose value implements
// Dropper, its Drop method runs exactly once. The control block itself is
// freed when the last pointer of either kind lets go of it.
//
// # Thread Safety
//
// Nothing in this library is safe for concurrent use. Pointers sharing a
// control block must live on a single goroutine, or access must be
// synchronized externally. This is the library's entire point: it reproduces
// the unsynchronized counting algorithm faithfully rather than hiding it
// behind atomics.
package refptr
