// Package errors provides structured error types for the refptr library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: script name, step number,
// operation name, and cause chain. Pointer operations themselves never return
// errors — expiry is signaled by empty results and contract violations panic —
// so this package serves the script and tooling layers.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRun, errors.KindUnknownPointer).
//		Script("promote-after-reset").
//		Step(4).
//		Op("clone").
//		Detail("no pointer named %q", "b").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownPointer(script, step, op, name)
//	err := errors.Expectation(script, step, "expired=false, got true")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
