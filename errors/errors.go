package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // script document parsing
	PhaseValidate Phase = "validate" // script validation
	PhaseRun      Phase = "run"      // script execution
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData      Kind = "invalid_data"
	KindInvalidOp        Kind = "invalid_op"
	KindUnknownPointer   Kind = "unknown_pointer"
	KindDuplicatePointer Kind = "duplicate_pointer"
	KindExpectation      Kind = "expectation_failed"
	KindNilPointer       Kind = "nil_pointer"
	KindUnsupported      Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	ScriptName string
	OpName     string
	Detail     string
	StepIndex  int // 1-based, 0 when the error is not tied to a step
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.ScriptName != "" {
		b.WriteString(" in ")
		b.WriteString(e.ScriptName)
	}
	if e.StepIndex > 0 {
		fmt.Fprintf(&b, " at step %d", e.StepIndex)
	}
	if e.OpName != "" {
		b.WriteString(" (")
		b.WriteString(e.OpName)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Script sets the script name
func (b *Builder) Script(name string) *Builder {
	b.err.ScriptName = name
	return b
}

// Step sets the 1-based step number
func (b *Builder) Step(n int) *Builder {
	b.err.StepIndex = n
	return b
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.OpName = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// InvalidData creates a validation error for malformed script content
func InvalidData(script string, step int, detail string) *Error {
	return &Error{
		Phase:      PhaseValidate,
		Kind:       KindInvalidData,
		ScriptName: script,
		StepIndex:  step,
		Detail:     detail,
	}
}

// InvalidOp creates an error for an unrecognized operation
func InvalidOp(script string, step int, op string) *Error {
	return &Error{
		Phase:      PhaseValidate,
		Kind:       KindInvalidOp,
		ScriptName: script,
		StepIndex:  step,
		OpName:     op,
		Detail:     fmt.Sprintf("unknown operation %q", op),
		Value:      op,
	}
}

// UnknownPointer creates an error for a reference to an undefined pointer
func UnknownPointer(script string, step int, op, name string) *Error {
	return &Error{
		Phase:      PhaseRun,
		Kind:       KindUnknownPointer,
		ScriptName: script,
		StepIndex:  step,
		OpName:     op,
		Detail:     fmt.Sprintf("no pointer named %q", name),
		Value:      name,
	}
}

// DuplicatePointer creates an error for redefining an existing pointer name
func DuplicatePointer(script string, step int, op, name string) *Error {
	return &Error{
		Phase:      PhaseRun,
		Kind:       KindDuplicatePointer,
		ScriptName: script,
		StepIndex:  step,
		OpName:     op,
		Detail:     fmt.Sprintf("pointer %q already defined", name),
		Value:      name,
	}
}

// Expectation creates an error for a failed scenario expectation
func Expectation(script string, step int, detail string) *Error {
	return &Error{
		Phase:      PhaseRun,
		Kind:       KindExpectation,
		ScriptName: script,
		StepIndex:  step,
		OpName:     "expect",
		Detail:     detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
