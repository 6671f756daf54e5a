package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in building the error occurred
type Phase string

const (
	PhaseAlloc  Phase = "alloc"  // arena and virtual memory
	PhaseType   Phase = "type"   // type construction
	PhaseBuild  Phase = "build"  // instruction construction
	PhaseFinish Phase = "finish" // finishing passes
	PhaseConfig Phase = "config" // generator options
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindInvalidOperand   Kind = "invalid_operand"
	KindNilOperand       Kind = "nil_operand"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindUnbalancedBlocks Kind = "unbalanced_blocks"
	KindNotInLoop        Kind = "not_in_loop"
	KindDuplicateLabel   Kind = "duplicate_label"
	KindUndeclaredLabel  Kind = "undeclared_label"
	KindMissingReturn    Kind = "missing_return"
	KindArgCount         Kind = "arg_count"
	KindUnsupported      Kind = "unsupported"
	KindAllocation       Kind = "allocation"
	KindInvalidInput     Kind = "invalid_input"
	KindSealed           Kind = "sealed"
)

// Error is the structured error type used throughout the builder
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Actual   string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(": ")
		if e.Expected != "" && e.Actual != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Actual)
		} else if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		} else {
			b.WriteString("got ")
			b.WriteString(e.Actual)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.Actual != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the location path (procedure, operation)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the expected type or kind name
func (b *Builder) Expected(s string) *Builder {
	b.err.Expected = s
	return b
}

// Actual sets the offending type or kind name
func (b *Builder) Actual(s string) *Builder {
	b.err.Actual = s
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

// InvalidOperand creates an error for an operand of the wrong instruction kind
func InvalidOperand(phase Phase, path []string, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidOperand,
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

// NilOperand creates an error for a missing operand
func NilOperand(phase Phase, path []string, operand string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilOperand,
		Path:   path,
		Detail: fmt.Sprintf("operand %s is nil", operand),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(requested, total uint64, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("out of virtual memory: requested %d bytes, total usage %d bytes", requested, total),
		Value:  requested,
		Cause:  cause,
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// MissingReturn creates a missing return error for a non-void procedure
func MissingReturn(proc, expected string) *Error {
	return &Error{
		Phase:    PhaseFinish,
		Kind:     KindMissingReturn,
		Path:     []string{proc},
		Expected: expected,
		Detail:   "procedure missing return statement",
	}
}

// Unbalanced creates an unbalanced block nesting error
func Unbalanced(phase Phase, proc string, open int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnbalancedBlocks,
		Path:   []string{proc},
		Detail: fmt.Sprintf("%d nested block(s) still open", open),
		Value:  open,
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
