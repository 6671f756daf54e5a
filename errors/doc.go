// Package errors provides structured error types for the c0 IR builder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the location path (procedure, operation), the expected and
// actual type or instruction-kind names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBuild, errors.KindTypeMismatch).
//		Path("factorial", "add").
//		Expected("u32").
//		Actual("f64").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseBuild, path, "u32", "f64")
//	err := errors.OutOfBounds(errors.PhaseBuild, path, 3, 2)
//
// Builder misuse is reported by panicking with an *Error; the ir package
// converts those panics back into returned errors where a caller asks for it.
// All errors implement the standard error interface and support errors.Is/As.
package errors
