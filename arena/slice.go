package arena

import (
	"unsafe"

	"github.com/wippyai/c0/errors"
)

// New allocates a zeroed T. T must not contain Go pointers.
func New[T any](a *Arena) *T {
	var zero T
	return (*T)(a.Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero)))
}

// MakeSlice allocates a zeroed slice of n elements. T must not contain Go pointers.
func MakeSlice[T any](a *Arena, n int) []T {
	if n < 0 {
		panic(errors.New(errors.PhaseAlloc, errors.KindInvalidInput).
			Detail("negative slice length %d", n).
			Value(n).
			Build())
	}
	if n == 0 {
		return nil
	}
	var zero T
	p := a.Alloc(unsafe.Sizeof(zero)*uintptr(n), unsafe.Alignof(zero))
	return unsafe.Slice((*T)(p), n)
}

// StrDup copies s into the arena.
func (a *Arena) StrDup(s string) string {
	if s == "" {
		return ""
	}
	b := MakeSlice[byte](a, len(s))
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}
