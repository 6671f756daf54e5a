package array

import "github.com/wippyai/c0/errors"

// Array is a growable sequence of T.
type Array[T any] []T

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a) }

// Cap returns the allocated capacity.
func (a Array[T]) Cap() int { return cap(a) }

// Slice returns the elements as a plain slice sharing storage with a.
func (a Array[T]) Slice() []T { return a }

// At returns element i. It panics if i is out of range.
func (a Array[T]) At(i int) T {
	a.check(i, len(a))
	return a[i]
}

// Ref returns a pointer to element i, valid until the array grows.
func (a Array[T]) Ref(i int) *T {
	a.check(i, len(a))
	return &a[i]
}

// Set replaces element i.
func (a Array[T]) Set(i int, v T) {
	a.check(i, len(a))
	a[i] = v
}

// Last returns the final element. It panics on an empty array.
func (a Array[T]) Last() T {
	a.check(len(a)-1, len(a))
	return a[len(a)-1]
}

// Push appends v.
func (a *Array[T]) Push(v T) {
	a.reserve(1)
	*a = append(*a, v)
}

// Append appends every element of vs.
func (a *Array[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	a.reserve(len(vs))
	*a = append(*a, vs...)
}

// Pop removes and returns the final element; ok is false on an empty array.
func (a *Array[T]) Pop() (v T, ok bool) {
	n := len(*a)
	if n == 0 {
		return v, false
	}
	v = (*a)[n-1]
	var zero T
	(*a)[n-1] = zero
	*a = (*a)[:n-1]
	return v, true
}

// Insert places v at index i, shifting later elements right. i may equal Len.
func (a *Array[T]) Insert(i int, v T) {
	a.check(i, len(*a)+1)
	a.reserve(1)
	*a = append(*a, v)
	copy((*a)[i+1:], (*a)[i:len(*a)-1])
	(*a)[i] = v
}

// OrderedRemove deletes element i, preserving the order of the rest.
func (a *Array[T]) OrderedRemove(i int) T {
	a.check(i, len(*a))
	s := *a
	v := s[i]
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	*a = s[:len(s)-1]
	return v
}

// Resize sets the length to n. New elements are zeroed.
func (a *Array[T]) Resize(n int) {
	if n < 0 {
		panic(errors.OutOfBounds(errors.PhaseAlloc, []string{"array", "resize"}, n, len(*a)))
	}
	if n <= len(*a) {
		clear((*a)[n:])
		*a = (*a)[:n]
		return
	}
	a.reserve(n - len(*a))
	*a = (*a)[:n]
}

// Clear drops every element but keeps the storage.
func (a *Array[T]) Clear() {
	clear(*a)
	*a = (*a)[:0]
}

// Free drops the storage, returning the array to its never-allocated state.
func (a *Array[T]) Free() {
	*a = nil
}

// reserve guarantees room for k more elements.
func (a *Array[T]) reserve(k int) {
	n := len(*a)
	if n+k <= cap(*a) {
		return
	}
	c := 2*cap(*a) + k
	if *a == nil {
		c = k + 1
	}
	next := make([]T, n, c)
	copy(next, *a)
	*a = next
}

func (a Array[T]) check(i, n int) {
	if i < 0 || i >= n {
		panic(errors.OutOfBounds(errors.PhaseAlloc, []string{"array"}, i, len(a)))
	}
}
