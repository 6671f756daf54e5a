// Package array provides a generic growable array.
//
// Array[T] is a slice with an explicit growth policy: when an append does not
// fit, capacity becomes 2*cap+k for k incoming elements, and the very first
// allocation reserves k+1. The nil Array is a valid empty sequence that has
// never allocated; Free returns an array to that state while Clear keeps its
// storage.
//
// Pointers and sub-slices obtained from an Array are invalidated by any
// operation that grows it.
package array
