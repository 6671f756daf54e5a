// Package vmem reserves page-aligned virtual memory for the arena allocator.
//
// Every region is committed read/write and zero-filled by the operating system,
// with one inaccessible guard page on each side. The usable bytes sit flush
// against the trailing guard page, so a write one byte past the end of a
// region faults immediately instead of corrupting a neighbour.
//
// The package keeps process-wide accounting: an atomic counter of reserved
// bytes (guard pages included) and a mutex-guarded list of live regions.
//
// This package is internal to the arena and should not be used directly.
package vmem
