//go:build !unix && !windows

package vmem

// Platforms without mmap get heap-backed regions; guard pages are not enforced.

func reserve(n uintptr) ([]byte, error) {
	return make([]byte, n), nil
}

func protect([]byte) error { return nil }

func release([]byte) error { return nil }
