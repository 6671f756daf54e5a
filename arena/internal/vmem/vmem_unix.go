//go:build unix

package vmem

import "golang.org/x/sys/unix"

func reserve(n uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func protect(b []byte) error {
	return unix.Mprotect(b, unix.PROT_NONE)
}

func release(b []byte) error {
	return unix.Munmap(b)
}
