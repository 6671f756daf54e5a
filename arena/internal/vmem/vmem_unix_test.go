//go:build unix

package vmem

import (
	"runtime/debug"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestGuardPageFaults(t *testing.T) {
	r, err := Alloc(64)
	require.NoError(t, err)
	defer func() { require.NoError(t, Free(r)) }()

	tests := []struct {
		name   string
		offset int
	}{
		{"past end", int(r.Size)},
		{"leading guard", -int(PageSize()-r.Size) - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Panics(t, func() {
				old := debug.SetPanicOnFault(true)
				defer debug.SetPanicOnFault(old)
				*(*byte)(unsafe.Add(r.Base, tt.offset)) = 1
			})
		})
	}
}
