package vmem

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAccounting(t *testing.T) {
	ps := PageSize()
	baseUsage := TotalUsage()
	baseLive := LiveBlocks()

	r, err := Alloc(100)
	require.NoError(t, err)

	assert.Equal(t, uintptr(112), r.Size, "size rounds up to 16")
	assert.Equal(t, 3*ps, r.Total(), "one page plus two guard pages")
	assert.Equal(t, baseUsage+uint64(3*ps), TotalUsage())
	assert.Equal(t, baseLive+1, LiveBlocks())
	assert.Zero(t, uintptr(r.Base)%BaseAlign)

	require.NoError(t, Free(r))
	assert.Equal(t, baseUsage, TotalUsage())
	assert.Equal(t, baseLive, LiveBlocks())
	assert.Nil(t, r.Base)

	// second free is a no-op
	require.NoError(t, Free(r))
	assert.Equal(t, baseUsage, TotalUsage())
}

func TestAllocFlushAgainstTrailingGuard(t *testing.T) {
	ps := PageSize()

	tests := []struct {
		name string
		size uintptr
	}{
		{"tiny", 1},
		{"one page", ps},
		{"page plus one", ps + 1},
		{"several pages", 5*ps - 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Alloc(tt.size)
			require.NoError(t, err)
			defer func() { require.NoError(t, Free(r)) }()

			end := uintptr(r.Base) + r.Size
			assert.Zero(t, end%ps, "usable region must end on a page boundary")
			assert.GreaterOrEqual(t, r.Size, tt.size)
		})
	}
}

func TestAllocZeroedAndWritable(t *testing.T) {
	r, err := Alloc(4096)
	require.NoError(t, err)
	defer func() { require.NoError(t, Free(r)) }()

	mem := unsafe.Slice((*byte)(r.Base), r.Size)
	for i, b := range mem {
		if b != 0 {
			t.Fatalf("expected zeroed memory at %d, got %d", i, b)
		}
	}
	for i := range mem {
		mem[i] = byte(i)
	}
	assert.Equal(t, byte(255), mem[255])
}

func TestConcurrentAllocFree(t *testing.T) {
	baseUsage := TotalUsage()
	baseLive := LiveBlocks()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				r, err := Alloc(uintptr(n*1024 + j))
				if err != nil {
					t.Errorf("alloc: %v", err)
					return
				}
				if err := Free(r); err != nil {
					t.Errorf("free: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, baseUsage, TotalUsage())
	assert.Equal(t, baseLive, LiveBlocks())
}
