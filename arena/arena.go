package arena

import (
	"fmt"
	"unsafe"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/c0/arena/internal/vmem"
	"github.com/wippyai/c0/errors"
)

// DefaultMinimumBlockSize is used when MinimumBlockSize is unset or smaller.
const DefaultMinimumBlockSize = 8 << 20

// MemoryBlock is one contiguous region owned by an Arena.
type MemoryBlock struct {
	Prev *MemoryBlock
	Base unsafe.Pointer
	Size uintptr
	Used uintptr

	region *vmem.Region
}

// Arena is a bump allocator. The zero value is ready to use.
type Arena struct {
	curr *MemoryBlock

	// MinimumBlockSize is the smallest block reserved on growth.
	MinimumBlockSize uintptr
}

// Alloc returns size zeroed bytes aligned to alignment.
// The memory stays valid until Release. A zero size still reserves one byte
// so the pointer lies inside its block.
func (a *Arena) Alloc(size, alignment uintptr) unsafe.Pointer {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		err := errors.InvalidInput(errors.PhaseAlloc, fmt.Sprintf("alignment %d is not a power of two", alignment))
		err.Value = alignment
		panic(err)
	}
	if size == 0 {
		size = 1
	}

	var need uintptr
	if a.curr != nil {
		need = size + a.forwardOffset(alignment)
	}

	if a.curr == nil || a.curr.Used+need > a.curr.Size {
		if a.MinimumBlockSize < DefaultMinimumBlockSize {
			a.MinimumBlockSize = DefaultMinimumBlockSize
		}
		request := size
		if alignment > vmem.BaseAlign {
			request += alignment - 1
		}
		a.grow(max(request, a.MinimumBlockSize))
		need = size + a.forwardOffset(alignment)
	}

	b := a.curr
	p := unsafe.Add(b.Base, b.Used+need-size)
	b.Used += need
	return p
}

func (a *Arena) forwardOffset(alignment uintptr) uintptr {
	addr := uintptr(a.curr.Base) + a.curr.Used
	return (alignment - addr&(alignment-1)) & (alignment - 1)
}

func (a *Arena) grow(size uintptr) {
	r, err := vmem.Alloc(size)
	if err != nil {
		total := vmem.TotalUsage()
		Logger().Error("out of virtual memory",
			zap.Uint64("requested", uint64(size)),
			zap.Uint64("total", total),
			zap.Error(err))
		panic(errors.AllocationFailed(uint64(size), total, err))
	}
	a.curr = &MemoryBlock{
		Prev:   a.curr,
		Base:   r.Base,
		Size:   r.Size,
		region: r,
	}
}

// Release frees every block, newest first. The arena is reusable afterwards.
func (a *Arena) Release() error {
	var err error
	for a.curr != nil {
		b := a.curr
		a.curr = b.Prev
		err = multierr.Append(err, vmem.Free(b.region))
	}
	return err
}

// Current returns the newest block, or nil if nothing was allocated.
func (a *Arena) Current() *MemoryBlock {
	return a.curr
}

// Blocks returns the number of live blocks.
func (a *Arena) Blocks() int {
	n := 0
	for b := a.curr; b != nil; b = b.Prev {
		n++
	}
	return n
}

// Used returns the bytes handed out, alignment padding included.
func (a *Arena) Used() uintptr {
	var n uintptr
	for b := a.curr; b != nil; b = b.Prev {
		n += b.Used
	}
	return n
}

// Contains reports whether p points into one of the arena's blocks.
func (a *Arena) Contains(p unsafe.Pointer) bool {
	addr := uintptr(p)
	for b := a.curr; b != nil; b = b.Prev {
		base := uintptr(b.Base)
		if addr >= base && addr < base+b.Size {
			return true
		}
	}
	return false
}
