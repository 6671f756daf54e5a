package vmem

import (
	"container/list"
	"os"
	"sync"
	"unsafe"

	"go.uber.org/atomic"
)

// BaseAlign is the alignment guaranteed for Region.Base.
const BaseAlign = 16

// Region is a reserved block of virtual memory.
type Region struct {
	Base unsafe.Pointer // first usable byte
	Size uintptr        // usable bytes

	mapping []byte // whole mapping, guard pages included
	elem    *list.Element
}

// Total returns the number of bytes reserved for the region, guard pages included.
func (r *Region) Total() uintptr {
	return uintptr(len(r.mapping))
}

var (
	pageSize uintptr = 4096
	initOnce sync.Once

	usage = atomic.NewUint64(0)

	registry = struct {
		sync.Mutex
		regions *list.List
	}{regions: list.New()}
)

// Init reads the system page size. It is called implicitly by Alloc.
func Init() {
	initOnce.Do(func() {
		if ps := uintptr(os.Getpagesize()); ps > pageSize {
			pageSize = ps
		}
	})
}

// PageSize returns the page size used for rounding and guard pages.
func PageSize() uintptr {
	Init()
	return pageSize
}

// Alloc reserves a region with at least size usable bytes.
func Alloc(size uintptr) (*Region, error) {
	Init()

	size = alignUp(max(size, 1), BaseAlign)
	rounded := alignUp(size, pageSize)
	total := rounded + 2*pageSize

	mapping, err := reserve(total)
	if err != nil {
		return nil, err
	}
	if err := protect(mapping[:pageSize]); err != nil {
		_ = release(mapping)
		return nil, err
	}
	if err := protect(mapping[pageSize+rounded:]); err != nil {
		_ = release(mapping)
		return nil, err
	}

	usage.Add(uint64(total))

	r := &Region{
		Base:    unsafe.Pointer(&mapping[pageSize+rounded-size]),
		Size:    size,
		mapping: mapping,
	}

	registry.Lock()
	r.elem = registry.regions.PushBack(r)
	registry.Unlock()

	return r, nil
}

// Free unregisters the region and returns its memory to the operating system.
func Free(r *Region) error {
	if r == nil || r.mapping == nil {
		return nil
	}

	registry.Lock()
	registry.regions.Remove(r.elem)
	registry.Unlock()

	usage.Sub(uint64(len(r.mapping)))

	err := release(r.mapping)
	r.mapping = nil
	r.Base = nil
	r.elem = nil
	return err
}

// TotalUsage returns the bytes currently reserved across all live regions.
func TotalUsage() uint64 {
	return usage.Load()
}

// LiveBlocks returns the number of regions not yet freed.
func LiveBlocks() int {
	registry.Lock()
	defer registry.Unlock()
	return registry.regions.Len()
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
