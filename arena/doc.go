// Package arena provides a bump allocator over guard-paged virtual memory.
//
// An Arena hands out zeroed, aligned memory from the newest of a list of
// blocks. When the newest block cannot satisfy a request a fresh block of at
// least MinimumBlockSize bytes is reserved. Memory is never freed
// individually; Release returns every block at once.
//
// Arena memory is invisible to the garbage collector. Only pointer-free
// values (integers, handles, string bytes) may be stored in it:
//
//	a := &arena.Arena{}
//	defer a.Release()
//
//	ids := arena.MakeSlice[uint32](a, 16)
//	name := a.StrDup("factorial")
//
// An Arena is not safe for concurrent use.
package arena
