package ir

import (
	"go.uber.org/zap"

	"github.com/wippyai/c0/arena"
	"github.com/wippyai/c0/array"
	"github.com/wippyai/c0/errors"
)

// Generator owns types, procedures and the arena backing their names and
// operand lists. It is not safe for concurrent use.
type Generator struct {
	arena *arena.Arena
	log   *zap.Logger

	Name     string
	ptrSize  int64
	basic    [BasicCount]*AggType
	files    array.Array[string]
	types    array.Array[*AggType]
	procs    array.Array[*Proc]
	registry Registry
}

// New creates a generator.
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = Logger()
	}

	g := &Generator{
		arena:   &arena.Arena{MinimumBlockSize: uintptr(opts.MinimumBlockSize)},
		log:     log,
		ptrSize: opts.PointerSize,
	}
	g.Name = g.arena.StrDup(opts.Name)
	if g.Name != "" {
		g.log = g.log.With(zap.String("generator", g.Name))
	}

	for b := Void; b < BasicCount; b++ {
		size := g.BasicSize(b)
		t := &AggType{Kind: AggBasic, Basic: b, Size: size, Align: max(size, 1)}
		g.basic[b] = t
		g.types.Push(t)
	}

	return g, nil
}

// MustNew is New that panics on invalid options.
func MustNew(opts Options) *Generator {
	g, err := New(opts)
	if err != nil {
		panic(err)
	}
	return g
}

// Destroy releases the arena. Nothing obtained from the generator may be
// used afterwards.
func (g *Generator) Destroy() error {
	if g.arena == nil {
		return nil
	}
	err := g.arena.Release()
	g.arena = nil
	g.files.Free()
	g.types.Free()
	g.procs.Free()
	if err != nil {
		return errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "release arena")
	}
	return nil
}

// PointerSize returns the target pointer width in bytes.
func (g *Generator) PointerSize() int64 {
	return g.ptrSize
}

// BasicSize returns the size of b in bytes, resolving Ptr.
func (g *Generator) BasicSize(b BasicType) int64 {
	if b == Ptr {
		return g.ptrSize
	}
	return basicSizes[b]
}

// AddFile registers a source file name and returns its index for SetLoc.
func (g *Generator) AddFile(name string) uint32 {
	g.files.Push(g.arena.StrDup(name))
	return uint32(g.files.Len() - 1)
}

// File returns the name registered under index.
func (g *Generator) File(index uint32) string {
	return g.files.At(int(index))
}

// Procs returns the procedures in creation order.
func (g *Generator) Procs() []*Proc {
	return g.procs.Slice()
}

// Types returns every type created by the generator, basics first.
func (g *Generator) Types() []*AggType {
	return g.types.Slice()
}

// Registry returns the kinds used by finished procedures.
func (g *Generator) Registry() *Registry {
	return &g.registry
}
