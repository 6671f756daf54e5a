// Package c0 builds a low-level, statically typed intermediate representation
// one instruction at a time.
//
// Callers describe types, declare procedures with signatures and push
// instructions into a structured control-flow tree. The builder keeps operand
// types in agreement, counts uses and tracks block nesting; finishing a
// procedure removes dead values, patches terminators, assigns value ids and
// records which instruction kinds a code generator has to support.
//
// # Architecture Overview
//
//	c0/
//	├── ir/                 Types, generator, procedures, builder verbs, finishing passes
//	├── array/              Generic growable array
//	├── arena/              Bump allocator over virtual-memory blocks
//	│   └── internal/vmem/  Guard-paged reserve/protect/release and global accounting
//	└── errors/             Structured error types for debugging
//
// # Quick Start
//
// Build and finish a factorial procedure:
//
//	gen, err := ir.New(ir.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Destroy()
//
//	u32 := gen.Basic(ir.U32)
//	sig := gen.ProcType(u32, []string{"n"}, []*ir.AggType{u32}, 0)
//	p := gen.NewProc("factorial", sig)
//	n := p.Params()[0]
//
//	p.PushIf(p.PushLt(n, p.PushU32(2)))
//	p.PushReturn(p.PushU32(1))
//	p.PopIf()
//
//	rec := p.PushCall(p, p.PushSub(n, p.PushU32(1)))
//	p.PushReturn(p.PushMul(n, rec))
//
//	if err := p.Finish(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Construction mistakes (mismatched operand types, a break outside a loop,
// an unbalanced pop) are programming errors and panic with *errors.Error.
// Wrap construction code in ir.Catch to turn them into returned errors:
//
//	err := ir.Catch(func() {
//	    p.PushAdd(a, b)
//	})
//	if errors.Is(err, errors.New(errors.PhaseBuild, errors.KindTypeMismatch).Build()) {
//	    // handle
//	}
//
// Pushing past a terminating instruction is not an error: the builder logs a
// warning and returns ir.Nil.
//
// # Memory
//
// Names and operand lists live in an arena of guard-paged virtual memory owned
// by the generator. Everything obtained from a generator is valid until
// Generator.Destroy.
package c0
