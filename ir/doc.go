// Package ir builds procedures of a low-level, statically typed intermediate
// representation.
//
// # Generator and Types
//
// A Generator owns every type and procedure. Basic types are interned; array,
// record and procedure types are created on demand:
//
//	gen := ir.MustNew(ir.DefaultOptions())
//	defer gen.Destroy()
//
//	u32 := gen.Basic(ir.U32)
//	vec := gen.Record("vec", []string{"x", "y"}, []*ir.AggType{u32, u32}, nil)
//	sig := gen.ProcType(u32, []string{"v"}, []*ir.AggType{gen.Basic(ir.Ptr)}, 0)
//
// # Building Procedures
//
// Instructions are addressed by Ref handles. Each Push verb validates its
// operands, increments their use counts and appends the new instruction to
// the innermost open block:
//
//	p := gen.NewProc("sum", sig)
//	v := p.Params()[0]
//	x := p.PushLoad(ir.U32, p.PushFieldPtr(vec, v, 0))
//	y := p.PushLoad(ir.U32, p.PushFieldPtr(vec, v, 1))
//	p.PushReturn(p.PushAdd(x, y))
//
// Control flow is structured: PushIf, PushLoop and PushBlock open blocks that
// are closed by the matching Pop. An if gets an else branch with ElseBlock
// after PopIf. Loops are left with PushBreak; PushGoto targets labels within
// the same procedure.
//
// Once the last instruction of a block terminates (return, unreachable, or a
// block whose every path terminates) further pushes into that block are
// dropped with a warning and return Nil.
//
// # Finishing
//
// Finish seals a procedure: unused side-effect-free values are removed,
// trailing terminating blocks are followed by an unreachable, value ids are
// assigned and every used kind is recorded in the generator's Registry.
//
// # Operation Classes
//
// Binary operations fall into three classes:
//
//	add sub mul and or xor eq neq        operands agree after unsigned normalization
//	quo rem shlc shrc shlo shro lt ...   operands have identical integer types
//	addf subf mulf divf eqf ...          operands have identical float types
//
// Comparisons produce u8. Stores, atomics, memmove, memset and calls have side
// effects and are never removed.
package ir
