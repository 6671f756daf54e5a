package ir

import (
	"math"

	"github.com/wippyai/c0/errors"
)

// PushConst pushes a literal of type b with raw bits v. Signed values are
// stored sign-extended; 128-bit constants take the upper half from
// PushConst128.
func (p *Proc) PushConst(b BasicType, v uint64) Ref {
	return p.PushConst128(b, 0, v)
}

// PushConst128 pushes a literal whose upper 64 bits are hi.
func (p *Proc) PushConst128(b BasicType, hi, lo uint64) Ref {
	if !p.begin(KindDecl) {
		return Nil
	}
	if b == Void || b >= BasicCount {
		p.mismatch("const", "non-void basic type", b.String())
	}
	return p.emit(&Instr{Kind: KindDecl, Basic: b, Value: lo, ValueHi: hi, literal: true})
}

func (p *Proc) PushI8(v int8) Ref    { return p.PushConst(I8, uint64(int64(v))) }
func (p *Proc) PushU8(v uint8) Ref   { return p.PushConst(U8, uint64(v)) }
func (p *Proc) PushI16(v int16) Ref  { return p.PushConst(I16, uint64(int64(v))) }
func (p *Proc) PushU16(v uint16) Ref { return p.PushConst(U16, uint64(v)) }
func (p *Proc) PushI32(v int32) Ref  { return p.PushConst(I32, uint64(int64(v))) }
func (p *Proc) PushU32(v uint32) Ref { return p.PushConst(U32, uint64(v)) }
func (p *Proc) PushI64(v int64) Ref  { return p.PushConst(I64, uint64(v)) }
func (p *Proc) PushU64(v uint64) Ref { return p.PushConst(U64, v) }

// PushPtr pushes an address literal.
func (p *Proc) PushPtr(v uint64) Ref { return p.PushConst(Ptr, v) }

// PushF16Bits pushes a half-precision literal from its raw bits.
func (p *Proc) PushF16Bits(bits uint16) Ref { return p.PushConst(F16, uint64(bits)) }

func (p *Proc) PushF32(v float32) Ref { return p.PushConst(F32, uint64(math.Float32bits(v))) }
func (p *Proc) PushF64(v float64) Ref { return p.PushConst(F64, math.Float64bits(v)) }

// PushZero pushes the zero value of b.
func (p *Proc) PushZero(b BasicType) Ref {
	return p.PushConst(b, 0)
}

// PushOnes pushes the integer of type b with every bit set.
func (p *Proc) PushOnes(b BasicType) Ref {
	switch {
	case b == I128 || b == U128:
		return p.PushConst128(b, math.MaxUint64, math.MaxUint64)
	case b.IsSigned():
		return p.PushConst(b, math.MaxUint64)
	case b.IsInteger():
		return p.PushConst(b, math.MaxUint64>>(64-b.Bits()))
	}
	if !p.begin(KindDecl) {
		return Nil
	}
	p.mismatch("ones", "integer", b.String())
	return Nil
}

// PushDecl declares a local slot of type b.
func (p *Proc) PushDecl(b BasicType, name string) Ref {
	return p.PushDeclAlign(b, name, 0)
}

// PushDeclAlign declares a local slot with an explicit alignment.
// Zero keeps the natural alignment.
func (p *Proc) PushDeclAlign(b BasicType, name string, align uint32) Ref {
	if !p.begin(KindDecl) {
		return Nil
	}
	if b == Void || b >= BasicCount {
		p.mismatch("decl", "non-void basic type", b.String())
	}
	p.checkAlign("decl", align)
	return p.emit(&Instr{Kind: KindDecl, Basic: b, Name: p.gen.arena.StrDup(name), Align: align})
}

// PushDeclAgg declares a local slot of aggregate type t. Basic aggregates
// declare the underlying basic type.
func (p *Proc) PushDeclAgg(t *AggType, name string) Ref {
	return p.PushDeclAggAlign(t, name, 0)
}

// PushDeclAggAlign is PushDeclAgg with an explicit alignment.
func (p *Proc) PushDeclAggAlign(t *AggType, name string, align uint32) Ref {
	if t == nil {
		panic(errors.NilOperand(errors.PhaseBuild, p.path("decl"), "type"))
	}
	if t.Kind == AggBasic {
		return p.PushDeclAlign(t.Basic, name, align)
	}
	if !p.begin(KindDecl) {
		return Nil
	}
	p.checkAlign("decl", align)
	return p.emit(&Instr{Kind: KindDecl, Agg: t, Name: p.gen.arena.StrDup(name), Align: align})
}

// PushCopy declares an unnamed slot initialized with the value of arg and
// returns the slot.
func (p *Proc) PushCopy(arg Ref) Ref {
	if !p.begin(KindDecl) {
		return Nil
	}
	src := p.basicValue("copy", "arg", arg)
	decl := p.PushDecl(src.Basic, "")
	p.PushStore(decl, arg)
	return decl
}

func (p *Proc) checkAlign(op string, align uint32) {
	if align&(align-1) != 0 {
		panic(errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Path(p.Name, op).
			Detail("alignment %d is not a power of two", align).
			Value(align).
			Build())
	}
}
