package ir

import "github.com/wippyai/c0/errors"

// PushBin pushes a binary instruction of kind with an explicit result type.
// Operand validation follows the class of kind; typ overrides the result.
func (p *Proc) PushBin(kind Kind, typ BasicType, l, r Ref) Ref {
	if !p.begin(kind) {
		return Nil
	}
	op := kind.String()
	switch {
	case kind >= KindAdd && kind <= KindNeq:
		p.checkUnsignedClass(op, l, r)
	case kind >= KindQuo && kind <= KindGteq:
		p.checkSignedClass(op, l, r)
	case kind >= KindAddf && kind <= KindGteqf:
		p.checkFloatClass(op, l, r)
	default:
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path(op), "binary kind", op))
	}
	if typ == Void || typ >= BasicCount {
		p.mismatch(op, "non-void result", typ.String())
	}
	return p.emit(&Instr{Kind: kind, Basic: typ, Args: p.args(l, r)})
}

func (p *Proc) bin(kind Kind, l, r Ref) Ref {
	if !p.begin(kind) {
		return Nil
	}
	typ := U8
	if !kind.IsCompare() {
		typ = p.basicValue(kind.String(), "lhs", l).Basic
	}
	return p.PushBin(kind, typ, l, r)
}

// checkUnsignedClass accepts integers or pointers whose unsigned forms agree.
func (p *Proc) checkUnsignedClass(op string, l, r Ref) {
	a := p.basicValue(op, "lhs", l)
	b := p.basicValue(op, "rhs", r)
	if !a.Basic.IsInteger() && a.Basic != Ptr {
		p.mismatch(op, "integer or ptr", a.Basic.String())
	}
	if a.Basic.Unsigned() != b.Basic.Unsigned() {
		p.mismatch(op, a.Basic.String(), b.Basic.String())
	}
}

func (p *Proc) checkSignedClass(op string, l, r Ref) {
	a := p.integer(op, "lhs", l)
	b := p.integer(op, "rhs", r)
	if a.Basic != b.Basic {
		p.mismatch(op, a.Basic.String(), b.Basic.String())
	}
}

func (p *Proc) checkFloatClass(op string, l, r Ref) {
	a := p.float(op, "lhs", l)
	b := p.float(op, "rhs", r)
	if a.Basic != b.Basic {
		p.mismatch(op, a.Basic.String(), b.Basic.String())
	}
}

func (p *Proc) PushAdd(l, r Ref) Ref { return p.bin(KindAdd, l, r) }
func (p *Proc) PushSub(l, r Ref) Ref { return p.bin(KindSub, l, r) }
func (p *Proc) PushMul(l, r Ref) Ref { return p.bin(KindMul, l, r) }
func (p *Proc) PushAnd(l, r Ref) Ref { return p.bin(KindAnd, l, r) }
func (p *Proc) PushOr(l, r Ref) Ref  { return p.bin(KindOr, l, r) }
func (p *Proc) PushXor(l, r Ref) Ref { return p.bin(KindXor, l, r) }
func (p *Proc) PushEq(l, r Ref) Ref  { return p.bin(KindEq, l, r) }
func (p *Proc) PushNeq(l, r Ref) Ref { return p.bin(KindNeq, l, r) }

func (p *Proc) PushQuo(l, r Ref) Ref { return p.bin(KindQuo, l, r) }
func (p *Proc) PushRem(l, r Ref) Ref { return p.bin(KindRem, l, r) }

// PushShlc shifts left by r modulo the bit width of l.
func (p *Proc) PushShlc(l, r Ref) Ref { return p.bin(KindShlc, l, r) }

// PushShrc shifts right by r modulo the bit width of l; signed types shift
// arithmetically.
func (p *Proc) PushShrc(l, r Ref) Ref { return p.bin(KindShrc, l, r) }

// PushShlo shifts left; amounts of at least the bit width yield zero.
func (p *Proc) PushShlo(l, r Ref) Ref { return p.bin(KindShlo, l, r) }

// PushShro shifts right; amounts of at least the bit width yield zero, or
// the sign fill for signed types.
func (p *Proc) PushShro(l, r Ref) Ref { return p.bin(KindShro, l, r) }

func (p *Proc) PushLt(l, r Ref) Ref   { return p.bin(KindLt, l, r) }
func (p *Proc) PushGt(l, r Ref) Ref   { return p.bin(KindGt, l, r) }
func (p *Proc) PushLteq(l, r Ref) Ref { return p.bin(KindLteq, l, r) }
func (p *Proc) PushGteq(l, r Ref) Ref { return p.bin(KindGteq, l, r) }

func (p *Proc) PushAddf(l, r Ref) Ref  { return p.bin(KindAddf, l, r) }
func (p *Proc) PushSubf(l, r Ref) Ref  { return p.bin(KindSubf, l, r) }
func (p *Proc) PushMulf(l, r Ref) Ref  { return p.bin(KindMulf, l, r) }
func (p *Proc) PushDivf(l, r Ref) Ref  { return p.bin(KindDivf, l, r) }
func (p *Proc) PushEqf(l, r Ref) Ref   { return p.bin(KindEqf, l, r) }
func (p *Proc) PushNeqf(l, r Ref) Ref  { return p.bin(KindNeqf, l, r) }
func (p *Proc) PushLtf(l, r Ref) Ref   { return p.bin(KindLtf, l, r) }
func (p *Proc) PushGtf(l, r Ref) Ref   { return p.bin(KindGtf, l, r) }
func (p *Proc) PushLteqf(l, r Ref) Ref { return p.bin(KindLteqf, l, r) }
func (p *Proc) PushGteqf(l, r Ref) Ref { return p.bin(KindGteqf, l, r) }

func (p *Proc) unary(kind Kind, arg Ref) Ref {
	if !p.begin(kind) {
		return Nil
	}
	op := kind.String()
	var in *Instr
	if kind >= KindAbsf && kind <= KindSqrtf {
		in = p.float(op, "arg", arg)
	} else {
		in = p.integer(op, "arg", arg)
	}
	return p.emit(&Instr{Kind: kind, Basic: in.Basic, Args: p.args(arg)})
}

func (p *Proc) PushClz(arg Ref) Ref    { return p.unary(KindClz, arg) }
func (p *Proc) PushCtz(arg Ref) Ref    { return p.unary(KindCtz, arg) }
func (p *Proc) PushPopcnt(arg Ref) Ref { return p.unary(KindPopcnt, arg) }

func (p *Proc) PushAbsf(arg Ref) Ref     { return p.unary(KindAbsf, arg) }
func (p *Proc) PushNegf(arg Ref) Ref     { return p.unary(KindNegf, arg) }
func (p *Proc) PushCeilf(arg Ref) Ref    { return p.unary(KindCeilf, arg) }
func (p *Proc) PushFloorf(arg Ref) Ref   { return p.unary(KindFloorf, arg) }
func (p *Proc) PushNearestf(arg Ref) Ref { return p.unary(KindNearestf, arg) }
func (p *Proc) PushTruncf(arg Ref) Ref   { return p.unary(KindTruncf, arg) }
func (p *Proc) PushSqrtf(arg Ref) Ref    { return p.unary(KindSqrtf, arg) }

// PushNot pushes the bitwise complement of an integer: xor with all ones.
func (p *Proc) PushNot(arg Ref) Ref {
	if !p.begin(KindXor) {
		return Nil
	}
	in := p.integer("not", "arg", arg)
	return p.PushXor(arg, p.PushOnes(in.Basic))
}

// PushNotb pushes the logical negation of an integer or pointer: 1 when it
// is zero.
func (p *Proc) PushNotb(arg Ref) Ref {
	if !p.begin(KindEq) {
		return Nil
	}
	in := p.truthy("notb", arg)
	return p.PushEq(arg, p.PushZero(in.Basic))
}

// PushToBool normalizes an integer or pointer to 0 or 1.
func (p *Proc) PushToBool(arg Ref) Ref {
	if !p.begin(KindNeq) {
		return Nil
	}
	in := p.truthy("to_bool", arg)
	return p.PushNeq(arg, p.PushZero(in.Basic))
}

func (p *Proc) truthy(op string, arg Ref) *Instr {
	in := p.basicValue(op, "arg", arg)
	if !in.Basic.IsInteger() && in.Basic != Ptr {
		p.mismatch(op, "integer or ptr", in.Basic.String())
	}
	return in
}

// PushConvert converts arg to b with value semantics. Converting to the
// operand's own type returns arg unchanged.
func (p *Proc) PushConvert(b BasicType, arg Ref) Ref {
	if !p.begin(KindConvert) {
		return Nil
	}
	in := p.basicValue("convert", "arg", arg)
	if b == Void || b >= BasicCount {
		p.mismatch("convert", "non-void target", b.String())
	}
	if in.Basic == b {
		return arg
	}
	return p.emit(&Instr{Kind: KindConvert, Basic: b, Args: p.args(arg)})
}

// PushReinterpret reinterprets the bits of arg as b. Both types must have
// the same size.
func (p *Proc) PushReinterpret(b BasicType, arg Ref) Ref {
	if !p.begin(KindReinterpret) {
		return Nil
	}
	in := p.basicValue("reinterpret", "arg", arg)
	if b == Void || b >= BasicCount {
		p.mismatch("reinterpret", "non-void target", b.String())
	}
	if p.gen.BasicSize(in.Basic) != p.gen.BasicSize(b) {
		p.mismatch("reinterpret", "type of size "+sizeString(p.gen.BasicSize(in.Basic)), b.String())
	}
	if in.Basic == b {
		return arg
	}
	return p.emit(&Instr{Kind: KindReinterpret, Basic: b, Args: p.args(arg)})
}
