package ir

import "github.com/wippyai/c0/errors"

// PushAtomicThreadFence orders memory between threads.
func (p *Proc) PushAtomicThreadFence() Ref {
	if !p.begin(KindAtomicThreadFence) {
		return Nil
	}
	return p.emit(&Instr{Kind: KindAtomicThreadFence})
}

// PushAtomicSignalFence orders memory between a thread and its signal handlers.
func (p *Proc) PushAtomicSignalFence() Ref {
	if !p.begin(KindAtomicSignalFence) {
		return Nil
	}
	return p.emit(&Instr{Kind: KindAtomicSignalFence})
}

// PushAtomicLoad atomically loads a value of type b through ptr.
func (p *Proc) PushAtomicLoad(b BasicType, ptr Ref) Ref {
	if !p.begin(KindAtomicLoad) {
		return Nil
	}
	if b == Void || b >= BasicCount {
		p.mismatch("atomic_load", "non-void basic type", b.String())
	}
	p.checkAtomicWidth("atomic_load", b)
	p.pointer("atomic_load", "ptr", ptr)
	return p.emit(&Instr{Kind: KindAtomicLoad, Basic: b, Args: p.args(ptr)})
}

// PushAtomicStore atomically stores src through dst.
func (p *Proc) PushAtomicStore(dst, src Ref) Ref {
	if !p.begin(KindAtomicStore) {
		return Nil
	}
	p.pointer("atomic_store", "dst", dst)
	s := p.basicValue("atomic_store", "src", src)
	p.checkAtomicWidth("atomic_store", s.Basic)
	return p.emit(&Instr{Kind: KindAtomicStore, Args: p.args(dst, src)})
}

// PushAtomicCas compares the value at obj with the value at expected and, if
// equal, stores desired. Otherwise the current value is written to expected.
// The result is 1 on success.
func (p *Proc) PushAtomicCas(obj, expected, desired Ref) Ref {
	if !p.begin(KindAtomicCas) {
		return Nil
	}
	p.pointer("atomic_cas", "obj", obj)
	p.pointer("atomic_cas", "expected", expected)
	d := p.basicValue("atomic_cas", "desired", desired)
	p.checkAtomicWidth("atomic_cas", d.Basic)
	return p.emit(&Instr{Kind: KindAtomicCas, Basic: U8, Args: p.args(obj, expected, desired)})
}

// rmw pushes a read-modify-write returning the previous value.
func (p *Proc) rmw(kind Kind, dst, src Ref) Ref {
	if !p.begin(kind) {
		return Nil
	}
	op := kind.String()
	p.pointer(op, "dst", dst)
	var s *Instr
	switch kind {
	case KindAtomicXchg:
		s = p.basicValue(op, "src", src)
	case KindAtomicAddf, KindAtomicSubf:
		s = p.float(op, "src", src)
	default:
		s = p.integer(op, "src", src)
	}
	p.checkAtomicWidth(op, s.Basic)
	return p.emit(&Instr{Kind: kind, Basic: s.Basic, Args: p.args(dst, src)})
}

func (p *Proc) PushAtomicXchg(dst, src Ref) Ref { return p.rmw(KindAtomicXchg, dst, src) }
func (p *Proc) PushAtomicAdd(dst, src Ref) Ref  { return p.rmw(KindAtomicAdd, dst, src) }
func (p *Proc) PushAtomicSub(dst, src Ref) Ref  { return p.rmw(KindAtomicSub, dst, src) }
func (p *Proc) PushAtomicAnd(dst, src Ref) Ref  { return p.rmw(KindAtomicAnd, dst, src) }
func (p *Proc) PushAtomicOr(dst, src Ref) Ref   { return p.rmw(KindAtomicOr, dst, src) }
func (p *Proc) PushAtomicXor(dst, src Ref) Ref  { return p.rmw(KindAtomicXor, dst, src) }
func (p *Proc) PushAtomicAddf(dst, src Ref) Ref { return p.rmw(KindAtomicAddf, dst, src) }
func (p *Proc) PushAtomicSubf(dst, src Ref) Ref { return p.rmw(KindAtomicSubf, dst, src) }

func (p *Proc) checkAtomicWidth(op string, b BasicType) {
	if b == I128 || b == U128 {
		e := errors.Unsupported(errors.PhaseBuild, "128-bit atomic operations")
		e.Path = p.path(op)
		panic(e)
	}
}
