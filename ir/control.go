package ir

import (
	"go.uber.org/zap"

	"github.com/wippyai/c0/errors"
)

// PushIf opens a conditional. Following pushes go to its then-body until PopIf.
func (p *Proc) PushIf(cond Ref) Ref {
	if !p.begin(KindIf) {
		return p.orphan(KindIf)
	}
	p.integer("if", "cond", cond)

	args := p.args(cond, Nil)[:1]
	ref := p.emit(&Instr{Kind: KindIf, Args: args})
	p.use(ref)
	p.nested.Push(ref)
	return ref
}

// PopIf closes the innermost block, which must be an if.
func (p *Proc) PopIf() { p.pop(KindIf) }

// ElseBlock attaches a fresh else block to ifRef and opens it.
// Close it with PopBlock.
func (p *Proc) ElseBlock(ifRef Ref) Ref {
	b := p.NewBlock()
	p.StartElse(ifRef, b)
	return b
}

// StartElse attaches block as the else branch of ifRef and opens it.
func (p *Proc) StartElse(ifRef, block Ref) {
	p.checkOpen("else")
	in := p.operand("else", "if", ifRef)
	if in.Kind != KindIf {
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path("else"), "if", in.Kind.String()))
	}
	if in.HasElse() {
		panic(errors.New(errors.PhaseBuild, errors.KindInvalidOperand).
			Path(p.Name, "else").
			Detail("if already has an else block").
			Build())
	}
	for _, open := range p.nested {
		if open == ifRef {
			panic(errors.Unbalanced(errors.PhaseBuild, p.Name, p.nested.Len()))
		}
	}
	p.StartBlock(block)
	p.nodes[block].orphan = in.orphan
	in.Args = in.Args[:2]
	in.Args[1] = block
}

// PushLoop opens an infinite loop. Leave it with PushBreak.
func (p *Proc) PushLoop() Ref {
	if !p.begin(KindLoop) {
		return p.orphan(KindLoop)
	}
	ref := p.emit(&Instr{Kind: KindLoop})
	p.use(ref)
	p.nested.Push(ref)
	return ref
}

// PopLoop closes the innermost block, which must be a loop.
func (p *Proc) PopLoop() { p.pop(KindLoop) }

// NewBlock creates a block without placing it. Open it with StartBlock or
// attach it with StartElse.
func (p *Proc) NewBlock() Ref {
	p.checkOpen("block")
	return p.alloc(&Instr{Kind: KindBlock})
}

// StartBlock opens block.
func (p *Proc) StartBlock(block Ref) {
	p.checkOpen("block")
	in := p.operand("block", "block", block)
	if in.Kind != KindBlock {
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path("block"), "block", in.Kind.String()))
	}
	p.use(block)
	p.nested.Push(block)
}

// PushBlock appends a new block at the insertion point and opens it.
func (p *Proc) PushBlock() Ref {
	if !p.begin(KindBlock) {
		return p.orphan(KindBlock)
	}
	b := p.NewBlock()
	p.current().Push(b)
	p.StartBlock(b)
	return b
}

// PopBlock closes the innermost block, which must be a block.
func (p *Proc) PopBlock() { p.pop(KindBlock) }

// orphan opens a block that is not attached anywhere so that the matching
// pop stays balanced while its contents are discarded.
func (p *Proc) orphan(kind Kind) Ref {
	in := &Instr{Kind: kind, orphan: true}
	if kind == KindIf {
		in.Args = p.args(Nil, Nil)[:1]
	}
	ref := p.alloc(in)
	p.use(ref)
	p.nested.Push(ref)
	return ref
}

func (p *Proc) pop(kind Kind) {
	p.checkOpen(kind.String())
	ref, ok := p.nested.Pop()
	if !ok {
		panic(errors.Unbalanced(errors.PhaseBuild, p.Name, 0))
	}
	if got := p.nodes[ref].Kind; got != kind {
		p.nested.Push(ref)
		panic(errors.New(errors.PhaseBuild, errors.KindUnbalancedBlocks).
			Path(p.Name, "pop").
			Expected(kind.String()).
			Actual(got.String()).
			Build())
	}
}

func (p *Proc) inLoop() bool {
	for i := p.nested.Len() - 1; i >= 0; i-- {
		if p.nodes[p.nested[i]].Kind == KindLoop {
			return true
		}
	}
	return false
}

// PushContinue jumps to the start of the innermost loop.
func (p *Proc) PushContinue() Ref {
	return p.loopJump(KindContinue)
}

// PushBreak leaves the innermost loop.
func (p *Proc) PushBreak() Ref {
	return p.loopJump(KindBreak)
}

func (p *Proc) loopJump(kind Kind) Ref {
	if !p.begin(kind) {
		return Nil
	}
	if !p.inLoop() {
		panic(errors.New(errors.PhaseBuild, errors.KindNotInLoop).
			Path(p.Name, kind.String()).
			Detail("%s outside of a loop", kind).
			Build())
	}
	return p.emit(&Instr{Kind: kind})
}

// PushReturn returns arg from the procedure. Pass Nil for a void return.
func (p *Proc) PushReturn(arg Ref) Ref {
	if !p.begin(KindReturn) {
		return Nil
	}
	ret := p.Sig.Ret
	if arg == Nil {
		if !ret.IsVoid() {
			p.mismatch("return", ret.String(), "void")
		}
		return p.emit(&Instr{Kind: KindReturn})
	}

	p.assignable("return", ret, p.value("return", "arg", arg))
	return p.emit(&Instr{Kind: KindReturn, Args: p.args(arg)})
}

// PushUnreachable marks a point control never reaches.
func (p *Proc) PushUnreachable() Ref {
	if !p.begin(KindUnreachable) {
		return Nil
	}
	return p.emit(&Instr{Kind: KindUnreachable})
}

// PushSelect pushes cond ? t : f. A 128-bit condition is first reduced to a
// truth value.
func (p *Proc) PushSelect(cond, t, f Ref) Ref {
	if !p.begin(KindSelect) {
		return Nil
	}
	c := p.integer("select", "cond", cond)
	a := p.basicValue("select", "true", t)
	b := p.basicValue("select", "false", f)
	if a.Basic != b.Basic {
		p.mismatch("select", a.Basic.String(), b.Basic.String())
	}
	if p.gen.BasicSize(c.Basic) == 16 {
		cond = p.PushToBool(cond)
	}
	return p.emit(&Instr{Kind: KindSelect, Basic: a.Basic, Args: p.args(cond, t, f)})
}

// PushCall calls callee with args. Argument types must match the callee's
// signature; variadic callees accept extra arguments.
func (p *Proc) PushCall(callee *Proc, args ...Ref) Ref {
	if !p.begin(KindCall) {
		return Nil
	}
	if callee == nil {
		panic(errors.NilOperand(errors.PhaseBuild, p.path("call"), "callee"))
	}
	sig := callee.Sig
	want := sig.Types.Len()
	if len(args) < want || (len(args) > want && sig.Flags&ProcVariadic == 0) {
		panic(errors.New(errors.PhaseBuild, errors.KindArgCount).
			Path(p.Name, "call", callee.Name).
			Detail("expected %d arguments, got %d", want, len(args)).
			Build())
	}
	for i, a := range args {
		in := p.value("call", "arg", a)
		if i < want {
			p.assignable("call", sig.Types[i], in)
		}
	}

	in := &Instr{Kind: KindCall, TypeArg: sig, Callee: callee, Args: p.args(args...)}
	if sig.Ret.Kind == AggBasic {
		in.Basic = sig.Ret.Basic
	} else {
		in.Agg = sig.Ret
	}
	return p.emit(in)
}

// NewLabel creates a goto target without placing it. Names are unique within
// a procedure.
func (p *Proc) NewLabel(name string) Ref {
	p.checkOpen("label")
	for _, l := range p.labels {
		if p.nodes[l].Name == name {
			panic(errors.New(errors.PhaseBuild, errors.KindDuplicateLabel).
				Path(p.Name, "label").
				Detail("label %q already exists", name).
				Value(name).
				Build())
		}
	}
	ref := p.alloc(&Instr{Kind: KindLabel, Name: p.gen.arena.StrDup(name)})
	p.labels.Push(ref)
	return ref
}

// PlaceLabel appends label at the insertion point. A label starts reachable
// code, so it may follow a terminating instruction. Inside a block opened in
// dead code the label stays unplaced, so a goto to it fails Finish.
func (p *Proc) PlaceLabel(label Ref) {
	p.checkOpen("label")
	in := p.operand("label", "label", label)
	if in.Kind != KindLabel {
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path("label"), "label", in.Kind.String()))
	}
	if in.placed {
		panic(errors.New(errors.PhaseBuild, errors.KindDuplicateLabel).
			Path(p.Name, "label").
			Detail("label %q already placed", in.Name).
			Build())
	}
	if n := p.nested.Len(); n > 0 && p.nodes[p.nested.Last()].orphan {
		p.log.Warn("label in unreachable block is not placed", zap.String("label", in.Name))
		return
	}
	in.placed = true
	in.Loc = p.loc
	p.current().Push(label)
}

// PushLabel creates and places a label.
func (p *Proc) PushLabel(name string) Ref {
	l := p.NewLabel(name)
	p.PlaceLabel(l)
	return l
}

// PushGoto jumps to label, which may be placed later.
func (p *Proc) PushGoto(label Ref) Ref {
	if !p.begin(KindGoto) {
		return Nil
	}
	in := p.operand("goto", "label", label)
	if in.Kind != KindLabel {
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path("goto"), "label", in.Kind.String()))
	}
	return p.emit(&Instr{Kind: KindGoto, Args: p.args(label)})
}

// assignable checks that the value in may be passed where want is expected.
func (p *Proc) assignable(op string, want *AggType, in *Instr) {
	ok := CompatibleBasic(want, in.Basic)
	if in.Agg != nil {
		ok = Compatible(want, in.Agg)
	}
	if !ok {
		p.mismatch(op, want.String(), in.ResultType(p.gen).String())
	}
}

func (p *Proc) warnEmptyIf(ref Ref) {
	p.log.Warn("removing conditional with empty body", zap.Uint32("ref", uint32(ref)))
}
