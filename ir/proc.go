package ir

import (
	"go.uber.org/zap"

	"github.com/wippyai/c0/arena"
	"github.com/wippyai/c0/array"
	"github.com/wippyai/c0/errors"
)

// Proc is a procedure under construction. Instructions are appended to the
// innermost open block, or to the top-level list when no block is open.
type Proc struct {
	gen *Generator
	log *zap.Logger

	Name string
	Sig  *AggType

	nodes  array.Array[*Instr]
	params array.Array[Ref]
	instrs array.Array[Ref]
	nested array.Array[Ref]
	labels array.Array[Ref]

	loc      Loc
	finished bool
}

// NewProc declares a procedure with signature sig. Every parameter becomes a
// declaration available through Params.
func (g *Generator) NewProc(name string, sig *AggType) *Proc {
	if sig == nil || sig.Kind != AggProc {
		actual := "nil"
		if sig != nil {
			actual = sig.String()
		}
		panic(errors.TypeMismatch(errors.PhaseType, []string{name}, "proc type", actual))
	}

	p := &Proc{
		gen:  g,
		Name: g.arena.StrDup(name),
		Sig:  sig,
	}
	p.log = g.log.With(zap.String("proc", p.Name))
	p.nodes.Push(nil)

	for i, t := range sig.Types {
		in := &Instr{Kind: KindDecl}
		if t.Kind == AggBasic {
			in.Basic = t.Basic
		} else {
			in.Agg = t
		}
		if i < sig.Names.Len() {
			in.Name = sig.Names[i]
		}
		p.params.Push(p.alloc(in))
	}

	g.procs.Push(p)
	return p
}

// Gen returns the owning generator.
func (p *Proc) Gen() *Generator { return p.gen }

// Params returns the parameter declarations in signature order.
func (p *Proc) Params() []Ref { return p.params.Slice() }

// Instrs returns the top-level instruction list.
func (p *Proc) Instrs() []Ref { return p.instrs.Slice() }

// Labels returns every label created with NewLabel or PushLabel.
func (p *Proc) Labels() []Ref { return p.labels.Slice() }

// Finished reports whether Finish has sealed the procedure.
func (p *Proc) Finished() bool { return p.finished }

// Depth returns the number of open blocks.
func (p *Proc) Depth() int { return p.nested.Len() }

// Instr resolves ref. It panics on Nil or a ref from another procedure.
func (p *Proc) Instr(ref Ref) *Instr {
	if ref == Nil || int(ref) >= p.nodes.Len() {
		panic(errors.OutOfBounds(errors.PhaseBuild, []string{p.Name, "instr"}, int(ref), p.nodes.Len()))
	}
	return p.nodes[ref]
}

// Else returns the else block of an if, or Nil.
func (p *Proc) Else(ref Ref) Ref {
	in := p.Instr(ref)
	if !in.HasElse() {
		return Nil
	}
	return in.Args[1]
}

// SetLoc tags instructions created from now on with a source position.
func (p *Proc) SetLoc(file uint32, line, column int32) {
	p.loc = Loc{File: file, Line: line, Column: column}
}

func (p *Proc) path(op string) []string {
	return []string{p.Name, op}
}

func (p *Proc) alloc(in *Instr) Ref {
	in.ID = NoID
	in.Loc = p.loc
	p.nodes.Push(in)
	return Ref(p.nodes.Len() - 1)
}

// args copies refs into arena memory.
func (p *Proc) args(refs ...Ref) []Ref {
	s := arena.MakeSlice[Ref](p.gen.arena, len(refs))
	copy(s, refs)
	return s
}

func (p *Proc) use(ref Ref) {
	if ref != Nil {
		p.nodes[ref].Uses++
	}
}

func (p *Proc) unuse(ref Ref) {
	if ref != Nil && p.nodes[ref].Uses > 0 {
		p.nodes[ref].Uses--
	}
}

// current returns the list new instructions are appended to.
func (p *Proc) current() *array.Array[Ref] {
	if p.nested.Len() == 0 {
		return &p.instrs
	}
	return &p.nodes[p.nested.Last()].Nested
}

func (p *Proc) last() Ref {
	cur := p.current()
	if cur.Len() == 0 {
		return Nil
	}
	return cur.Last()
}

func (p *Proc) emit(in *Instr) Ref {
	ref := p.alloc(in)
	for _, a := range in.Args {
		p.use(a)
	}
	p.current().Push(ref)
	return ref
}

func (p *Proc) checkOpen(op string) {
	if p.finished {
		panic(errors.New(errors.PhaseBuild, errors.KindSealed).
			Path(p.Name, op).
			Detail("procedure is already finished").
			Build())
	}
}

// begin reports whether an instruction of kind may be appended at the
// insertion point. Code after a terminating instruction is dropped with a
// warning.
func (p *Proc) begin(kind Kind) bool {
	p.checkOpen(kind.String())
	if n := p.nested.Len(); n > 0 && p.nodes[p.nested.Last()].orphan {
		return false
	}
	if p.isTerminating(p.last()) {
		p.log.Warn("instruction after terminator will never be executed",
			zap.Stringer("kind", kind))
		return false
	}
	return true
}

func (p *Proc) operand(op, name string, ref Ref) *Instr {
	if ref == Nil {
		panic(errors.NilOperand(errors.PhaseBuild, p.path(op), name))
	}
	if int(ref) >= p.nodes.Len() {
		panic(errors.OutOfBounds(errors.PhaseBuild, p.path(op), int(ref), p.nodes.Len()))
	}
	return p.nodes[ref]
}

func (p *Proc) value(op, name string, ref Ref) *Instr {
	in := p.operand(op, name, ref)
	if !in.IsValue() {
		p.mismatch(op, "value", "void "+in.Kind.String())
	}
	return in
}

func (p *Proc) basicValue(op, name string, ref Ref) *Instr {
	in := p.value(op, name, ref)
	if in.Agg != nil {
		p.mismatch(op, "basic type", in.Agg.String())
	}
	return in
}

func (p *Proc) integer(op, name string, ref Ref) *Instr {
	in := p.basicValue(op, name, ref)
	if !in.Basic.IsInteger() {
		p.mismatch(op, "integer", in.Basic.String())
	}
	return in
}

func (p *Proc) float(op, name string, ref Ref) *Instr {
	in := p.basicValue(op, name, ref)
	if !in.Basic.IsFloat() {
		p.mismatch(op, "float", in.Basic.String())
	}
	return in
}

func (p *Proc) pointer(op, name string, ref Ref) *Instr {
	in := p.basicValue(op, name, ref)
	if in.Basic != Ptr {
		p.mismatch(op, "ptr", in.Basic.String())
	}
	return in
}

func (p *Proc) mismatch(op, expected, actual string) {
	panic(errors.TypeMismatch(errors.PhaseBuild, p.path(op), expected, actual))
}

func typeName(in *Instr) string {
	if in.Agg != nil {
		return in.Agg.String()
	}
	return in.Basic.String()
}
