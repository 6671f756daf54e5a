package ir

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/c0/array"
	"github.com/wippyai/c0/errors"
)

// Finish validates and seals the procedure. It removes unused values,
// appends an unreachable after a terminating trailing block, assigns ids
// (parameters first, then the body depth first with then-branches before
// else-branches) and registers the used kinds with the generator.
func (p *Proc) Finish() error {
	if p.finished {
		return errors.New(errors.PhaseFinish, errors.KindSealed).
			Path(p.Name).
			Detail("procedure is already finished").
			Build()
	}
	if n := p.nested.Len(); n != 0 {
		return errors.Unbalanced(errors.PhaseFinish, p.Name, n)
	}
	if err := p.checkLabels(); err != nil {
		return err
	}

	p.removeUnused(&p.instrs)

	if err := p.patchTerminator(); err != nil {
		return err
	}

	next := uint32(0)
	for _, ref := range p.params {
		p.nodes[ref].ID = next
		next++
	}
	var errs error
	for _, ref := range p.instrs {
		errs = multierr.Append(errs, p.assignIDs(ref, &next))
	}
	if errs != nil {
		return errs
	}

	count := 0
	p.Walk(func(ref Ref, in *Instr, depth int) bool {
		p.gen.registry.add(p, in)
		count++
		return true
	})

	p.finished = true
	p.log.Debug("finished procedure",
		zap.Int("instructions", count),
		zap.Uint32("values", next))
	return nil
}

// MustFinish is Finish that panics on error.
func (p *Proc) MustFinish() {
	if err := p.Finish(); err != nil {
		panic(err)
	}
}

func (p *Proc) checkLabels() error {
	var errs error
	for _, ref := range p.labels {
		in := p.nodes[ref]
		if in.Uses > 0 && !in.placed {
			errs = multierr.Append(errs, errors.New(errors.PhaseFinish, errors.KindUndeclaredLabel).
				Path(p.Name, in.Name).
				Detail("goto targets label %q that was never placed", in.Name).
				Build())
		}
	}
	return errs
}

// removeUnused drops unused side-effect-free values, scanning backwards so
// that chains of dead values disappear in one pass.
func (p *Proc) removeUnused(list *array.Array[Ref]) {
	for i := list.Len() - 1; i >= 0; i-- {
		ref := (*list)[i]
		in := p.nodes[ref]

		if in.Kind.IsBlock() {
			p.removeUnused(&in.Nested)
		}
		if in.HasElse() {
			p.removeUnused(&p.nodes[in.Args[1]].Nested)
		}

		switch {
		case in.IsValue():
			if in.Uses > 0 || in.Kind.HasSideEffects() {
				continue
			}
		case in.Kind == KindIf && in.Nested.Len() == 0 && !in.HasElse():
			p.warnEmptyIf(ref)
		default:
			continue
		}

		for _, a := range in.Args {
			p.unuse(a)
		}
		list.OrderedRemove(i)
	}
}

func (p *Proc) patchTerminator() error {
	var last Ref
	if p.instrs.Len() > 0 {
		last = p.instrs.Last()
	}
	if p.isTerminating(last) {
		switch p.nodes[last].Kind {
		case KindIf, KindLoop, KindBlock:
			ref := p.alloc(&Instr{Kind: KindUnreachable})
			p.instrs.Push(ref)
		}
		return nil
	}
	if !p.Sig.Ret.IsVoid() {
		return errors.MissingReturn(p.Name, p.Sig.Ret.String())
	}
	return nil
}

func (p *Proc) assignIDs(ref Ref, next *uint32) error {
	in := p.nodes[ref]
	err := p.checkArgs(in)

	if in.IsValue() {
		in.ID = *next
		*next++
	}
	for _, r := range in.Nested {
		err = multierr.Append(err, p.assignIDs(r, next))
	}
	if in.HasElse() {
		err = multierr.Append(err, p.assignIDs(in.Args[1], next))
	}
	return err
}

func (p *Proc) checkArgs(in *Instr) error {
	n := len(in.Args)
	ok := true
	want := kinds[in.Kind].args
	switch in.Kind {
	case KindIf:
		ok = n == 1 || n == 2
	case KindReturn:
		ok = n <= 1
	case KindCall:
		want = in.TypeArg.Types.Len()
		ok = n == want || (n > want && in.TypeArg.Flags&ProcVariadic != 0)
	default:
		ok = n == want
	}
	for _, a := range in.Args {
		if a == Nil {
			ok = false
		}
	}
	if ok {
		return nil
	}
	return errors.New(errors.PhaseFinish, errors.KindArgCount).
		Path(p.Name, in.Kind.String()).
		Detail("expected %d operands, got %d", want, n).
		Value(n).
		Build()
}
