package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/c0/errors"
)

func TestIfElseNesting(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "branch", Void, U8)
	c := p.Params()[0]

	iff := p.PushIf(c)
	assert.Equal(t, 1, p.Depth())
	p.PushU32(1)
	p.PopIf()

	els := p.ElseBlock(iff)
	p.PushU32(2)
	p.PushU32(3)
	p.PopBlock()
	assert.Equal(t, 0, p.Depth())

	require.Equal(t, []Ref{iff}, p.Instrs())
	in := p.Instr(iff)
	assert.Len(t, in.Nested, 1)
	assert.Equal(t, els, p.Else(iff))
	assert.Len(t, p.Instr(els).Nested, 2)
	assert.Equal(t, uint32(1), p.Instr(c).Uses)
	assert.Equal(t, uint32(1), p.Instr(els).Uses, "the else block is used once by its if")

	requireKind(t, errors.KindInvalidOperand, func() { p.ElseBlock(iff) })
	requireKind(t, errors.KindInvalidOperand, func() { p.StartElse(c, p.NewBlock()) })
	requireKind(t, errors.KindTypeMismatch, func() { p.PushIf(p.PushF32(1)) })
}

func TestElseOnOpenIf(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "open", Void, U8)

	iff := p.PushIf(p.Params()[0])
	requireKind(t, errors.KindUnbalancedBlocks, func() { p.ElseBlock(iff) })
}

func TestStartBlock(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "blocks", Void)

	b := p.PushBlock()
	p.PushU8(1)
	p.PopBlock()
	require.Equal(t, []Ref{b}, p.Instrs())
	assert.Len(t, p.Instr(b).Nested, 1)

	detached := p.NewBlock()
	p.StartBlock(detached)
	p.PushU8(2)
	p.PopBlock()
	assert.Equal(t, []Ref{b}, p.Instrs(), "a started block is not placed")

	requireKind(t, errors.KindInvalidOperand, func() { p.StartBlock(p.PushU8(3)) })
}

func TestUnbalancedPops(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "pops", Void, U8)

	requireKind(t, errors.KindUnbalancedBlocks, func() { p.PopIf() })

	p.PushIf(p.Params()[0])
	e := requireKind(t, errors.KindUnbalancedBlocks, func() { p.PopLoop() })
	assert.Equal(t, "loop", e.Expected)
	assert.Equal(t, "if", e.Actual)
	assert.Equal(t, 1, p.Depth(), "a rejected pop leaves the block open")
	p.PopIf()
}

func TestBreakContinue(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "loops", Void, U8)
	c := p.Params()[0]

	requireKind(t, errors.KindNotInLoop, func() { p.PushBreak() })
	requireKind(t, errors.KindNotInLoop, func() { p.PushContinue() })

	p.PushLoop()
	p.PushIf(c)
	p.PushBlock()
	assert.NotEqual(t, Nil, p.PushContinue(), "loops are found through enclosing blocks")
	p.PopBlock()
	p.PopIf()
	assert.NotEqual(t, Nil, p.PushBreak())
	p.PopLoop()
}

func TestPushAfterTerminator(t *testing.T) {
	g, logs := newObservedGen(t)
	p := newProc(g, "dead", U32, U32)
	v := p.Params()[0]

	ret := p.PushReturn(v)
	require.NotEqual(t, Nil, ret)

	assert.Equal(t, Nil, p.PushAdd(v, v))
	assert.Equal(t, Nil, p.PushU32(1))
	assert.Equal(t, Nil, p.PushAdd(Nil, Nil), "operands are not checked in dead code")
	assert.Equal(t, uint32(1), p.Instr(v).Uses, "dropped instructions leave no uses")

	p.PushIf(v)
	p.PushReturn(v)
	p.PopIf()
	assert.Equal(t, uint32(1), p.Instr(v).Uses, "contents of a dropped block are dropped too")
	p.PushLoop()
	p.PopLoop()
	assert.Equal(t, 0, p.Depth())
	assert.Equal(t, []Ref{ret}, p.Instrs())

	warnings := logs.FilterMessage("instruction after terminator will never be executed")
	assert.Equal(t, 5, warnings.Len())
	entry := warnings.All()[0]
	assert.Equal(t, "dead", entry.ContextMap()["proc"])
	assert.Equal(t, "add", entry.ContextMap()["kind"])

	require.NoError(t, p.Finish())
}

func TestTerminatingAnalysis(t *testing.T) {
	g := newGen(t)

	tests := []struct {
		name  string
		build func(p *Proc, c Ref) Ref
		want  bool
	}{
		{"return", func(p *Proc, c Ref) Ref { return p.PushReturn(Nil) }, true},
		{"unreachable", func(p *Proc, c Ref) Ref { return p.PushUnreachable() }, true},
		{"plain value", func(p *Proc, c Ref) Ref { return p.PushAdd(c, c) }, false},
		{"if without else", func(p *Proc, c Ref) Ref {
			r := p.PushIf(c)
			p.PushReturn(Nil)
			p.PopIf()
			return r
		}, false},
		{"if else both return", func(p *Proc, c Ref) Ref {
			r := p.PushIf(c)
			p.PushReturn(Nil)
			p.PopIf()
			p.ElseBlock(r)
			p.PushReturn(Nil)
			p.PopBlock()
			return r
		}, true},
		{"if else one returns", func(p *Proc, c Ref) Ref {
			r := p.PushIf(c)
			p.PushReturn(Nil)
			p.PopIf()
			p.ElseBlock(r)
			p.PushU8(0)
			p.PopBlock()
			return r
		}, false},
		{"empty loop", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			p.PopLoop()
			return r
		}, true},
		{"loop with break", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			p.PushBreak()
			p.PopLoop()
			return r
		}, false},
		{"break in inner loop only", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			p.PushLoop()
			p.PushBreak()
			p.PopLoop()
			p.PushReturn(Nil)
			p.PopLoop()
			return r
		}, true},
		{"conditional break", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			p.PushIf(c)
			p.PushBreak()
			p.PopIf()
			p.PopLoop()
			return r
		}, false},
		{"break in else", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			iff := p.PushIf(c)
			p.PushU8(1)
			p.PopIf()
			p.ElseBlock(iff)
			p.PushBreak()
			p.PopBlock()
			p.PopLoop()
			return r
		}, false},
		{"loop ending in value", func(p *Proc, c Ref) Ref {
			r := p.PushLoop()
			p.PushU8(1)
			p.PopLoop()
			return r
		}, false},
		{"block with return", func(p *Proc, c Ref) Ref {
			r := p.PushBlock()
			p.PushReturn(Nil)
			p.PopBlock()
			return r
		}, true},
		{"empty block", func(p *Proc, c Ref) Ref {
			r := p.PushBlock()
			p.PopBlock()
			return r
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProc(g, tt.name, Void, U8)
			ref := tt.build(p, p.Params()[0])
			assert.Equal(t, tt.want, p.IsTerminating(ref))
		})
	}

	assert.False(t, newProc(g, "nil", Void).IsTerminating(Nil))
}

func TestLabels(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "jumps", U32, U8)
	c := p.Params()[0]

	done := p.NewLabel("done")
	requireKind(t, errors.KindInvalidOperand, func() { p.PushGoto(c) })

	p.PushIf(c)
	p.PushGoto(done)
	p.PopIf()
	p.PushReturn(p.PushU32(1))

	p.PlaceLabel(done)
	assert.Equal(t, done, p.Instrs()[len(p.Instrs())-1], "a label may follow a terminator")
	p.PushReturn(p.PushU32(0))

	requireKind(t, errors.KindDuplicateLabel, func() { p.NewLabel("done") })
	requireKind(t, errors.KindDuplicateLabel, func() { p.PlaceLabel(done) })

	assert.Equal(t, []Ref{done}, p.Labels())
	require.NoError(t, p.Finish())
}

func TestUnplacedLabel(t *testing.T) {
	g := newGen(t)
	p := newProc(g, "dangling", Void)

	p.NewLabel("unused")
	p.PushGoto(p.NewLabel("missing"))

	err := p.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.New(errors.PhaseFinish, errors.KindUndeclaredLabel).Build())
	assert.Contains(t, err.Error(), "missing")
	assert.NotContains(t, err.Error(), "unused")
	assert.False(t, p.Finished())
}

func TestLabelInUnreachableBlock(t *testing.T) {
	g, logs := newObservedGen(t)
	p := newProc(g, "lost", Void, U8)
	c := p.Params()[0]

	lost := p.NewLabel("lost")
	p.PushIf(c)
	p.PushReturn(Nil)
	p.PushBlock()
	p.PlaceLabel(lost)
	p.PopBlock()
	p.PopIf()
	p.PushGoto(lost)

	assert.False(t, p.Instr(lost).placed)
	assert.Equal(t, 1, logs.FilterMessage("label in unreachable block is not placed").Len())

	err := p.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.New(errors.PhaseFinish, errors.KindUndeclaredLabel).Build())
}
