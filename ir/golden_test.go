package ir

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render prints a finished procedure in a compact listing used for snapshots.
func render(p *Proc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Sig)
	for _, ref := range p.Params() {
		in := p.Instr(ref)
		fmt.Fprintf(&b, "  param %%%d %s %s\n", in.ID, typeName(in), in.Name)
	}

	elses := map[Ref]bool{}
	p.Walk(func(ref Ref, in *Instr, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth+1))
		switch {
		case elses[ref]:
			b.WriteString("else")
		case in.IsValue():
			fmt.Fprintf(&b, "%%%d = %s %s", in.ID, in.Kind, typeName(in))
		default:
			b.WriteString(in.Kind.String())
		}

		switch {
		case in.Kind == KindCall:
			b.WriteString(" " + in.Callee.Name)
		case in.Kind == KindLabel, in.Kind == KindDecl && in.Name != "":
			b.WriteString(" " + in.Name)
		case in.IsConst():
			b.WriteString(" " + constString(in))
		}

		for i, a := range in.Args {
			if in.Kind == KindIf && i == 1 {
				break
			}
			if target := p.Instr(a); target.Kind == KindLabel {
				b.WriteString(" " + target.Name)
			} else {
				fmt.Fprintf(&b, " %%%d", target.ID)
			}
		}
		b.WriteByte('\n')

		if in.HasElse() {
			elses[in.Args[1]] = true
		}
		return true
	})
	return b.String()
}

func constString(in *Instr) string {
	switch {
	case in.Basic.IsSigned():
		return fmt.Sprint(in.Int64())
	case in.Basic == F32:
		return fmt.Sprint(in.Float32())
	case in.Basic == F64:
		return fmt.Sprint(in.Float64())
	}
	return fmt.Sprint(in.Uint64())
}

func assertGolden(t *testing.T, name string, p *Proc) {
	t.Helper()
	require.NoError(t, p.Finish())
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(render(p)))
}

func TestGoldenFactorial(t *testing.T) {
	g := newGen(t)
	p := newNamedProc(g, "factorial", "n")
	n := p.Params()[0]

	p.PushIf(p.PushLt(n, p.PushU32(2)))
	p.PushReturn(p.PushU32(1))
	p.PopIf()

	rec := p.PushCall(p, p.PushSub(n, p.PushU32(1)))
	p.PushReturn(p.PushMul(n, rec))

	assertGolden(t, p.Name, p)
}

func TestGoldenFactorialElse(t *testing.T) {
	g := newGen(t)
	p := newNamedProc(g, "factorial", "n")
	n := p.Params()[0]

	iff := p.PushIf(p.PushLt(n, p.PushU32(2)))
	p.PushReturn(p.PushU32(1))
	p.PopIf()
	p.ElseBlock(iff)
	rec := p.PushCall(p, p.PushSub(n, p.PushU32(1)))
	p.PushReturn(p.PushMul(n, rec))
	p.PopBlock()

	assertGolden(t, "factorial_else", p)

	// The if/else terminates on every path but is not itself a return, so
	// the trailing unreachable is the only instruction after it.
	instrs := p.Instrs()
	require.Len(t, instrs, 4)
	assert.Equal(t, KindIf, p.Instr(instrs[2]).Kind)
	assert.Equal(t, KindUnreachable, p.Instr(instrs[3]).Kind)

	var ids []uint32
	p.Walk(func(ref Ref, in *Instr, depth int) bool {
		if in.IsValue() {
			ids = append(ids, in.ID)
		}
		return true
	})
	require.Len(t, ids, 7)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestGoldenFibonacci(t *testing.T) {
	g := newGen(t)
	p := newNamedProc(g, "fibonacci", "n")
	n := p.Params()[0]

	p.PushIf(p.PushLteq(n, p.PushU32(2)))
	p.PushReturn(n)
	p.PopIf()

	a := p.PushCall(p, p.PushSub(n, p.PushU32(1)))
	b := p.PushCall(p, p.PushSub(n, p.PushU32(2)))
	p.PushReturn(p.PushAdd(a, b))

	assertGolden(t, p.Name, p)
}

func TestGoldenSumTo(t *testing.T) {
	g := newGen(t)
	p := newNamedProc(g, "sum_to", "n")
	n := p.Params()[0]

	acc := p.PushDecl(U32, "acc")
	p.PushStore(acc, p.PushU32(0))
	i := p.PushDecl(U32, "i")
	p.PushStore(i, p.PushU32(0))

	p.PushLoop()
	iv := p.PushLoad(U32, p.PushAddrOfDecl(i))
	p.PushIf(p.PushGteq(iv, n))
	p.PushBreak()
	p.PopIf()
	av := p.PushLoad(U32, p.PushAddrOfDecl(acc))
	p.PushStore(acc, p.PushAdd(av, iv))
	p.PushStore(i, p.PushAdd(iv, p.PushU32(1)))
	p.PopLoop()

	p.PushReturn(p.PushLoad(U32, p.PushAddrOfDecl(acc)))

	assertGolden(t, p.Name, p)
}

func TestGoldenAbs(t *testing.T) {
	g := newGen(t)
	i32 := g.Basic(I32)
	p := g.NewProc("abs", g.ProcType(i32, []string{"x"}, []*AggType{i32}, 0))
	x := p.Params()[0]

	iff := p.PushIf(p.PushLt(x, p.PushI32(0)))
	p.PushReturn(p.PushSub(p.PushI32(0), x))
	p.PopIf()
	p.ElseBlock(iff)
	p.PushReturn(x)
	p.PopBlock()

	assertGolden(t, p.Name, p)
}

func newNamedProc(g *Generator, name, param string) *Proc {
	u32 := g.Basic(U32)
	return g.NewProc(name, g.ProcType(u32, []string{param}, []*AggType{u32}, 0))
}
