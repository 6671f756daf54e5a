package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/c0/errors"
)

func newGen(t *testing.T) *Generator {
	t.Helper()
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Destroy()) })
	return g
}

func newObservedGen(t *testing.T) (*Generator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)
	g, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, g.Destroy()) })
	return g, logs
}

// newProc declares a procedure with basic parameter types named a, b, c...
func newProc(g *Generator, name string, ret BasicType, params ...BasicType) *Proc {
	names := make([]string, len(params))
	types := make([]*AggType, len(params))
	for i, b := range params {
		names[i] = string(rune('a' + i))
		types[i] = g.Basic(b)
	}
	var r *AggType
	if ret != Void {
		r = g.Basic(ret)
	}
	return g.NewProc(name, g.ProcType(r, names, types, 0))
}

func requireKind(t *testing.T, kind errors.Kind, fn func()) *errors.Error {
	t.Helper()
	err := Catch(fn)
	require.Error(t, err)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, e.Error())
	return e
}

func kindsOf(p *Proc, refs []Ref) []Kind {
	out := make([]Kind, len(refs))
	for i, r := range refs {
		out[i] = p.Instr(r).Kind
	}
	return out
}
