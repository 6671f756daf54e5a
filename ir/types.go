package ir

import (
	"strconv"
	"strings"

	"github.com/wippyai/c0/array"
	"github.com/wippyai/c0/errors"
)

// AggKind discriminates AggType.
type AggKind uint8

const (
	AggBasic AggKind = iota
	AggArray
	AggRecord
	AggProc
)

func (k AggKind) String() string {
	switch k {
	case AggBasic:
		return "basic"
	case AggArray:
		return "array"
	case AggRecord:
		return "record"
	case AggProc:
		return "proc"
	}
	return "agg(?)"
}

// CallConv is a procedure calling convention.
type CallConv uint8

const (
	CallConvCdecl CallConv = iota
	CallConvStdcall
	CallConvFastcall
)

// ProcFlags annotate procedure types.
type ProcFlags uint8

const (
	ProcDiverging ProcFlags = 1 << iota
	ProcVariadic
	ProcAlwaysInline
	ProcNeverInline
)

// AggType is a basic, array, record or procedure type.
// Types are owned by the Generator that created them.
type AggType struct {
	Kind  AggKind
	Size  int64
	Align int64

	// AggBasic
	Basic BasicType

	// AggArray
	Elem *AggType
	Len  int64

	// AggRecord and AggProc: fields or parameters
	Name  string
	Names array.Array[string]
	Types array.Array[*AggType]

	// AggRecord
	Aligns  array.Array[int64]
	Offsets array.Array[int64]

	// AggProc; a nil Ret is void
	Ret      *AggType
	CallConv CallConv
	Flags    ProcFlags
}

// IsVoid reports whether t is nil or the void basic type.
func (t *AggType) IsVoid() bool {
	return t == nil || (t.Kind == AggBasic && t.Basic == Void)
}

func (t *AggType) String() string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case AggBasic:
		return t.Basic.String()
	case AggArray:
		return "[" + strconv.FormatInt(t.Len, 10) + "]" + t.Elem.String()
	case AggRecord:
		if t.Name != "" {
			return "record " + t.Name
		}
		return "record{" + t.fields() + "}"
	case AggProc:
		return "proc(" + t.fields() + ") " + t.Ret.String()
	}
	return "agg(?)"
}

func (t *AggType) fields() string {
	var b strings.Builder
	for i, ft := range t.Types {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < t.Names.Len() && t.Names[i] != "" {
			b.WriteString(t.Names[i])
			b.WriteByte(' ')
		}
		b.WriteString(ft.String())
	}
	if t.Kind == AggProc && t.Flags&ProcVariadic != 0 {
		if len(t.Types) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	return b.String()
}

// Basic returns the interned type for b.
func (g *Generator) Basic(b BasicType) *AggType {
	if b >= BasicCount {
		panic(errors.New(errors.PhaseType, errors.KindInvalidInput).
			Detail("unknown basic type %d", b).
			Value(b).
			Build())
	}
	return g.basic[b]
}

// Array returns the array type [length]elem.
func (g *Generator) Array(elem *AggType, length int64) *AggType {
	if elem == nil {
		panic(errors.NilOperand(errors.PhaseType, []string{"array"}, "elem"))
	}
	if length < 0 {
		panic(errors.New(errors.PhaseType, errors.KindInvalidInput).
			Path("array").
			Detail("negative array length %d", length).
			Value(length).
			Build())
	}
	if elem.IsVoid() {
		panic(errors.TypeMismatch(errors.PhaseType, []string{"array", "elem"}, "non-void", elem.String()))
	}
	t := &AggType{
		Kind:  AggArray,
		Size:  length * elem.Size,
		Align: elem.Align,
		Elem:  elem,
		Len:   length,
	}
	g.types.Push(t)
	return t
}

// ProcType returns a cdecl procedure type. A nil ret means void.
// names may be empty; otherwise it must match types in length.
func (g *Generator) ProcType(ret *AggType, names []string, types []*AggType, flags ProcFlags) *AggType {
	return g.ProcTypeCC(ret, names, types, CallConvCdecl, flags)
}

// ProcTypeCC is ProcType with an explicit calling convention.
func (g *Generator) ProcTypeCC(ret *AggType, names []string, types []*AggType, cc CallConv, flags ProcFlags) *AggType {
	if len(names) != 0 && len(names) != len(types) {
		panic(errors.New(errors.PhaseType, errors.KindArgCount).
			Path("proc").
			Detail("%d names for %d parameter types", len(names), len(types)).
			Build())
	}
	if ret == nil {
		ret = g.basic[Void]
	}
	t := &AggType{
		Kind:     AggProc,
		Size:     g.ptrSize,
		Align:    g.ptrSize,
		Ret:      ret,
		CallConv: cc,
		Flags:    flags,
	}
	for i, pt := range types {
		if pt == nil || pt.IsVoid() {
			panic(errors.TypeMismatch(errors.PhaseType, []string{"proc", "param" + strconv.Itoa(i)}, "non-void", pt.String()))
		}
		t.Types.Push(pt)
		if len(names) != 0 {
			t.Names.Push(g.arena.StrDup(names[i]))
		}
	}
	g.types.Push(t)
	return t
}

// Record returns a nominal record type laid out sequentially.
// aligns may be nil; a zero entry keeps the field's natural alignment.
func (g *Generator) Record(name string, names []string, types []*AggType, aligns []int64) *AggType {
	if len(names) != 0 && len(names) != len(types) {
		panic(errors.New(errors.PhaseType, errors.KindArgCount).
			Path("record", name).
			Detail("%d names for %d fields", len(names), len(types)).
			Build())
	}
	if aligns != nil && len(aligns) != len(types) {
		panic(errors.New(errors.PhaseType, errors.KindArgCount).
			Path("record", name).
			Detail("%d alignments for %d fields", len(aligns), len(types)).
			Build())
	}

	t := &AggType{Kind: AggRecord, Name: g.arena.StrDup(name), Align: 1}
	var off int64
	for i, ft := range types {
		if ft == nil || ft.IsVoid() {
			panic(errors.TypeMismatch(errors.PhaseType, []string{"record", name, "field" + strconv.Itoa(i)}, "non-void", ft.String()))
		}
		align := max(ft.Align, 1)
		var explicit int64
		if aligns != nil {
			explicit = aligns[i]
		}
		if explicit < 0 || explicit&(explicit-1) != 0 {
			panic(errors.New(errors.PhaseType, errors.KindInvalidInput).
				Path("record", name).
				Detail("field %d alignment %d is not a power of two", i, explicit).
				Value(explicit).
				Build())
		}
		align = max(align, explicit)

		off = alignTo(off, align)
		t.Offsets.Push(off)
		t.Aligns.Push(explicit)
		t.Types.Push(ft)
		if len(names) != 0 {
			t.Names.Push(g.arena.StrDup(names[i]))
		}
		off += ft.Size
		t.Align = max(t.Align, align)
	}
	t.Size = alignTo(off, t.Align)

	g.types.Push(t)
	return t
}

func alignTo(n, align int64) int64 {
	return (n + align - 1) &^ (align - 1)
}
