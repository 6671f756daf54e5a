package ir

import (
	"math"

	"github.com/wippyai/c0/array"
)

// Ref is the handle of an instruction inside its procedure.
type Ref uint32

// Nil is the absent instruction.
const Nil Ref = 0

// NoID marks an instruction without an assigned id.
const NoID = ^uint32(0)

// Loc is a source position. File indexes Generator.AddFile.
type Loc struct {
	File   uint32
	Line   int32
	Column int32
}

// Instr is one node of the instruction tree.
//
// A value-producing instruction has either a non-void Basic or a non-nil Agg
// result. Block kinds (if, loop, block) own Nested; an if with an else branch
// carries the else block as its second operand.
type Instr struct {
	Agg     *AggType
	TypeArg *AggType // array or record for index/field pointers, signature for calls
	Callee  *Proc

	Name   string
	Args   []Ref
	Nested array.Array[Ref]

	Value   uint64 // literal bits of a constant, field index of field_ptr
	ValueHi uint64 // upper half of 128-bit constants

	Loc   Loc
	Uses  uint32
	ID    uint32
	Align uint32

	Kind  Kind
	Basic BasicType

	placed  bool
	orphan  bool
	literal bool
}

// IsValue reports whether the instruction produces a value.
func (in *Instr) IsValue() bool {
	return in.Basic != Void || in.Agg != nil
}

// IsConst reports whether the instruction is a literal pushed by one of the
// constant verbs. Scratch slots and parameters are plain declarations.
func (in *Instr) IsConst() bool {
	return in.Kind == KindDecl && in.literal
}

// HasElse reports whether an if carries an else block.
func (in *Instr) HasElse() bool {
	return in.Kind == KindIf && len(in.Args) == 2
}

// Int64 returns the literal as a signed integer.
func (in *Instr) Int64() int64 { return int64(in.Value) }

// Uint64 returns the literal as an unsigned integer.
func (in *Instr) Uint64() uint64 { return in.Value }

// Float32 returns the literal as a float32.
func (in *Instr) Float32() float32 { return math.Float32frombits(uint32(in.Value)) }

// Float64 returns the literal as a float64.
func (in *Instr) Float64() float64 { return math.Float64frombits(in.Value) }

// Float16Bits returns the raw bits of an f16 literal.
func (in *Instr) Float16Bits() uint16 { return uint16(in.Value) }

// FieldIndex returns the field selected by a field_ptr.
func (in *Instr) FieldIndex() int { return int(in.Value) }

// ResultType returns the result as an aggregate type, nil for void.
func (in *Instr) ResultType(g *Generator) *AggType {
	if in.Agg != nil {
		return in.Agg
	}
	if in.Basic == Void {
		return nil
	}
	return g.Basic(in.Basic)
}
