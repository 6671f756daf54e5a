package ir

// Kind identifies an instruction.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Declaration of a local slot or a constant (Value holds the literal).
	KindDecl
	KindAddr
	KindIndexPtr
	KindFieldPtr

	KindLoadU8
	KindLoadU16
	KindLoadU32
	KindLoadU64
	KindLoadU128
	KindLoadF16
	KindLoadF32
	KindLoadF64
	KindLoadPtr

	KindStoreU8
	KindStoreU16
	KindStoreU32
	KindStoreU64
	KindStoreU128
	KindStoreF16
	KindStoreF32
	KindStoreF64
	KindStorePtr

	KindClz
	KindCtz
	KindPopcnt

	KindAbsf
	KindNegf
	KindCeilf
	KindFloorf
	KindNearestf
	KindTruncf
	KindSqrtf

	// Sign-agnostic integer operations; operands agree after unsigned normalization.
	KindAdd
	KindSub
	KindMul
	KindAnd
	KindOr
	KindXor
	KindEq
	KindNeq

	// Sign-dependent integer operations; operand types are identical.
	KindQuo
	KindRem
	// Shifts with the amount masked to width-1.
	KindShlc
	KindShrc
	// Shifts where an amount of width or more shifts everything out.
	KindShlo
	KindShro
	KindLt
	KindGt
	KindLteq
	KindGteq

	KindAddf
	KindSubf
	KindMulf
	KindDivf
	KindEqf
	KindNeqf
	KindLtf
	KindGtf
	KindLteqf
	KindGteqf

	KindConvert
	KindReinterpret

	KindAtomicThreadFence
	KindAtomicSignalFence
	KindAtomicLoad
	KindAtomicStore
	KindAtomicXchg
	KindAtomicCas
	KindAtomicAdd
	KindAtomicSub
	KindAtomicAnd
	KindAtomicOr
	KindAtomicXor
	KindAtomicAddf
	KindAtomicSubf

	KindMemmove
	KindMemset

	KindCall
	KindSelect

	KindIf
	KindLoop
	KindBlock
	KindContinue
	KindBreak
	KindReturn
	KindUnreachable
	KindGoto
	KindLabel

	KindCount
)

const variadic = -1

type kindInfo struct {
	name  string
	args  int
	flags uint8
}

const (
	flagSideEffect uint8 = 1 << iota
	flagCompare
	flagBlock
)

var kinds = [KindCount]kindInfo{
	KindInvalid:  {"invalid", 0, 0},
	KindDecl:     {"decl", 0, 0},
	KindAddr:     {"addr", 1, 0},
	KindIndexPtr: {"index_ptr", 2, 0},
	KindFieldPtr: {"field_ptr", 1, 0},

	KindLoadU8:   {"load_u8", 1, 0},
	KindLoadU16:  {"load_u16", 1, 0},
	KindLoadU32:  {"load_u32", 1, 0},
	KindLoadU64:  {"load_u64", 1, 0},
	KindLoadU128: {"load_u128", 1, 0},
	KindLoadF16:  {"load_f16", 1, 0},
	KindLoadF32:  {"load_f32", 1, 0},
	KindLoadF64:  {"load_f64", 1, 0},
	KindLoadPtr:  {"load_ptr", 1, 0},

	KindStoreU8:   {"store_u8", 2, flagSideEffect},
	KindStoreU16:  {"store_u16", 2, flagSideEffect},
	KindStoreU32:  {"store_u32", 2, flagSideEffect},
	KindStoreU64:  {"store_u64", 2, flagSideEffect},
	KindStoreU128: {"store_u128", 2, flagSideEffect},
	KindStoreF16:  {"store_f16", 2, flagSideEffect},
	KindStoreF32:  {"store_f32", 2, flagSideEffect},
	KindStoreF64:  {"store_f64", 2, flagSideEffect},
	KindStorePtr:  {"store_ptr", 2, flagSideEffect},

	KindClz:    {"clz", 1, 0},
	KindCtz:    {"ctz", 1, 0},
	KindPopcnt: {"popcnt", 1, 0},

	KindAbsf:     {"absf", 1, 0},
	KindNegf:     {"negf", 1, 0},
	KindCeilf:    {"ceilf", 1, 0},
	KindFloorf:   {"floorf", 1, 0},
	KindNearestf: {"nearestf", 1, 0},
	KindTruncf:   {"truncf", 1, 0},
	KindSqrtf:    {"sqrtf", 1, 0},

	KindAdd: {"add", 2, 0},
	KindSub: {"sub", 2, 0},
	KindMul: {"mul", 2, 0},
	KindAnd: {"and", 2, 0},
	KindOr:  {"or", 2, 0},
	KindXor: {"xor", 2, 0},
	KindEq:  {"eq", 2, flagCompare},
	KindNeq: {"neq", 2, flagCompare},

	KindQuo:  {"quo", 2, 0},
	KindRem:  {"rem", 2, 0},
	KindShlc: {"shlc", 2, 0},
	KindShrc: {"shrc", 2, 0},
	KindShlo: {"shlo", 2, 0},
	KindShro: {"shro", 2, 0},
	KindLt:   {"lt", 2, flagCompare},
	KindGt:   {"gt", 2, flagCompare},
	KindLteq: {"lteq", 2, flagCompare},
	KindGteq: {"gteq", 2, flagCompare},

	KindAddf:  {"addf", 2, 0},
	KindSubf:  {"subf", 2, 0},
	KindMulf:  {"mulf", 2, 0},
	KindDivf:  {"divf", 2, 0},
	KindEqf:   {"eqf", 2, flagCompare},
	KindNeqf:  {"neqf", 2, flagCompare},
	KindLtf:   {"ltf", 2, flagCompare},
	KindGtf:   {"gtf", 2, flagCompare},
	KindLteqf: {"lteqf", 2, flagCompare},
	KindGteqf: {"gteqf", 2, flagCompare},

	KindConvert:     {"convert", 1, 0},
	KindReinterpret: {"reinterpret", 1, 0},

	KindAtomicThreadFence: {"atomic_thread_fence", 0, flagSideEffect},
	KindAtomicSignalFence: {"atomic_signal_fence", 0, flagSideEffect},
	KindAtomicLoad:        {"atomic_load", 1, flagSideEffect},
	KindAtomicStore:       {"atomic_store", 2, flagSideEffect},
	KindAtomicXchg:        {"atomic_xchg", 2, flagSideEffect},
	KindAtomicCas:         {"atomic_cas", 3, flagSideEffect},
	KindAtomicAdd:         {"atomic_add", 2, flagSideEffect},
	KindAtomicSub:         {"atomic_sub", 2, flagSideEffect},
	KindAtomicAnd:         {"atomic_and", 2, flagSideEffect},
	KindAtomicOr:          {"atomic_or", 2, flagSideEffect},
	KindAtomicXor:         {"atomic_xor", 2, flagSideEffect},
	KindAtomicAddf:        {"atomic_addf", 2, flagSideEffect},
	KindAtomicSubf:        {"atomic_subf", 2, flagSideEffect},

	KindMemmove: {"memmove", 3, flagSideEffect},
	KindMemset:  {"memset", 3, flagSideEffect},

	KindCall:   {"call", variadic, flagSideEffect},
	KindSelect: {"select", 3, 0},

	KindIf:          {"if", variadic, flagBlock},
	KindLoop:        {"loop", 0, flagBlock},
	KindBlock:       {"block", 0, flagBlock},
	KindContinue:    {"continue", 0, 0},
	KindBreak:       {"break", 0, 0},
	KindReturn:      {"return", variadic, 0},
	KindUnreachable: {"unreachable", 0, 0},
	KindGoto:        {"goto", 1, 0},
	KindLabel:       {"label", 0, 0},
}

func (k Kind) String() string {
	if k < KindCount {
		return kinds[k].name
	}
	return "kind(?)"
}

// HasSideEffects reports whether instructions of this kind are kept even when
// their result is unused.
func (k Kind) HasSideEffects() bool {
	return k < KindCount && kinds[k].flags&flagSideEffect != 0
}

// IsCompare reports whether k is a comparison producing a u8 truth value.
func (k Kind) IsCompare() bool {
	return k < KindCount && kinds[k].flags&flagCompare != 0
}

// IsBlock reports whether k owns a nested instruction list.
func (k Kind) IsBlock() bool {
	return k < KindCount && kinds[k].flags&flagBlock != 0
}

// IsStore reports whether k is a plain store.
func (k Kind) IsStore() bool { return k >= KindStoreU8 && k <= KindStorePtr }

// loadKind and storeKind select the width class for b.
func loadKind(b BasicType) Kind {
	return KindLoadU8 + widthClass(b)
}

func storeKind(b BasicType) Kind {
	return KindStoreU8 + widthClass(b)
}

func widthClass(b BasicType) Kind {
	switch b {
	case I8, U8:
		return 0
	case I16, U16:
		return 1
	case I32, U32:
		return 2
	case I64, U64:
		return 3
	case I128, U128:
		return 4
	case F16:
		return 5
	case F32:
		return 6
	case F64:
		return 7
	}
	return 8 // Ptr
}
