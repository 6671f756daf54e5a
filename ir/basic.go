package ir

// BasicType is a scalar type.
type BasicType uint8

const (
	Void BasicType = iota
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	I128
	U128
	F16
	F32
	F64
	Ptr

	BasicCount
)

var basicNames = [BasicCount]string{
	Void: "void",
	I8:   "i8",
	U8:   "u8",
	I16:  "i16",
	U16:  "u16",
	I32:  "i32",
	U32:  "u32",
	I64:  "i64",
	U64:  "u64",
	I128: "i128",
	U128: "u128",
	F16:  "f16",
	F32:  "f32",
	F64:  "f64",
	Ptr:  "ptr",
}

// sizes in bytes; Ptr is resolved against the generator's pointer size.
var basicSizes = [BasicCount]int64{
	Void: 0,
	I8:   1,
	U8:   1,
	I16:  2,
	U16:  2,
	I32:  4,
	U32:  4,
	I64:  8,
	U64:  8,
	I128: 16,
	U128: 16,
	F16:  2,
	F32:  4,
	F64:  8,
	Ptr:  -1,
}

var unsignedOf = [BasicCount]BasicType{
	Void: Void,
	I8:   U8,
	U8:   U8,
	I16:  U16,
	U16:  U16,
	I32:  U32,
	U32:  U32,
	I64:  U64,
	U64:  U64,
	I128: U128,
	U128: U128,
	F16:  F16,
	F32:  F32,
	F64:  F64,
	Ptr:  Ptr,
}

func (b BasicType) String() string {
	if b < BasicCount {
		return basicNames[b]
	}
	return "basic(?)"
}

// IsInteger reports whether b is a signed or unsigned integer.
func (b BasicType) IsInteger() bool { return b >= I8 && b <= U128 }

// IsSigned reports whether b is a signed integer.
func (b BasicType) IsSigned() bool {
	switch b {
	case I8, I16, I32, I64, I128:
		return true
	}
	return false
}

// IsFloat reports whether b is a floating-point type.
func (b BasicType) IsFloat() bool { return b >= F16 && b <= F64 }

// Unsigned maps signed integers to their unsigned counterpart.
// Every other type maps to itself.
func (b BasicType) Unsigned() BasicType {
	if b < BasicCount {
		return unsignedOf[b]
	}
	return b
}

// Bits returns the width in bits. Ptr has no fixed width and reports 0.
func (b BasicType) Bits() int {
	if b >= BasicCount || b == Ptr {
		return 0
	}
	return int(basicSizes[b]) * 8
}
