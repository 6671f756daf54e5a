package ir

// Equal reports exact type equality. Records are nominal; procedure types
// compare return type, parameter types and flags; arrays require the same
// element type object.
func Equal(a, b *AggType) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AggBasic:
		return a.Basic == b.Basic
	case AggArray:
		return a.Len == b.Len && a.Elem == b.Elem
	case AggRecord:
		return a.Name == b.Name
	case AggProc:
		if a.Flags != b.Flags || !Equal(a.Ret, b.Ret) || a.Types.Len() != b.Types.Len() {
			return false
		}
		for i := range a.Types {
			if !Equal(a.Types[i], b.Types[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compatible reports whether a value of type b may be used where a is
// expected. Basic types agree after unsigned normalization, arrays compare
// structurally, records and procedures only by identity.
func Compatible(a, b *AggType) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AggBasic:
		return a.Basic.Unsigned() == b.Basic.Unsigned()
	case AggArray:
		return a.Len == b.Len && Compatible(a.Elem, b.Elem)
	}
	return false
}

// CompatibleBasic reports whether a is a basic type matching b after
// unsigned normalization.
func CompatibleBasic(a *AggType, b BasicType) bool {
	return a != nil && a.Kind == AggBasic && a.Basic.Unsigned() == b.Unsigned()
}
