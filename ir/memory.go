package ir

import (
	"strconv"

	"github.com/wippyai/c0/errors"
)

// PushAddrOfDecl pushes the address of a declaration.
func (p *Proc) PushAddrOfDecl(decl Ref) Ref {
	if !p.begin(KindAddr) {
		return Nil
	}
	in := p.operand("addr", "decl", decl)
	if in.Kind != KindDecl {
		panic(errors.InvalidOperand(errors.PhaseBuild, p.path("addr"), "decl", in.Kind.String()))
	}
	return p.emit(&Instr{Kind: KindAddr, Basic: Ptr, Args: p.args(decl)})
}

// PushIndexPtr pushes the address of element index of the array at ptr.
func (p *Proc) PushIndexPtr(arr *AggType, ptr, index Ref) Ref {
	if !p.begin(KindIndexPtr) {
		return Nil
	}
	if arr == nil || arr.Kind != AggArray {
		p.mismatch("index_ptr", "array type", arr.String())
	}
	p.pointer("index_ptr", "ptr", ptr)
	p.integer("index_ptr", "index", index)
	return p.emit(&Instr{Kind: KindIndexPtr, Basic: Ptr, TypeArg: arr, Args: p.args(ptr, index)})
}

// PushFieldPtr pushes the address of field of the record at ptr.
func (p *Proc) PushFieldPtr(rec *AggType, ptr Ref, field int) Ref {
	if !p.begin(KindFieldPtr) {
		return Nil
	}
	if rec == nil || rec.Kind != AggRecord {
		p.mismatch("field_ptr", "record type", rec.String())
	}
	p.pointer("field_ptr", "ptr", ptr)
	if field < 0 || field >= rec.Types.Len() {
		panic(errors.OutOfBounds(errors.PhaseBuild, p.path("field_ptr"), field, rec.Types.Len()))
	}
	return p.emit(&Instr{Kind: KindFieldPtr, Basic: Ptr, TypeArg: rec, Value: uint64(field), Args: p.args(ptr)})
}

// PushLoad loads a value of type b through ptr.
func (p *Proc) PushLoad(b BasicType, ptr Ref) Ref {
	kind := loadKind(b)
	if !p.begin(kind) {
		return Nil
	}
	if b == Void || b >= BasicCount {
		p.mismatch("load", "non-void basic type", b.String())
	}
	p.pointer("load", "ptr", ptr)
	return p.emit(&Instr{Kind: kind, Basic: b, Args: p.args(ptr)})
}

// PushStore stores src through dst. A declaration as dst stores into the
// declared slot.
func (p *Proc) PushStore(dst, src Ref) Ref {
	if !p.begin(KindStoreU8) {
		return Nil
	}
	d := p.operand("store", "dst", dst)
	s := p.basicValue("store", "src", src)
	if d.Kind == KindDecl {
		if d.Agg == nil && d.Basic.Unsigned() != s.Basic.Unsigned() {
			p.mismatch("store", d.Basic.String(), s.Basic.String())
		}
		dst = p.PushAddrOfDecl(dst)
	} else {
		p.pointer("store", "dst", dst)
	}
	return p.emit(&Instr{Kind: storeKind(s.Basic), Args: p.args(dst, src)})
}

// PushUnalignedLoad loads a value of type b from a possibly misaligned ptr by
// copying it into a fresh slot. The slot is returned.
func (p *Proc) PushUnalignedLoad(b BasicType, ptr Ref) Ref {
	if !p.begin(KindMemmove) {
		return Nil
	}
	if b == Void || b >= BasicCount {
		p.mismatch("unaligned_load", "non-void basic type", b.String())
	}
	p.pointer("unaligned_load", "ptr", ptr)

	val := p.PushDecl(b, "")
	p.PushMemmove(p.PushAddrOfDecl(val), ptr, p.PushU32(uint32(p.gen.BasicSize(b))))
	return val
}

// PushUnalignedStore stores src to a possibly misaligned dst through a byte copy.
func (p *Proc) PushUnalignedStore(dst, src Ref) Ref {
	if !p.begin(KindMemmove) {
		return Nil
	}
	d := p.operand("unaligned_store", "dst", dst)
	s := p.basicValue("unaligned_store", "src", src)
	if d.Kind == KindDecl {
		if d.Agg == nil && d.Basic.Unsigned() != s.Basic.Unsigned() {
			p.mismatch("unaligned_store", d.Basic.String(), s.Basic.String())
		}
		dst = p.PushAddrOfDecl(dst)
	} else {
		p.pointer("unaligned_store", "dst", dst)
	}
	if s.Kind != KindDecl {
		src = p.PushCopy(src)
	}
	srcPtr := p.PushAddrOfDecl(src)
	return p.PushMemmove(dst, srcPtr, p.PushU32(uint32(p.gen.BasicSize(s.Basic))))
}

// PushVolatileLoad is a load that is never merged or elided by a backend.
func (p *Proc) PushVolatileLoad(b BasicType, ptr Ref) Ref {
	return p.PushUnalignedLoad(b, ptr)
}

// PushVolatileStore is a store that is never merged or elided by a backend.
func (p *Proc) PushVolatileStore(dst, src Ref) Ref {
	return p.PushUnalignedStore(dst, src)
}

// PushMemmove copies size bytes from src to dst; the ranges may overlap.
func (p *Proc) PushMemmove(dst, src, size Ref) Ref {
	if !p.begin(KindMemmove) {
		return Nil
	}
	p.pointer("memmove", "dst", dst)
	p.pointer("memmove", "src", src)
	p.integer("memmove", "size", size)
	return p.emit(&Instr{Kind: KindMemmove, Args: p.args(dst, src, size)})
}

// PushMemset fills size bytes at dst with val.
func (p *Proc) PushMemset(dst Ref, val uint8, size Ref) Ref {
	if !p.begin(KindMemset) {
		return Nil
	}
	p.pointer("memset", "dst", dst)
	p.integer("memset", "size", size)
	v := p.PushU8(val)
	return p.emit(&Instr{Kind: KindMemset, Args: p.args(dst, v, size)})
}

func sizeString(n int64) string {
	return strconv.FormatInt(n, 10)
}
