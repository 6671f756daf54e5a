package ir

// Conversion is a source and target basic type pair.
type Conversion struct {
	From BasicType
	To   BasicType
}

// Registry records which instruction kinds, basic-type variants and
// conversions finished procedures use. A code generator only has to provide
// what is registered.
type Registry struct {
	kinds       [KindCount]bool
	variants    [KindCount][BasicCount]bool
	convert     [BasicCount][BasicCount]bool
	reinterpret [BasicCount][BasicCount]bool
}

func (r *Registry) add(p *Proc, in *Instr) {
	r.kinds[in.Kind] = true

	switch {
	case in.Kind == KindConvert:
		from := p.nodes[in.Args[0]].Basic
		r.convert[from][in.Basic] = true
	case in.Kind == KindReinterpret:
		from := p.nodes[in.Args[0]].Basic
		r.reinterpret[from][in.Basic] = true
	}

	switch {
	case in.Kind.IsStore(), in.Kind == KindAtomicStore:
		r.variants[in.Kind][p.nodes[in.Args[1]].Basic] = true
	case in.Basic != Void:
		r.variants[in.Kind][in.Basic] = true
	}
}

// Has reports whether kind is used.
func (r *Registry) Has(kind Kind) bool {
	return kind < KindCount && r.kinds[kind]
}

// Kinds returns the used kinds in declaration order.
func (r *Registry) Kinds() []Kind {
	var out []Kind
	for k := Kind(0); k < KindCount; k++ {
		if r.kinds[k] {
			out = append(out, k)
		}
	}
	return out
}

// Variants returns the basic types kind is used with.
func (r *Registry) Variants(kind Kind) []BasicType {
	var out []BasicType
	if kind >= KindCount {
		return out
	}
	for b := Void; b < BasicCount; b++ {
		if r.variants[kind][b] {
			out = append(out, b)
		}
	}
	return out
}

// HasVariant reports whether kind is used with basic type b.
func (r *Registry) HasVariant(kind Kind, b BasicType) bool {
	return kind < KindCount && b < BasicCount && r.variants[kind][b]
}

// HasConversion reports whether a convert from one type to another is used.
func (r *Registry) HasConversion(from, to BasicType) bool {
	return from < BasicCount && to < BasicCount && r.convert[from][to]
}

// HasReinterpretation reports whether a reinterpret between the types is used.
func (r *Registry) HasReinterpretation(from, to BasicType) bool {
	return from < BasicCount && to < BasicCount && r.reinterpret[from][to]
}

// Conversions returns the used convert pairs.
func (r *Registry) Conversions() []Conversion {
	return pairs(&r.convert)
}

// Reinterpretations returns the used reinterpret pairs.
func (r *Registry) Reinterpretations() []Conversion {
	return pairs(&r.reinterpret)
}

func pairs(m *[BasicCount][BasicCount]bool) []Conversion {
	var out []Conversion
	for from := Void; from < BasicCount; from++ {
		for to := Void; to < BasicCount; to++ {
			if m[from][to] {
				out = append(out, Conversion{From: from, To: to})
			}
		}
	}
	return out
}
