package ir

// isTerminating reports whether control can never fall through ref.
func (p *Proc) isTerminating(ref Ref) bool {
	if ref == Nil {
		return false
	}
	in := p.nodes[ref]
	switch in.Kind {
	case KindReturn, KindUnreachable:
		return true
	case KindIf:
		if !in.HasElse() || in.Nested.Len() == 0 {
			return false
		}
		return p.isTerminating(in.Nested.Last()) && p.isTerminating(p.lastOf(in.Args[1]))
	case KindBlock:
		if in.Nested.Len() == 0 {
			return false
		}
		return p.isTerminating(in.Nested.Last())
	case KindLoop:
		if in.Nested.Len() == 0 {
			return true
		}
		if p.anyBreak(ref, 0) {
			return false
		}
		return p.isTerminating(in.Nested.Last())
	}
	return false
}

func (p *Proc) lastOf(block Ref) Ref {
	in := p.nodes[block]
	if in.Nested.Len() == 0 {
		return Nil
	}
	return in.Nested.Last()
}

// anyBreak reports whether ref contains a break that leaves the loop being
// analysed. Breaks inside nested loops target those loops instead.
func (p *Proc) anyBreak(ref Ref, loops int) bool {
	in := p.nodes[ref]
	switch in.Kind {
	case KindBreak:
		return true
	case KindLoop:
		loops++
	}
	if loops > 1 {
		return false
	}
	for _, r := range in.Nested {
		if p.anyBreak(r, loops) {
			return true
		}
	}
	if in.HasElse() {
		return p.anyBreak(in.Args[1], loops)
	}
	return false
}

// IsTerminating reports whether control can never continue after ref.
func (p *Proc) IsTerminating(ref Ref) bool {
	if ref != Nil {
		p.Instr(ref)
	}
	return p.isTerminating(ref)
}
