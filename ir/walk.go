package ir

// WalkFunc visits an instruction. Returning false skips its children.
type WalkFunc func(ref Ref, in *Instr, depth int) bool

// Walk visits the body depth first. Top-level instructions have depth 0.
// The else block of an if is visited at the depth of the if, after the
// then-body.
func (p *Proc) Walk(fn WalkFunc) {
	for _, ref := range p.instrs {
		p.walk(ref, 0, fn)
	}
}

func (p *Proc) walk(ref Ref, depth int, fn WalkFunc) {
	in := p.nodes[ref]
	if fn(ref, in, depth) && in.Kind.IsBlock() {
		for _, r := range in.Nested {
			p.walk(r, depth+1, fn)
		}
	}
	if in.HasElse() {
		p.walk(in.Args[1], depth, fn)
	}
}
