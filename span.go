package vecsim

/*
span is one unit of gate work: one, two or four equal-length sub-slices of a
register's amplitude array, together with the gate bits that still vary
inside those sub-slices (highest first, as positions within a sub-slice).

Every group of amplitudes a gate mixes is made of the same local position in
each view, combined with every setting of the remaining bits. A group never
straddles two spans, and spans are cut from the array by re-slicing
non-overlapping ranges, so two spans cannot share an element. That is what
lets workers write into one array without locks.
*/
type span struct {
	views [][]complex128
	bits  []uint
}

/*
planSpans cuts amps into spans holding roughly grain amplitudes each, for a
gate acting on gateBits (sorted highest first).

While a span is too big it is reduced in one of three ways:
  - no gate bits left: the views are cut into equal-offset pieces
  - the views hold several blocks of the top gate bit: cut at block
    boundaries, so each piece keeps whole groups
  - the views are exactly one block: split each view into its lower and
    upper half on the top bit, which resolves that bit into the view index
*/
func planSpans(amps []complex128, gateBits []uint, grain int) []span {
	if grain < 1 {
		grain = 1
	}

	root := span{views: [][]complex128{amps}, bits: gateBits}
	return root.split(grain, nil)
}

func (s span) width() int {
	return len(s.views[0])
}

func (s span) size() int {
	return len(s.views) * len(s.views[0])
}

func (s span) split(grain int, out []span) []span {
	if s.size() <= grain {
		return append(out, s)
	}

	width := s.width()
	perView := max(grain/len(s.views), 1)

	if len(s.bits) == 0 {
		for off := 0; off < width; off += perView {
			out = append(out, s.slice(off, min(off+perView, width)))
		}
		return out
	}

	block := 1 << (s.bits[0] + 1)
	if width > block {
		step := max(perView-perView%block, block)
		for off := 0; off < width; off += step {
			out = s.slice(off, min(off+step, width)).split(grain, out)
		}
		return out
	}

	half := block >> 1
	views := make([][]complex128, 0, 2*len(s.views))
	for _, v := range s.views {
		views = append(views, v[:half:half], v[half:block:block])
	}

	return span{views: views, bits: s.bits[1:]}.split(grain, out)
}

// slice cuts the same [lo, hi) window out of every view.
func (s span) slice(lo, hi int) span {
	views := make([][]complex128, len(s.views))
	for i, v := range s.views {
		views[i] = v[lo:hi:hi]
	}
	return span{views: views, bits: s.bits}
}

/*
transform applies op to every group in the span. Group member k is view
k >> len(bits), offset by the remaining gate bits encoded in the low bits of
k, which matches the highest-bit-first basis order of op.
*/
func (s span) transform(op *operator) {
	var (
		mask    int
		offsets [4]int
	)

	inner := 1 << len(s.bits)
	for c := 0; c < inner; c++ {
		for b, bit := range s.bits {
			if c&(1<<(len(s.bits)-1-b)) != 0 {
				offsets[c] |= 1 << bit
			}
		}
	}
	for _, bit := range s.bits {
		mask |= 1 << bit
	}

	var group [4]*complex128
	width := s.width()

	// Walks every position with the gate bits clear, in increasing order.
	for p := 0; p < width; p = ((p | mask) + 1) &^ mask {
		k := 0
		for _, v := range s.views {
			for c := 0; c < inner; c++ {
				group[k] = &v[p|offsets[c]]
				k++
			}
		}
		op.apply(&group)
	}
}

// operator is a catalog matrix widened to a common 4×4 shape.
type operator struct {
	dim int
	m   [4][4]complex128
}

func oneQubitOperator(m Matrix2) *operator {
	op := &operator{dim: 2}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			op.m[r][c] = m[r][c]
		}
	}
	return op
}

func twoQubitOperator(m Matrix4) *operator {
	return &operator{dim: 4, m: m}
}

func (op *operator) apply(group *[4]*complex128) {
	var in [4]complex128
	zero := true
	for i := 0; i < op.dim; i++ {
		in[i] = *group[i]
		if in[i] != 0 {
			zero = false
		}
	}

	// The product of an all-zero group is zero.
	if zero {
		return
	}

	for r := 0; r < op.dim; r++ {
		var acc complex128
		for c := 0; c < op.dim; c++ {
			acc += op.m[r][c] * in[c]
		}
		*group[r] = acc
	}
}
