package diff

type opKind int

const (
	opEqual opKind = iota
	opInsert
	opDelete
	opReplace
)

// opcode describes one edit over the half-open rune spans a[A1:A2] and
// b[B1:B2].
type opcode struct {
	Kind opKind
	A1   int
	A2   int
	B1   int
	B2   int
}

type matchBlock struct {
	a    int
	b    int
	size int
}

// longestMatch finds the longest block of runes common to a[alo:ahi] and
// b[blo:bhi], preferring the earliest occurrence in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) matchBlock {
	best := matchBlock{a: alo, b: blo}

	// b2j[r] holds the indices in b[blo:bhi] where rune r occurs.
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	// j2len[j] is the length of the longest match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = matchBlock{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		j2len = next
	}
	return best
}

func matchingBlocks(a, b []rune) []matchBlock {
	var blocks []matchBlock
	var recurse func(alo, ahi, blo, bhi int)
	recurse = func(alo, ahi, blo, bhi int) {
		m := longestMatch(a, b, alo, ahi, blo, bhi)
		if m.size == 0 {
			return
		}
		recurse(alo, m.a, blo, m.b)
		blocks = append(blocks, m)
		recurse(m.a+m.size, ahi, m.b+m.size, bhi)
	}
	recurse(0, len(a), 0, len(b))
	blocks = append(blocks, matchBlock{a: len(a), b: len(b)})
	return blocks
}

// opcodes converts the matching-block decomposition of a and b into an
// ordered list of edit operations covering both sequences completely.
func opcodes(a, b []rune) []opcode {
	var ops []opcode
	ai, bi := 0, 0
	for _, block := range matchingBlocks(a, b) {
		var kind opKind
		switch {
		case ai < block.a && bi < block.b:
			kind = opReplace
		case ai < block.a:
			kind = opDelete
		case bi < block.b:
			kind = opInsert
		default:
			kind = opEqual // empty gap, skipped below
		}
		if ai < block.a || bi < block.b {
			ops = append(ops, opcode{Kind: kind, A1: ai, A2: block.a, B1: bi, B2: block.b})
		}
		if block.size > 0 {
			ops = append(ops, opcode{
				Kind: opEqual,
				A1:   block.a, A2: block.a + block.size,
				B1: block.b, B2: block.b + block.size,
			})
		}
		ai, bi = block.a+block.size, block.b+block.size
	}
	return ops
}
