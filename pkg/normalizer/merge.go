package normalizer

import "github.com/semiexp/cspuz-core-sub001/pkg/normcsp"

// boolEquivUF is a union-find over normalized Boolean variables with XOR
// parity. An (iff l r) constraint, once both sides reduce to plain
// literals, means the two variables denote the same truth value up to a
// polarity flip; recording that here lets config.MergeEquivalentVariables
// collapse the redundant variable instead of carrying both through the
// encoder.
type boolEquivUF struct {
	parent []normcsp.NBoolVar
	parity []bool
}

func newBoolEquivUF(n int) *boolEquivUF {
	uf := &boolEquivUF{parent: make([]normcsp.NBoolVar, n), parity: make([]bool, n)}
	for i := range uf.parent {
		uf.parent[i] = normcsp.NBoolVar(i)
	}
	return uf
}

// grow extends the structure so every variable up to n-1 has a parent,
// needed because variables are allocated incrementally while this union-find
// is built lazily from (iff ...) sightings.
func (uf *boolEquivUF) grow(n int) {
	for len(uf.parent) < n {
		uf.parent = append(uf.parent, normcsp.NBoolVar(len(uf.parent)))
		uf.parity = append(uf.parity, false)
	}
}

// find returns v's root and the parity between v and that root (true means
// v denotes the negation of the root).
func (uf *boolEquivUF) find(v normcsp.NBoolVar) (normcsp.NBoolVar, bool) {
	if uf.parent[v] == v {
		return v, false
	}
	root, p := uf.find(uf.parent[v])
	uf.parent[v] = root
	uf.parity[v] = uf.parity[v] != p
	return root, uf.parity[v]
}

// union records that v1 == v2 (negated == false) or v1 == !v2 (negated ==
// true).
func (uf *boolEquivUF) union(v1, v2 normcsp.NBoolVar, negated bool) {
	r1, p1 := uf.find(v1)
	r2, p2 := uf.find(v2)
	if r1 == r2 {
		return
	}
	uf.parent[r2] = r1
	uf.parity[r2] = (p1 != p2) != negated
}

// canonical rewrites lit to its union-find representative, preserving its
// effective polarity.
func (uf *boolEquivUF) canonical(lit normcsp.BoolLit) normcsp.BoolLit {
	root, p := uf.find(lit.Var)
	neg := lit.Negated
	if p {
		neg = !neg
	}
	return normcsp.BoolLit{Var: root, Negated: neg}
}
