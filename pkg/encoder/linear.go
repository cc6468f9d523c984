package encoder

import (
	"fmt"
	"sort"

	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// valueSelector pairs one value a (partial) sum can take with the literal
// that is true exactly when the sum equals that value.
type valueSelector struct {
	value int32
	lit   satbackend.Lit
}

// trueLit returns a literal asserted true by a unit clause, allocating it
// once per encoder and reusing it afterward.
func (enc *encoder) trueLit() satbackend.Lit {
	if enc.trueVar == nil {
		v := satbackend.Pos(enc.backend.NewVar())
		enc.backend.AddClause([]satbackend.Lit{v})
		enc.trueVar = &v
	}
	return *enc.trueVar
}

// reifyAnd returns a literal biconditional to the conjunction of lits. An
// empty conjunction is vacuously true.
func (enc *encoder) reifyAnd(lits []satbackend.Lit) satbackend.Lit {
	switch len(lits) {
	case 0:
		return enc.trueLit()
	case 1:
		return lits[0]
	}
	a := satbackend.Pos(enc.backend.NewVar())
	for _, l := range lits {
		enc.backend.AddClause([]satbackend.Lit{a.Not(), l})
	}
	clause := make([]satbackend.Lit, 0, len(lits)+1)
	for _, l := range lits {
		clause = append(clause, l.Not())
	}
	clause = append(clause, a)
	enc.backend.AddClause(clause)
	return a
}

// reifyOr returns a literal biconditional to the disjunction of lits.
func (enc *encoder) reifyOr(lits []satbackend.Lit) satbackend.Lit {
	if len(lits) == 1 {
		return lits[0]
	}
	a := satbackend.Pos(enc.backend.NewVar())
	for _, l := range lits {
		enc.backend.AddClause([]satbackend.Lit{l.Not(), a})
	}
	clause := append([]satbackend.Lit{a.Not()}, lits...)
	enc.backend.AddClause(clause)
	return a
}

// encodeSumSelectors returns one literal per value sum can take, built by
// combining terms one at a time rather than enumerating their full
// Cartesian product up front: each step costs |accumulated values| *
// |next term's domain|, and values reachable more than one way are merged
// via reifyOr, so the working set at any point is bounded by the sum's
// own reachable-value count rather than the product of every term's
// domain size. This replaces an earlier version that enumerated the whole
// product before emitting anything and hard-failed once it exceeded
// cfg.DomainProductThreshold — a threshold now applied to the
// (much smaller, deduplicated) running value count instead, so it only
// trips on a sum whose own range is pathologically wide, not merely one
// with several wide terms.
func (enc *encoder) encodeSumSelectors(sum *normcsp.LinearSum) ([]valueSelector, error) {
	terms := sum.Terms()
	acc := []valueSelector{{value: sum.Constant, lit: enc.trueLit()}}
	for _, t := range terms {
		te := enc.varEncodingOf(t.Var)
		merged := make(map[int32][]satbackend.Lit, len(acc)*len(te.Values))
		for _, a := range acc {
			for idx, v := range te.Values {
				val := a.value + t.Coef*v
				conj := append(append([]satbackend.Lit{}, a.lit), te.EqLits(idx)...)
				merged[val] = append(merged[val], enc.reifyAnd(conj))
			}
		}
		if len(merged) > enc.cfg.DomainProductThreshold {
			return nil, fmt.Errorf("encoder: linear constraint's combined value range exceeds threshold %d", enc.cfg.DomainProductThreshold)
		}

		values := make([]int32, 0, len(merged))
		for v := range merged {
			values = append(values, v)
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		next := make([]valueSelector, len(values))
		for i, v := range values {
			next[i] = valueSelector{value: v, lit: enc.reifyOr(merged[v])}
		}
		acc = next
	}
	return acc, nil
}

// assertLinear emits clauses making ll hold unconditionally: a unit clause
// forbidding every selector value that violates it.
func (enc *encoder) assertLinear(ll normcsp.LinearLit) error {
	selectors, err := enc.encodeSumSelectors(ll.Sum)
	if err != nil {
		return err
	}
	for _, s := range selectors {
		if !ll.Op.Holds(s.value) {
			enc.backend.AddClause([]satbackend.Lit{s.lit.Not()})
		}
	}
	return nil
}

// reifyLinear allocates a fresh literal biconditional to ll: for every
// selector value, it ties the selector's truth to a (or its negation),
// depending on whether that value satisfies ll.
func (enc *encoder) reifyLinear(ll normcsp.LinearLit) (satbackend.Lit, error) {
	selectors, err := enc.encodeSumSelectors(ll.Sum)
	if err != nil {
		return 0, err
	}
	a := satbackend.Pos(enc.backend.NewVar())
	for _, s := range selectors {
		if ll.Op.Holds(s.value) {
			enc.backend.AddClause([]satbackend.Lit{a, s.lit.Not()})
		} else {
			enc.backend.AddClause([]satbackend.Lit{a.Not(), s.lit.Not()})
		}
	}
	return a, nil
}
