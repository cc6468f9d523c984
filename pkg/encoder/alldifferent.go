package encoder

import "github.com/semiexp/cspuz-core-sub001/pkg/normcsp"

// encodeAllDifferent emits one pairwise inequality per pair of variables.
// This is complete but quadratic in the number of variables; cspuz_core's
// optional bijection-support clauses (for when the union of domains has
// exactly as many values as variables) are not ported — see DESIGN.md.
func (enc *encoder) encodeAllDifferent(c normcsp.AllDifferentConstraint) {
	for i := 0; i < len(c.Vars); i++ {
		for j := i + 1; j < len(c.Vars); j++ {
			enc.assertNotEqual(c.Vars[i], c.Vars[j])
		}
	}
}

// assertNotEqual forbids vi and vj from taking the same value, by nogood
// clauses over the values common to both domains.
func (enc *encoder) assertNotEqual(vi, vj normcsp.NIntVar) {
	ei := enc.varEncodingOf(vi)
	ej := enc.varEncodingOf(vj)
	for idxI, val := range ei.Values {
		idxJ := ej.IndexOf(val)
		if idxJ < 0 {
			continue
		}
		enc.backend.AddClause(append(ei.NotEqLits(idxI), ej.NotEqLits(idxJ)...))
	}
}
