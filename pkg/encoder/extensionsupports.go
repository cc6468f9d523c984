package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// encodeExtensionSupports compiles a table constraint: the variable tuple
// must match at least one row of c.Supports (a nil entry is a wildcard).
// One selector literal per row asserts "this row was picked"; the selectors
// are required to cover at least one true value, and picking a row forces
// every one of its non-wildcard columns.
func (enc *encoder) encodeExtensionSupports(c normcsp.ExtensionSupportsConstraint) error {
	if len(c.Supports) == 0 {
		enc.backend.AddClause(nil)
		return nil
	}

	encs := make([]*VarEncoding, len(c.Vars))
	for i, v := range c.Vars {
		encs[i] = enc.varEncodingOf(v)
	}

	selectors := make([]satbackend.Lit, len(c.Supports))
	for r, row := range c.Supports {
		sel := satbackend.Pos(enc.backend.NewVar())
		selectors[r] = sel
		for col, val := range row {
			if val == nil {
				continue
			}
			idx := encs[col].IndexOf(*val)
			if idx < 0 {
				// This row can never match; forbid its selector outright.
				enc.backend.AddClause([]satbackend.Lit{sel.Not()})
				continue
			}
			for _, eqLit := range encs[col].EqLits(idx) {
				enc.backend.AddClause([]satbackend.Lit{sel.Not(), eqLit})
			}
		}
	}
	enc.backend.AddClause(selectors)
	return nil
}
