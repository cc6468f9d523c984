package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// encodeClause compiles one normcsp.Clause to a backend clause. A LinearLit
// disjunct that Classify already proves trivially true drops the whole
// clause (it is satisfied unconditionally); one proved trivially false is
// simply omitted; anything else is reified to a fresh literal first.
func (enc *encoder) encodeClause(c normcsp.Clause) error {
	lits := make([]satbackend.Lit, 0, len(c.BoolLits))
	for _, b := range c.BoolLits {
		lits = append(lits, enc.litOf(b))
	}
	for _, ll := range c.LinearLits {
		switch ll.Classify(enc.norm) {
		case 1:
			return nil
		case -1:
			continue
		default:
			a, err := enc.reifyLinear(ll)
			if err != nil {
				return err
			}
			lits = append(lits, a)
		}
	}
	enc.backend.AddClause(lits)
	return nil
}
