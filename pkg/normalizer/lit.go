package normalizer

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
)

// lit is either a plain Boolean literal or a linear literal, used as the
// intermediate result of normalizing a BoolExpr. Keeping linear comparisons
// un-reified until something actually needs a SAT variable for them lets
// `(x + y <= 3)` sit directly in a disjunction's LinearLits instead of
// forcing an auxiliary Boolean variable and a pair of biconditional clauses
// that a structural constraint slot (e.g. ActiveVerticesConnected.Active)
// would need anyway.
type lit struct {
	isLinear bool
	b        normcsp.BoolLit
	l        normcsp.LinearLit
}

func litBool(b normcsp.BoolLit) lit   { return lit{b: b} }
func litLinear(l normcsp.LinearLit) lit { return lit{isLinear: true, l: l} }

// not negates lit without ever allocating a new variable: a Boolean
// literal's negation just flips its polarity bit, and a linear literal's
// negation is the flipped comparison operator over the same sum.
func (x lit) not() lit {
	if x.isLinear {
		return litLinear(normcsp.LinearLit{Sum: x.l.Sum, Op: x.l.Op.Flip()})
	}
	return litBool(x.b.Not())
}

func addLitToClause(c normcsp.Clause, x lit) normcsp.Clause {
	if x.isLinear {
		return c.AddLinearLit(x.l)
	}
	return c.AddBoolLit(x.b)
}

func clauseOf(b normcsp.BoolLit, xs ...lit) normcsp.Clause {
	c := normcsp.NewClause().AddBoolLit(b)
	for _, x := range xs {
		c = addLitToClause(c, x)
	}
	return c
}

func mapCmpOp(op csp.CmpOp) normcsp.CmpOp {
	switch op {
	case csp.Eq:
		return normcsp.Eq
	case csp.Ne:
		return normcsp.Ne
	case csp.Le:
		return normcsp.Le
	case csp.Lt:
		return normcsp.Lt
	case csp.Ge:
		return normcsp.Ge
	case csp.Gt:
		return normcsp.Gt
	}
	panic("normalizer: unreachable CmpOp")
}
