package normalizer

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
)

// normalizeBool Tseitin-transforms e into an equisatisfiable literal. Not
// nodes and already-linear Cmp nodes never allocate a variable; And/Or/Xor/Iff
// each allocate one auxiliary variable biconditional to their subexpression.
func (nz *normalizer) normalizeBool(e csp.BoolExpr) lit {
	switch t := e.(type) {
	case csp.BoolConst:
		return litBool(nz.constBoolLit(bool(t)))
	case csp.Var:
		return litBool(normcsp.Lit(nz.boolVars[csp.BoolVar(t)]))
	case csp.NVar:
		return litBool(normcsp.Lit(normcsp.NBoolVar(t)))
	case csp.Not:
		return nz.normalizeBool(t.X).not()
	case csp.And:
		return nz.normalizeAnd([]csp.BoolExpr(t))
	case csp.Or:
		return nz.normalizeOr([]csp.BoolExpr(t))
	case csp.Xor:
		return nz.normalizeXor(t.L, t.R)
	case csp.Iff:
		return nz.normalizeIff(t.L, t.R)
	case csp.Imp:
		return nz.normalizeOr([]csp.BoolExpr{csp.Not{X: t.L}, t.R})
	case csp.Cmp:
		sum := nz.linearOf(t.L).Sub(nz.linearOf(t.R))
		return litLinear(normcsp.LinearLit{Sum: sum, Op: mapCmpOp(t.Op)})
	}
	panic("normalizer: unknown BoolExpr")
}

// constBoolLit returns a literal fixed to b, backed by one auxiliary
// variable asserted true and shared for every constant sighting.
func (nz *normalizer) constBoolLit(b bool) normcsp.BoolLit {
	if nz.trueVar == nil {
		v := nz.norm.NewBoolVar()
		nz.norm.AddClause(normcsp.NewClause().AddBoolLit(normcsp.Lit(v)))
		nz.trueVar = &v
	}
	l := normcsp.Lit(*nz.trueVar)
	if !b {
		return l.Not()
	}
	return l
}

// reify forces x into a genuine Boolean variable, allocating one with a
// defining biconditional clause pair if x is a linear literal. Structural
// constraint slots (ActiveVerticesConnected.Active, GraphDivision.EdgeLits,
// CustomConstraint.Inputs) need an actual variable to attach to, not just a
// disjunct.
func (nz *normalizer) reify(x lit) normcsp.BoolLit {
	if !x.isLinear {
		return x.b
	}
	a := nz.norm.NewBoolVar()
	av := normcsp.Lit(a)
	nz.norm.AddClause(normcsp.NewClause().AddBoolLit(av.Not()).AddLinearLit(x.l))
	nz.norm.AddClause(normcsp.NewClause().AddBoolLit(av).AddLinearLit(normcsp.LinearLit{Sum: x.l.Sum, Op: x.l.Op.Flip()}))
	return av
}

func (nz *normalizer) normalizeAnd(xs []csp.BoolExpr) lit {
	lits := make([]lit, len(xs))
	for i, x := range xs {
		lits[i] = nz.normalizeBool(x)
	}
	a := nz.norm.NewBoolVar()
	av := normcsp.Lit(a)

	allNeg := normcsp.NewClause().AddBoolLit(av)
	for _, l := range lits {
		nz.norm.AddClause(addLitToClause(normcsp.NewClause().AddBoolLit(av.Not()), l))
		allNeg = addLitToClause(allNeg, l.not())
	}
	nz.norm.AddClause(allNeg)
	return litBool(av)
}

func (nz *normalizer) normalizeOr(xs []csp.BoolExpr) lit {
	lits := make([]lit, len(xs))
	for i, x := range xs {
		lits[i] = nz.normalizeBool(x)
	}
	a := nz.norm.NewBoolVar()
	av := normcsp.Lit(a)

	aImpliesOr := normcsp.NewClause().AddBoolLit(av.Not())
	for _, l := range lits {
		aImpliesOr = addLitToClause(aImpliesOr, l)
		nz.norm.AddClause(addLitToClause(normcsp.NewClause().AddBoolLit(av), l.not()))
	}
	nz.norm.AddClause(aImpliesOr)
	return litBool(av)
}

func (nz *normalizer) normalizeXor(L, R csp.BoolExpr) lit {
	ll := nz.normalizeBool(L)
	rl := nz.normalizeBool(R)
	a := nz.norm.NewBoolVar()
	av := normcsp.Lit(a)

	nz.norm.AddClause(clauseOf(av.Not(), ll, rl))
	nz.norm.AddClause(clauseOf(av.Not(), ll.not(), rl.not()))
	nz.norm.AddClause(clauseOf(av, ll, rl.not()))
	nz.norm.AddClause(clauseOf(av, ll.not(), rl))
	return litBool(av)
}

func (nz *normalizer) normalizeIff(L, R csp.BoolExpr) lit {
	ll := nz.normalizeBool(L)
	rl := nz.normalizeBool(R)
	a := nz.norm.NewBoolVar()
	av := normcsp.Lit(a)

	nz.norm.AddClause(clauseOf(av.Not(), ll.not(), rl))
	nz.norm.AddClause(clauseOf(av.Not(), ll, rl.not()))
	nz.norm.AddClause(clauseOf(av, ll, rl))
	nz.norm.AddClause(clauseOf(av, ll.not(), rl.not()))

	if nz.cfg.MergeEquivalentVariables && !ll.isLinear && !rl.isLinear {
		nz.uf.grow(nz.norm.NumBoolVars())
		nz.uf.union(ll.b.Var, rl.b.Var, ll.b.Negated != rl.b.Negated)
	}
	return litBool(av)
}
