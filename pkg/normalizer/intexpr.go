package normalizer

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
)

// domainOfIntExpr computes the domain an IntExpr can take, recursively,
// without materializing an auxiliary variable for it — needed to size an
// aux variable's own domain before that variable exists.
func (nz *normalizer) domainOfIntExpr(e csp.IntExpr) arith.Domain {
	switch t := e.(type) {
	case csp.IntConst:
		return arith.NewDomainValues([]int32{int32(t)})
	case csp.IntVarExpr:
		return nz.intDomain[csp.IntVar(t)]
	case csp.IntNVar:
		return nz.norm.IntVarInfo(normcsp.NIntVar(t)).Domain()
	case csp.Linear:
		dom := arith.NewDomainValues([]int32{0})
		for _, term := range t {
			dom = dom.Add(nz.domainOfIntExpr(term.Expr).MulConst(term.Coef))
		}
		return dom
	case csp.If:
		return nz.domainOfIntExpr(t.T).Union(nz.domainOfIntExpr(t.F))
	case csp.Abs:
		return nz.domainOfIntExpr(t.X).Abs()
	case csp.Mul:
		return nz.domainOfIntExpr(t.X).Mul(nz.domainOfIntExpr(t.Y))
	}
	panic("normalizer: unknown IntExpr")
}

// linearOf builds a LinearSum for e without allocating an auxiliary
// variable when e is already linear in the normalized variables; non-linear
// shapes (If/Abs/Mul) fall back to normalizeInt, which does allocate one.
func (nz *normalizer) linearOf(e csp.IntExpr) *normcsp.LinearSum {
	switch t := e.(type) {
	case csp.IntConst:
		return normcsp.ConstSum(int32(t))
	case csp.IntVarExpr:
		return normcsp.SingleVar(nz.intVars[csp.IntVar(t)])
	case csp.IntNVar:
		return normcsp.SingleVar(normcsp.NIntVar(t))
	case csp.Linear:
		sum := normcsp.NewLinearSum()
		for _, term := range t {
			sum = sum.Add(nz.linearOf(term.Expr).ScalarMul(term.Coef))
		}
		return sum
	default:
		return normcsp.SingleVar(nz.normalizeInt(e))
	}
}

// normalizeInt materializes e as a concrete normalized integer variable,
// memoized by its pretty-printed form so repeated subexpressions (e.g. a
// shared `(abs (- x y))` used in two constraints) reuse one variable and
// one set of defining clauses instead of duplicating both.
func (nz *normalizer) normalizeInt(e csp.IntExpr) normcsp.NIntVar {
	switch t := e.(type) {
	case csp.IntVarExpr:
		return nz.intVars[csp.IntVar(t)]
	case csp.IntNVar:
		return normcsp.NIntVar(t)
	}

	key := e.String()
	if v, ok := nz.intMemo[key]; ok {
		return v
	}

	var v normcsp.NIntVar
	switch t := e.(type) {
	case csp.IntConst:
		v = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: arith.NewDomainValues([]int32{int32(t)})})
	case csp.Linear:
		dom := nz.domainOfIntExpr(t)
		v = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: dom})
		diff := normcsp.SingleVar(v).Sub(nz.linearOf(t))
		nz.norm.AddClause(normcsp.NewClause().AddLinearLit(normcsp.LinearLit{Sum: diff, Op: normcsp.Eq}))
	case csp.If:
		tConst, tIsConst := t.T.(csp.IntConst)
		fConst, fIsConst := t.F.(csp.IntConst)
		if tIsConst && fIsConst && int32(tConst) != int32(fConst) {
			// Both branches are constants: a BinaryRepresentation variable
			// reuses the condition's own literal (or its complement) as its
			// defining clause, instead of hoisting into a full
			// DomainRepresentation with two guarded equality clauses.
			v = nz.binaryIntVar(t.Cond, int32(tConst), int32(fConst))
			break
		}

		dom := nz.domainOfIntExpr(t.T).Union(nz.domainOfIntExpr(t.F))
		v = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: dom})
		cond := nz.normalizeBool(t.Cond)
		tVal, fVal := nz.linearOf(t.T), nz.linearOf(t.F)

		c1 := addLitToClause(normcsp.NewClause(), cond.not())
		c1 = c1.AddLinearLit(normcsp.LinearLit{Sum: normcsp.SingleVar(v).Sub(tVal), Op: normcsp.Eq})
		nz.norm.AddClause(c1)

		c2 := addLitToClause(normcsp.NewClause(), cond)
		c2 = c2.AddLinearLit(normcsp.LinearLit{Sum: normcsp.SingleVar(v).Sub(fVal), Op: normcsp.Eq})
		nz.norm.AddClause(c2)
	case csp.Abs:
		dom := nz.domainOfIntExpr(t.X).Abs()
		v = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: dom})
		xVal := nz.linearOf(t.X)
		// v's domain only contains non-negative values, so of the two
		// branches below the encoder can only ever satisfy the one
		// matching x's actual sign.
		cl := normcsp.NewClause().
			AddLinearLit(normcsp.LinearLit{Sum: normcsp.SingleVar(v).Sub(xVal), Op: normcsp.Eq}).
			AddLinearLit(normcsp.LinearLit{Sum: normcsp.SingleVar(v).Add(xVal), Op: normcsp.Eq})
		nz.norm.AddClause(cl)
	case csp.Mul:
		xDom := nz.domainOfIntExpr(t.X)
		yDom := nz.domainOfIntExpr(t.Y)
		if yDom.Size() > 1 && xDom.Size()*yDom.Size() > nz.cfg.DomainProductThreshold {
			// The full support table below has one row per (x value, y
			// value) pair; past the configured threshold that is too many
			// clauses to spell out directly (spec.md §4.3.3's inline-vs-hoist
			// decision), so split y's domain in half recursively instead,
			// selecting between the two halves' partial products with a
			// plain If. Each split level costs O(1) auxiliary variables
			// rather than multiplying the row count, at the cost of one
			// extra indirection per recursion level (O(log(|yDom|))).
			v = nz.mulByCaseSplit(t.X, t.Y, yDom.Enumerate())
			break
		}

		dom := xDom.Mul(yDom)
		v = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: dom})
		xv := nz.normalizeInt(t.X)
		yv := nz.normalizeInt(t.Y)
		var rows [][]*int32
		for _, a := range xDom.Enumerate() {
			for _, b := range yDom.Enumerate() {
				a, b := a, b
				c := a * b
				rows = append(rows, []*int32{&a, &b, &c})
			}
		}
		nz.norm.AddExtensionSupports(normcsp.ExtensionSupportsConstraint{
			Vars:     []normcsp.NIntVar{xv, yv, v},
			Supports: rows,
		})
	default:
		panic("normalizer: unknown IntExpr")
	}

	nz.intMemo[key] = v
	return v
}

// mulByCaseSplit materializes x*y for y ranging over yVals, without ever
// enumerating the full x-values-by-y-values product: it halves yVals until a
// single value remains (where x*y is just a linear scaling of x) and
// recombines the two halves' partial products with an If gated on which
// half y's actual value falls in — yVals is sorted ascending (an
// arith.Domain's Enumerate), so that gate is a single "y <= yVals[mid-1]"
// comparison rather than a disjunction over one half's values.
func (nz *normalizer) mulByCaseSplit(xExpr, yExpr csp.IntExpr, yVals []int32) normcsp.NIntVar {
	if len(yVals) == 1 {
		return nz.normalizeInt(csp.Linear{{Expr: xExpr, Coef: yVals[0]}})
	}
	mid := len(yVals) / 2
	lowVals, highVals := yVals[:mid], yVals[mid:]
	lowVar := nz.mulByCaseSplit(xExpr, yExpr, lowVals)
	highVar := nz.mulByCaseSplit(xExpr, yExpr, highVals)
	cond := csp.Lev(yExpr, csp.IntConst(lowVals[len(lowVals)-1]))
	return nz.normalizeInt(csp.If{Cond: cond, T: csp.IntNVar(lowVar), F: csp.IntNVar(highVar)})
}

// binaryIntVar materializes an If whose branches are the two distinct
// constants tConst/fConst as a BinaryRepresentation variable, reusing cond's
// own reified literal (negated if needed, or a fresh complement variable
// bound to it with two clauses if its existing polarity can't satisfy
// BinaryRepresentation's F < T invariant directly).
func (nz *normalizer) binaryIntVar(cond csp.BoolExpr, tConst, fConst int32) normcsp.NIntVar {
	coLit := nz.reify(nz.normalizeBool(cond))

	lo, hi := fConst, tConst
	hiSelectedByCondTrue := true
	if fConst > tConst {
		lo, hi = tConst, fConst
		hiSelectedByCondTrue = false
	}

	condVar := coLit.Var
	if coLit.Negated == hiSelectedByCondTrue {
		condVar = nz.complementVar(coLit)
	}
	return nz.norm.NewIntVar(normcsp.BinaryRepresentation{Cond: condVar, F: lo, T: hi})
}

// complementVar returns a fresh NBoolVar bound to the negation of l by two
// clauses, for the rare case binaryIntVar can't reuse l's own variable
// directly.
func (nz *normalizer) complementVar(l normcsp.BoolLit) normcsp.NBoolVar {
	b := nz.norm.NewBoolVar()
	bv := normcsp.Lit(b)
	nz.norm.AddClause(clauseOf(bv.Not(), litBool(l.Not())))
	nz.norm.AddClause(clauseOf(bv, litBool(l)))
	return b
}
