package normalizer

import "github.com/semiexp/cspuz-core-sub001/pkg/csp"

// constEnv holds the substitutions discovered by constant propagation: an
// original variable that a unit assertion pins to a fixed value can be
// replaced by that constant everywhere else it's referenced, which in turn
// may let constant folding collapse more of the expression tree.
type constEnv struct {
	boolConst map[csp.BoolVar]bool
	intConst  map[csp.IntVar]int32
}

func newConstEnv() *constEnv {
	return &constEnv{boolConst: map[csp.BoolVar]bool{}, intConst: map[csp.IntVar]int32{}}
}

// learn scans stmts for simple unit assertions (a bare variable, its
// negation, or an equality against a literal constant) and records them.
// It repeats a few rounds so that a fact only foldable after an earlier
// round's substitution is still picked up, without needing a full
// fixed-point solver for what is, in practice, a shallow chain.
func (env *constEnv) learn(stmts []csp.Stmt) {
	const maxRounds = 4
	for round := 0; round < maxRounds; round++ {
		changed := false
		for _, s := range stmts {
			e, ok := s.(csp.Expr)
			if !ok {
				continue
			}
			switch t := env.foldBool(e.E).(type) {
			case csp.Var:
				if _, seen := env.boolConst[csp.BoolVar(t)]; !seen {
					env.boolConst[csp.BoolVar(t)] = true
					changed = true
				}
			case csp.Not:
				if v, ok := t.X.(csp.Var); ok {
					if _, seen := env.boolConst[csp.BoolVar(v)]; !seen {
						env.boolConst[csp.BoolVar(v)] = false
						changed = true
					}
				}
			case csp.Cmp:
				if t.Op != csp.Eq {
					continue
				}
				if v, ok := t.L.(csp.IntVarExpr); ok {
					if c, ok := t.R.(csp.IntConst); ok {
						if _, seen := env.intConst[csp.IntVar(v)]; !seen {
							env.intConst[csp.IntVar(v)] = int32(c)
							changed = true
						}
					}
				} else if v, ok := t.R.(csp.IntVarExpr); ok {
					if c, ok := t.L.(csp.IntConst); ok {
						if _, seen := env.intConst[csp.IntVar(v)]; !seen {
							env.intConst[csp.IntVar(v)] = int32(c)
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}
}

func evalCmp(op csp.CmpOp, a, b int32) bool {
	switch op {
	case csp.Eq:
		return a == b
	case csp.Ne:
		return a != b
	case csp.Le:
		return a <= b
	case csp.Lt:
		return a < b
	case csp.Ge:
		return a >= b
	case csp.Gt:
		return a > b
	}
	panic("normalizer: unreachable CmpOp")
}

func (env *constEnv) foldBool(e csp.BoolExpr) csp.BoolExpr {
	switch t := e.(type) {
	case csp.BoolConst, csp.NVar:
		return t
	case csp.Var:
		if c, ok := env.boolConst[csp.BoolVar(t)]; ok {
			return csp.BoolConst(c)
		}
		return t
	case csp.Not:
		x := env.foldBool(t.X)
		if c, ok := x.(csp.BoolConst); ok {
			return csp.BoolConst(!bool(c))
		}
		return csp.Not{X: x}
	case csp.And:
		var out []csp.BoolExpr
		for _, x := range t {
			fx := env.foldBool(x)
			if c, ok := fx.(csp.BoolConst); ok {
				if !bool(c) {
					return csp.BoolConst(false)
				}
				continue
			}
			out = append(out, fx)
		}
		switch len(out) {
		case 0:
			return csp.BoolConst(true)
		case 1:
			return out[0]
		default:
			return csp.And(out)
		}
	case csp.Or:
		var out []csp.BoolExpr
		for _, x := range t {
			fx := env.foldBool(x)
			if c, ok := fx.(csp.BoolConst); ok {
				if bool(c) {
					return csp.BoolConst(true)
				}
				continue
			}
			out = append(out, fx)
		}
		switch len(out) {
		case 0:
			return csp.BoolConst(false)
		case 1:
			return out[0]
		default:
			return csp.Or(out)
		}
	case csp.Xor:
		l, r := env.foldBool(t.L), env.foldBool(t.R)
		lc, lok := l.(csp.BoolConst)
		rc, rok := r.(csp.BoolConst)
		switch {
		case lok && rok:
			return csp.BoolConst(bool(lc) != bool(rc))
		case lok:
			if bool(lc) {
				return csp.Not{X: r}
			}
			return r
		case rok:
			if bool(rc) {
				return csp.Not{X: l}
			}
			return l
		default:
			return csp.Xor{L: l, R: r}
		}
	case csp.Iff:
		l, r := env.foldBool(t.L), env.foldBool(t.R)
		lc, lok := l.(csp.BoolConst)
		rc, rok := r.(csp.BoolConst)
		switch {
		case lok && rok:
			return csp.BoolConst(bool(lc) == bool(rc))
		case lok:
			if bool(lc) {
				return r
			}
			return csp.Not{X: r}
		case rok:
			if bool(rc) {
				return l
			}
			return csp.Not{X: l}
		default:
			return csp.Iff{L: l, R: r}
		}
	case csp.Imp:
		l, r := env.foldBool(t.L), env.foldBool(t.R)
		if lc, ok := l.(csp.BoolConst); ok {
			if !bool(lc) {
				return csp.BoolConst(true)
			}
			return r
		}
		if rc, ok := r.(csp.BoolConst); ok && bool(rc) {
			return csp.BoolConst(true)
		}
		return csp.Imp{L: l, R: r}
	case csp.Cmp:
		l, r := env.foldInt(t.L), env.foldInt(t.R)
		lc, lok := l.(csp.IntConst)
		rc, rok := r.(csp.IntConst)
		if lok && rok {
			return csp.BoolConst(evalCmp(t.Op, int32(lc), int32(rc)))
		}
		return csp.Cmp{Op: t.Op, L: l, R: r}
	}
	return e
}

func (env *constEnv) foldInt(e csp.IntExpr) csp.IntExpr {
	switch t := e.(type) {
	case csp.IntConst, csp.IntNVar:
		return t
	case csp.IntVarExpr:
		if c, ok := env.intConst[csp.IntVar(t)]; ok {
			return csp.IntConst(c)
		}
		return t
	case csp.Linear:
		var constSum int32
		var out []csp.LinearTerm
		for _, term := range t {
			fx := env.foldInt(term.Expr)
			if c, ok := fx.(csp.IntConst); ok {
				constSum += int32(c) * term.Coef
				continue
			}
			out = append(out, csp.LinearTerm{Expr: fx, Coef: term.Coef})
		}
		if len(out) == 0 {
			return csp.IntConst(constSum)
		}
		if constSum != 0 {
			out = append(out, csp.LinearTerm{Expr: csp.IntConst(constSum), Coef: 1})
		}
		return csp.Linear(out)
	case csp.If:
		cond := env.foldBool(t.Cond)
		tb, fb := env.foldInt(t.T), env.foldInt(t.F)
		if c, ok := cond.(csp.BoolConst); ok {
			if bool(c) {
				return tb
			}
			return fb
		}
		return csp.If{Cond: cond, T: tb, F: fb}
	case csp.Abs:
		x := env.foldInt(t.X)
		if c, ok := x.(csp.IntConst); ok {
			v := int32(c)
			if v < 0 {
				v = -v
			}
			return csp.IntConst(v)
		}
		return csp.Abs{X: x}
	case csp.Mul:
		x, y := env.foldInt(t.X), env.foldInt(t.Y)
		xc, xok := x.(csp.IntConst)
		yc, yok := y.(csp.IntConst)
		if xok && yok {
			return csp.IntConst(int32(xc) * int32(yc))
		}
		return csp.Mul{X: x, Y: y}
	}
	return e
}

// foldStmt applies foldBool/foldInt across every expression field of s,
// preserving its shape.
func (env *constEnv) foldStmt(s csp.Stmt) csp.Stmt {
	switch t := s.(type) {
	case csp.Expr:
		return csp.Expr{E: env.foldBool(t.E)}
	case csp.AllDifferent:
		out := make([]csp.IntExpr, len(t.Exprs))
		for i, e := range t.Exprs {
			out[i] = env.foldInt(e)
		}
		return csp.AllDifferent{Exprs: out}
	case csp.Circuit:
		out := make([]csp.IntExpr, len(t.Exprs))
		for i, e := range t.Exprs {
			out[i] = env.foldInt(e)
		}
		return csp.Circuit{Exprs: out}
	case csp.ActiveVerticesConnected:
		out := make([]csp.BoolExpr, len(t.Vertices))
		for i, e := range t.Vertices {
			out[i] = env.foldBool(e)
		}
		return csp.ActiveVerticesConnected{Vertices: out, Edges: t.Edges}
	case csp.ExtensionSupports:
		out := make([]csp.IntExpr, len(t.Exprs))
		for i, e := range t.Exprs {
			out[i] = env.foldInt(e)
		}
		return csp.ExtensionSupports{Exprs: out, Supports: t.Supports}
	case csp.GraphDivision:
		sizes := make([]csp.IntExpr, len(t.Sizes))
		for i, e := range t.Sizes {
			if t.SizesSet[i] {
				sizes[i] = env.foldInt(e)
			}
		}
		lits := make([]csp.BoolExpr, len(t.EdgeLits))
		for i, e := range t.EdgeLits {
			lits[i] = env.foldBool(e)
		}
		return csp.GraphDivision{Sizes: sizes, SizesSet: t.SizesSet, Edges: t.Edges, EdgeLits: lits, Opts: t.Opts}
	case csp.CustomConstraint:
		out := make([]csp.BoolExpr, len(t.Inputs))
		for i, e := range t.Inputs {
			out[i] = env.foldBool(e)
		}
		return csp.CustomConstraint{Inputs: out, Gen: t.Gen}
	}
	return s
}
