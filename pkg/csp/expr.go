package csp

import (
	"fmt"
	"io"
	"strings"
)

// CmpOp is one of the six comparison operators an IntExpr pair can be
// combined with to produce a BoolExpr.
type CmpOp int

const (
	Eq CmpOp = iota
	Ne
	Le
	Lt
	Ge
	Gt
)

// Flip returns the operator produced by negating a comparison: Eq<->Ne,
// Le<->Gt, Lt<->Ge. Used by tseitin(Cmp, negated=true) and by clause
// simplification.
func (op CmpOp) Flip() CmpOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Le:
		return Gt
	case Gt:
		return Le
	case Lt:
		return Ge
	case Ge:
		return Lt
	}
	panic("unreachable CmpOp")
}

func (op CmpOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Le:
		return "<="
	case Lt:
		return "<"
	case Ge:
		return ">="
	case Gt:
		return ">"
	}
	return "?"
}

// NormBoolVar is a forward-reference index into a normalized CSP's Boolean
// variable table. It exists so BoolExpr can carry a post-normalization
// reference (BoolExpr.NVar) without pkg/csp importing pkg/normcsp.
type NormBoolVar int

// NormIntVar is the integer-variable analogue of NormBoolVar.
type NormIntVar int

// BoolExpr is the algebraic Boolean expression tree. It is a closed set of
// variants (Const, Var, NVar, And, Or, Not, Xor, Iff, Imp, Cmp); callers
// switch on the concrete type, never implement the interface themselves.
type BoolExpr interface {
	isBoolExpr()
	PrettyPrint(w io.Writer) error
	String() string
}

type BoolConst bool

func (BoolConst) isBoolExpr() {}
func (b BoolConst) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "%t", bool(b)); return err }
func (b BoolConst) String() string                { return fmt.Sprintf("%t", bool(b)) }

// Var references an original Boolean variable.
type Var BoolVar

func (Var) isBoolExpr() {}
func (v Var) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "<b%d>", int(v)); return err }
func (v Var) String() string                { return fmt.Sprintf("<b%d>", int(v)) }

// NVar references an already-normalized Boolean variable; only produced and
// consumed internally by the normalizer while rewriting a Stmt tree.
type NVar NormBoolVar

func (NVar) isBoolExpr() {}
func (v NVar) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "<nb%d>", int(v)); return err }
func (v NVar) String() string                { return fmt.Sprintf("<nb%d>", int(v)) }

type And []BoolExpr

func (And) isBoolExpr() {}
func (e And) PrettyPrint(w io.Writer) error { return prettyPrintList(w, "&&", exprsOf(e)) }
func (e And) String() string                { return stringOfPrint(e) }

type Or []BoolExpr

func (Or) isBoolExpr() {}
func (e Or) PrettyPrint(w io.Writer) error { return prettyPrintList(w, "||", exprsOf(e)) }
func (e Or) String() string                { return stringOfPrint(e) }

type Not struct{ X BoolExpr }

func (Not) isBoolExpr() {}
func (e Not) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(! "); err != nil {
		return err
	}
	if err := e.X.PrettyPrint(w); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e Not) String() string { return stringOfPrint(e) }

type Xor struct{ L, R BoolExpr }

func (Xor) isBoolExpr() {}
func (e Xor) PrettyPrint(w io.Writer) error { return prettyPrintBin(w, "xor", e.L, e.R) }
func (e Xor) String() string                { return stringOfPrint(e) }

type Iff struct{ L, R BoolExpr }

func (Iff) isBoolExpr() {}
func (e Iff) PrettyPrint(w io.Writer) error { return prettyPrintBin(w, "iff", e.L, e.R) }
func (e Iff) String() string                { return stringOfPrint(e) }

type Imp struct{ L, R BoolExpr }

func (Imp) isBoolExpr() {}
func (e Imp) PrettyPrint(w io.Writer) error { return prettyPrintBin(w, "=>", e.L, e.R) }
func (e Imp) String() string                { return stringOfPrint(e) }

type Cmp struct {
	Op   CmpOp
	L, R IntExpr
}

func (Cmp) isBoolExpr() {}
func (e Cmp) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "(%s ", e.Op); err != nil {
		return err
	}
	if err := e.L.PrettyPrint(w); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, " "); err != nil {
		return err
	}
	if err := e.R.PrettyPrint(w); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e Cmp) String() string { return stringOfPrint(e) }

// IntExpr is the algebraic integer expression tree.
type IntExpr interface {
	isIntExpr()
	PrettyPrint(w io.Writer) error
	String() string
}

type IntConst int32

func (IntConst) isIntExpr() {}
func (c IntConst) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "%d", int32(c)); return err }
func (c IntConst) String() string                { return fmt.Sprintf("%d", int32(c)) }

// IntVarExpr references an original integer variable. Named to avoid
// colliding with the IntVar index type.
type IntVarExpr IntVar

func (IntVarExpr) isIntExpr() {}
func (v IntVarExpr) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "<i%d>", int(v)); return err }
func (v IntVarExpr) String() string                { return fmt.Sprintf("<i%d>", int(v)) }

// IntNVar references an already-normalized integer variable.
type IntNVar NormIntVar

func (IntNVar) isIntExpr() {}
func (v IntNVar) PrettyPrint(w io.Writer) error { _, err := fmt.Fprintf(w, "<ni%d>", int(v)); return err }
func (v IntNVar) String() string                { return fmt.Sprintf("<ni%d>", int(v)) }

// LinearTerm pairs a sub-expression with the integer coefficient it is
// multiplied by inside a Linear node.
type LinearTerm struct {
	Expr IntExpr
	Coef int32
}

// Linear is a sum of coefficient-weighted sub-expressions, e.g. the result
// of `a + b` or `a - b` or `a * k`.
type Linear []LinearTerm

func (Linear) isIntExpr() {}
func (e Linear) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "("); err != nil {
		return err
	}
	for i, t := range e {
		if i != 0 {
			if _, err := fmt.Fprint(w, "+"); err != nil {
				return err
			}
		}
		if err := t.Expr.PrettyPrint(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "*%d", t.Coef); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e Linear) String() string { return stringOfPrint(e) }

type If struct {
	Cond    BoolExpr
	T, F    IntExpr
}

func (If) isIntExpr() {}
func (e If) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(if "); err != nil {
		return err
	}
	for _, p := range []interface{ PrettyPrint(io.Writer) error }{e.Cond, e.T, e.F} {
		if err := p.PrettyPrint(w); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, " "); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e If) String() string { return stringOfPrint(e) }

type Abs struct{ X IntExpr }

func (Abs) isIntExpr() {}
func (e Abs) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(abs "); err != nil {
		return err
	}
	if err := e.X.PrettyPrint(w); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e Abs) String() string { return stringOfPrint(e) }

type Mul struct{ X, Y IntExpr }

func (Mul) isIntExpr() {}
func (e Mul) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(mul "); err != nil {
		return err
	}
	if err := e.X.PrettyPrint(w); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, " "); err != nil {
		return err
	}
	if err := e.Y.PrettyPrint(w); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (e Mul) String() string { return stringOfPrint(e) }

// --- constructors mirroring the operator overloads of the Rust source ---

func Eqv(l, r IntExpr) BoolExpr { return Cmp{Op: Eq, L: l, R: r} }
func Nev(l, r IntExpr) BoolExpr { return Cmp{Op: Ne, L: l, R: r} }
func Lev(l, r IntExpr) BoolExpr { return Cmp{Op: Le, L: l, R: r} }
func Ltv(l, r IntExpr) BoolExpr { return Cmp{Op: Lt, L: l, R: r} }
func Gev(l, r IntExpr) BoolExpr { return Cmp{Op: Ge, L: l, R: r} }
func Gtv(l, r IntExpr) BoolExpr { return Cmp{Op: Gt, L: l, R: r} }

func AddExpr(l, r IntExpr) IntExpr {
	return Linear{{Expr: l, Coef: 1}, {Expr: r, Coef: 1}}
}

func SubExpr(l, r IntExpr) IntExpr {
	return Linear{{Expr: l, Coef: 1}, {Expr: r, Coef: -1}}
}

func ScaleExpr(x IntExpr, k int32) IntExpr {
	return Linear{{Expr: x, Coef: k}}
}

func Ite(cond BoolExpr, t, f IntExpr) IntExpr { return If{Cond: cond, T: t, F: f} }

// --- helpers ---

func exprsOf[T ~[]BoolExpr](e T) []BoolExpr { return []BoolExpr(e) }

func prettyPrintList(w io.Writer, op string, exprs []BoolExpr) error {
	if _, err := fmt.Fprintf(w, "(%s", op); err != nil {
		return err
	}
	for _, e := range exprs {
		if _, err := fmt.Fprint(w, " "); err != nil {
			return err
		}
		if err := e.PrettyPrint(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

func prettyPrintBin(w io.Writer, op string, l, r BoolExpr) error {
	if _, err := fmt.Fprintf(w, "(%s ", op); err != nil {
		return err
	}
	if err := l.PrettyPrint(w); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, " "); err != nil {
		return err
	}
	if err := r.PrettyPrint(w); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

func stringOfPrint(p interface{ PrettyPrint(io.Writer) error }) string {
	var sb strings.Builder
	_ = p.PrettyPrint(&sb)
	return sb.String()
}
