// Package csp holds the original-problem representation: opaque Boolean and
// integer variable handles, the algebraic BoolExpr/IntExpr trees built from
// them, the Stmt statement ADT, and the CSP store that owns variable domains
// and accumulated statements. This is the input to the normalizer.
package csp

// BoolVar is an opaque, append-only index into a CSP's Boolean variable
// table.
type BoolVar int

// Expr wraps v as a BoolExpr reference.
func (v BoolVar) Expr() BoolExpr { return Var(v) }

// IntVar is an opaque, append-only index into a CSP's integer variable
// table.
type IntVar int

// Expr wraps v as an IntExpr reference.
func (v IntVar) Expr() IntExpr { return IntVarExpr(v) }
