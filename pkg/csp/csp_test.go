package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
)

func TestCSPStoreTracksVariableCounts(t *testing.T) {
	c := New()
	b := c.NewBoolVar()
	x := c.NewIntVar(arith.NewDomainRange(0, 3))

	assert.Equal(t, 1, c.NumBoolVars())
	assert.Equal(t, 1, c.NumIntVars())
	assert.Equal(t, BoolVar(0), b)
	assert.Equal(t, IntVar(0), x)
	assert.Equal(t, arith.NewDomainRange(0, 3), c.DomainOf(x))
}

func TestCSPStoreAccumulatesStmts(t *testing.T) {
	c := New()
	b := c.NewBoolVar()
	c.AddConstraint(Expr{E: b.Expr()})
	require.Len(t, c.Stmts(), 1)
	assert.Equal(t, "<b0>", c.Stmts()[0].String())
}

func TestCmpOpFlipIsInvolution(t *testing.T) {
	for _, op := range []CmpOp{Eq, Ne, Le, Lt, Ge, Gt} {
		assert.Equal(t, op, op.Flip().Flip())
	}
}

func TestExprPrettyPrint(t *testing.T) {
	x := IntConst(3)
	y := IntConst(4)
	e := Cmp{Op: Ge, L: x, R: y}
	assert.Equal(t, "(>= 3 4)", e.String())
}

func TestValidateAcceptsWellFormedStmts(t *testing.T) {
	c := New()
	b := c.NewBoolVar()
	x := c.NewIntVar(arith.NewDomainRange(0, 3))
	c.AddConstraint(Expr{E: b.Expr()})
	c.AddConstraint(AllDifferent{Exprs: []IntExpr{x.Expr(), IntConst(1)}})

	assert.NoError(t, c.Validate())
}

func TestValidateRejectsUnregisteredBoolVar(t *testing.T) {
	c := New()
	c.NewBoolVar()
	c.AddConstraint(Expr{E: BoolVar(5).Expr()})

	err := c.Validate()
	require.Error(t, err)
	var uv *UnregisteredVarError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "BoolVar", uv.Kind)
	assert.Equal(t, 5, uv.Index)
}

func TestValidateRejectsUnregisteredIntVarNestedInExpr(t *testing.T) {
	c := New()
	x := c.NewIntVar(arith.NewDomainRange(0, 3))
	stray := IntVar(7)
	c.AddConstraint(Expr{E: Gev(Linear{{Expr: x.Expr(), Coef: 1}, {Expr: stray.Expr(), Coef: 1}}, IntConst(0))})

	err := c.Validate()
	require.Error(t, err)
	var uv *UnregisteredVarError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "IntVar", uv.Kind)
	assert.Equal(t, 7, uv.Index)
}
