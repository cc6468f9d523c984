package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
)

func TestSolveFindsSatisfyingModel(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 5))
	c.AddConstraint(csp.Expr{E: csp.Gev(x.Expr(), csp.IntConst(4))})

	model, ok, err := Solve(c, config.InitialDefault())
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, model.Int(x), int32(4))
}

func TestSolveReportsUnsatisfiable(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 1))
	y := c.NewIntVar(arith.NewDomainRange(0, 1))
	z := c.NewIntVar(arith.NewDomainRange(0, 1))
	c.AddConstraint(csp.AllDifferent{Exprs: []csp.IntExpr{x.Expr(), y.Expr(), z.Expr()}})

	_, ok, err := Solve(c, config.InitialDefault())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIrrefutableFactsEntryPoint(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: a.Expr()})

	facts, err := IrrefutableFacts(c, config.InitialDefault(), []csp.BoolVar{a, b})
	require.NoError(t, err)
	assert.Equal(t, true, facts[a])
	_, ok := facts[b]
	assert.False(t, ok)
}

func TestSolveRejectsUnregisteredVarReference(t *testing.T) {
	c := csp.New()
	stray := csp.BoolVar(3)
	c.AddConstraint(csp.Expr{E: stray.Expr()})

	_, _, err := Solve(c, config.InitialDefault())
	require.Error(t, err)
	var uv *csp.UnregisteredVarError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "BoolVar", uv.Kind)
}

func TestIrrefutableIntFactsEntryPoint(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(1, 5))
	y := c.NewIntVar(arith.NewDomainRange(1, 5))
	c.AddConstraint(csp.Expr{E: csp.Eqv(x.Expr(), csp.IntConst(3))})

	facts, err := IrrefutableIntFacts(c, config.InitialDefault(), []csp.IntVar{x, y})
	require.NoError(t, err)
	assert.Equal(t, int32(3), facts[x])
	_, ok := facts[y]
	assert.False(t, ok)
}
