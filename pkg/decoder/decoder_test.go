package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/encoder"
	"github.com/semiexp/cspuz-core-sub001/pkg/normalizer"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

func compile(t *testing.T, c *csp.CSP) *encoder.Result {
	t.Helper()
	norm, err := normalizer.Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	res, err := encoder.Encode(norm, config.InitialDefault(), satbackend.NewGiniBackend())
	require.NoError(t, err)
	return res
}

func TestDecodeRoundTripsIntAndBoolVars(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 5))
	b := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: csp.Gev(x.Expr(), csp.IntConst(2))})
	c.AddConstraint(csp.Expr{E: b.Expr()})

	res := compile(t, c)
	model, ok := res.Backend.Solve()
	require.True(t, ok)

	m := Decode(c, res, model)
	assert.True(t, m.Bool(b))
	assert.GreaterOrEqual(t, m.Int(x), int32(2))
}

func TestIrrefutableFactsDetectsForcedVariable(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	bv := c.NewBoolVar()
	// a is forced true; b is free.
	c.AddConstraint(csp.Expr{E: a.Expr()})

	res := compile(t, c)
	facts, err := IrrefutableFacts(res, []csp.BoolVar{a, bv})
	require.NoError(t, err)

	forcedA, ok := facts[a]
	require.True(t, ok)
	assert.True(t, forcedA)

	_, ok = facts[bv]
	assert.False(t, ok)
}

func TestIrrefutableIntFactsDetectsForcedVariable(t *testing.T) {
	// spec.md §8 scenario S1: x in [1,5], x = 3 forces x to 3.
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(1, 5))
	y := c.NewIntVar(arith.NewDomainRange(1, 5))
	c.AddConstraint(csp.Expr{E: csp.Eqv(x.Expr(), csp.IntConst(3))})

	res := compile(t, c)
	facts, err := IrrefutableIntFacts(res, []csp.IntVar{x, y})
	require.NoError(t, err)

	forcedX, ok := facts[x]
	require.True(t, ok)
	assert.Equal(t, int32(3), forcedX)

	_, ok = facts[y]
	assert.False(t, ok)
}
