package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
)

func TestNormalizeSimpleAssertion(t *testing.T) {
	c := csp.New()
	b := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: b.Expr()})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	require.Len(t, norm.Clauses(), 1)
	assert.Equal(t, 1, norm.Clauses()[0].NumLits())
}

func TestNormalizeCmpProducesLinearLit(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 10))
	c.AddConstraint(csp.Expr{E: csp.Gev(x.Expr(), csp.IntConst(3))})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	require.Len(t, norm.Clauses(), 1)
	cl := norm.Clauses()[0]
	require.Len(t, cl.LinearLits, 1)
	assert.Equal(t, normcsp.Ge, cl.LinearLits[0].Op)
}

func TestNormalizeAndOr(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: csp.And{a.Expr(), b.Expr()}})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	// top-level unit assertion + 2 "aux->xi" clauses + 1 "all->aux" clause
	assert.Equal(t, 4, len(norm.Clauses()))
}

func TestNormalizeConstantFoldingDropsTrivialConjunct(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: csp.And{a.Expr(), csp.BoolConst(true)}})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	// folds to a bare assertion of a, a single unit clause
	require.Len(t, norm.Clauses(), 1)
	assert.Len(t, norm.Clauses()[0].BoolLits, 1)
}

func TestNormalizeUnsatisfiableConstantAssertion(t *testing.T) {
	c := csp.New()
	c.AddConstraint(csp.Expr{E: csp.BoolConst(false)})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	require.Len(t, norm.Clauses(), 1)
	assert.True(t, norm.Clauses()[0].IsEmpty())
}

func TestNormalizeAllDifferent(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 2))
	y := c.NewIntVar(arith.NewDomainRange(0, 2))
	z := c.NewIntVar(arith.NewDomainRange(0, 2))
	c.AddConstraint(csp.AllDifferent{Exprs: []csp.IntExpr{x.Expr(), y.Expr(), z.Expr()}})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	require.Len(t, norm.AllDifferentConstraints(), 1)
	assert.Len(t, norm.AllDifferentConstraints()[0].Vars, 3)
}

func TestNormalizeDomainRefinement(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 10))
	c.AddConstraint(csp.Expr{E: csp.Gev(x.Expr(), csp.IntConst(4))})

	cfg := config.InitialDefault()
	cfg.UseNormDomainRefinement = true
	norm, err := Normalize(c, cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(4), norm.DomainOf(0).Min())
}

func TestNormalizeIfWithConstantBranchesUsesBinaryRepresentation(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	ifExpr := csp.If{Cond: a.Expr(), T: csp.IntConst(10), F: csp.IntConst(20)}
	c.AddConstraint(csp.Expr{E: csp.Gev(ifExpr, csp.IntConst(0))})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)

	// c never calls NewIntVar, so the If's aux variable is the first
	// (and only) normalized integer variable.
	info := norm.IntVarInfo(normcsp.NIntVar(0))
	repr, ok := info.Repr.(normcsp.BinaryRepresentation)
	require.True(t, ok, "expected a BinaryRepresentation, got %T", info.Repr)
	// BinaryRepresentation keeps F < T, so the aux variable takes 20 when
	// its condition (the complement of a) holds and 10 otherwise.
	assert.Equal(t, int32(20), repr.T)
	assert.Equal(t, int32(10), repr.F)
}

func TestNormalizeMulBelowThresholdUsesExtensionSupports(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 2))
	y := c.NewIntVar(arith.NewDomainRange(0, 2))
	c.AddConstraint(csp.Expr{E: csp.Gev(csp.Mul{X: x.Expr(), Y: y.Expr()}, csp.IntConst(0))})

	norm, err := Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	require.Len(t, norm.ExtensionSupportsConstraints(), 1)
}

func TestNormalizeMulAboveThresholdSplitsInsteadOfEnumerating(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 40))
	y := c.NewIntVar(arith.NewDomainRange(0, 40))
	c.AddConstraint(csp.Expr{E: csp.Gev(csp.Mul{X: x.Expr(), Y: y.Expr()}, csp.IntConst(0))})

	cfg := config.InitialDefault()
	cfg.DomainProductThreshold = 100 // 41*41 = 1681 > 100
	norm, err := Normalize(c, cfg)
	require.NoError(t, err)
	// the full cartesian table is never built; the product is reached only
	// through the recursive If/Linear split.
	assert.Empty(t, norm.ExtensionSupportsConstraints())
}

func TestNormalizeMergeEquivalentVariables(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.Expr{E: csp.Iff{L: a.Expr(), R: b.Expr()}})
	c.AddConstraint(csp.Expr{E: a.Expr()})

	cfg := config.InitialDefault()
	cfg.MergeEquivalentVariables = true
	norm, err := Normalize(c, cfg)
	require.NoError(t, err)
	// the merge pass must not crash on rewriting every clause's literals
	assert.NotEmpty(t, norm.Clauses())
}
