package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normalizer"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

func TestEncodeSimpleComparison(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 5))
	c.AddConstraint(csp.Expr{E: csp.Gev(x.Expr(), csp.IntConst(3))})

	norm, err := normalizer.Normalize(c, config.InitialDefault())
	require.NoError(t, err)

	res, err := Encode(norm, config.InitialDefault(), satbackend.NewGiniBackend())
	require.NoError(t, err)

	model, ok := res.Backend.Solve()
	require.True(t, ok)
	assert.GreaterOrEqual(t, res.DecodeInt(model, 0), int32(3))
}

func TestEncodeAllDifferentFindsSolution(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 1))
	y := c.NewIntVar(arith.NewDomainRange(0, 1))
	c.AddConstraint(csp.AllDifferent{Exprs: []csp.IntExpr{x.Expr(), y.Expr()}})

	norm, err := normalizer.Normalize(c, config.InitialDefault())
	require.NoError(t, err)

	res, err := Encode(norm, config.InitialDefault(), satbackend.NewGiniBackend())
	require.NoError(t, err)

	model, ok := res.Backend.Solve()
	require.True(t, ok)
	assert.NotEqual(t, res.DecodeInt(model, 0), res.DecodeInt(model, 1))
}

func TestEncodeAllDifferentOverTwoValuesWithThreeVarsUnsat(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 1))
	y := c.NewIntVar(arith.NewDomainRange(0, 1))
	z := c.NewIntVar(arith.NewDomainRange(0, 1))
	c.AddConstraint(csp.AllDifferent{Exprs: []csp.IntExpr{x.Expr(), y.Expr(), z.Expr()}})

	norm, err := normalizer.Normalize(c, config.InitialDefault())
	require.NoError(t, err)

	res, err := Encode(norm, config.InitialDefault(), satbackend.NewGiniBackend())
	require.NoError(t, err)

	_, ok := res.Backend.Solve()
	assert.False(t, ok)
}

// compileCSP normalizes and encodes c the same way TestEncode* above does,
// as a shared helper for the structural-constraint tests below.
func compileCSP(t *testing.T, c *csp.CSP) *Result {
	t.Helper()
	norm, err := normalizer.Normalize(c, config.InitialDefault())
	require.NoError(t, err)
	res, err := Encode(norm, config.InitialDefault(), satbackend.NewGiniBackend())
	require.NoError(t, err)
	return res
}

// solveWithLazy mirrors pkg/decoder's search loop: resolve until either no
// entry of res.Lazy objects to the model, or the backend itself reports
// unsatisfiable. Structural constraints like Circuit and GraphDivision have
// no CNF encoding of their own invariant, so a plain res.Backend.Solve()
// call is not enough to exercise them.
func solveWithLazy(res *Result) (satbackend.Model, bool) {
	for {
		model, ok := res.Backend.Solve()
		if !ok {
			return nil, false
		}
		violated := false
		for _, lz := range res.Lazy {
			if bad, blocking := lz.Check(model); bad {
				violated = true
				res.Backend.AddClause(blocking)
			}
		}
		if !violated {
			return model, true
		}
	}
}

func TestEncodeCircuitFindsHamiltonianCycleOverThreeVertices(t *testing.T) {
	c := csp.New()
	vars := make([]csp.IntVar, 3)
	exprs := make([]csp.IntExpr, 3)
	for i := range vars {
		vars[i] = c.NewIntVar(arith.NewDomainRange(0, 2))
		exprs[i] = vars[i].Expr()
	}
	c.AddConstraint(csp.Circuit{Exprs: exprs})

	res := compileCSP(t, c)
	model, ok := solveWithLazy(res)
	require.True(t, ok)

	succ := make([]int32, 3)
	for i, v := range vars {
		succ[i] = res.DecodeInt(model, normcsp.NIntVar(v))
	}
	visited := make([]bool, 3)
	cur, count := int32(0), 0
	for !visited[cur] {
		visited[cur] = true
		count++
		cur = succ[cur]
	}
	assert.Equal(t, 3, count)
}

func TestEncodeCircuitRejectsForcedSubtourSplit(t *testing.T) {
	// Four vertices with successor[0] forced to 1 and successor[1] forced to
	// 0: the only permutation consistent with that is two 2-cycles
	// (0<->1, 2<->3), which circuitLazy must reject, and nothing else
	// satisfies both the forced edges and all-different, so this is UNSAT.
	c := csp.New()
	vars := make([]csp.IntVar, 4)
	exprs := make([]csp.IntExpr, 4)
	for i := range vars {
		vars[i] = c.NewIntVar(arith.NewDomainRange(0, 3))
		exprs[i] = vars[i].Expr()
	}
	c.AddConstraint(csp.Circuit{Exprs: exprs})
	c.AddConstraint(csp.Expr{E: csp.Eqv(vars[0].Expr(), csp.IntConst(1))})
	c.AddConstraint(csp.Expr{E: csp.Eqv(vars[1].Expr(), csp.IntConst(0))})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.False(t, ok)
}

func TestEncodeActiveVerticesConnectedAcceptsConnectedPair(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.ActiveVerticesConnected{
		Vertices: []csp.BoolExpr{a.Expr(), b.Expr()},
		Edges:    []csp.Edge{{U: 0, V: 1}},
	})
	c.AddConstraint(csp.Expr{E: a.Expr()})
	c.AddConstraint(csp.Expr{E: b.Expr()})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.True(t, ok)
}

func TestEncodeActiveVerticesConnectedRejectsForcedDisconnectedPair(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.ActiveVerticesConnected{
		Vertices: []csp.BoolExpr{a.Expr(), b.Expr()},
		Edges:    nil, // no edge: two active vertices can never be connected
	})
	c.AddConstraint(csp.Expr{E: a.Expr()})
	c.AddConstraint(csp.Expr{E: b.Expr()})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.False(t, ok)
}

func TestEncodeGraphDivisionFindsSizeConsistentPartition(t *testing.T) {
	c := csp.New()
	e := c.NewBoolVar()
	c.AddConstraint(csp.GraphDivision{
		Sizes:    []csp.IntExpr{csp.IntConst(2), csp.IntConst(2)},
		SizesSet: []bool{true, true},
		Edges:    []csp.Edge{{U: 0, V: 1}},
		EdgeLits: []csp.BoolExpr{e.Expr()},
	})

	res := compileCSP(t, c)
	model, ok := solveWithLazy(res)
	require.True(t, ok)
	// the only partition where both clued vertices see a region of size 2
	// is the single-region one, i.e. the edge must be on.
	assert.True(t, res.DecodeBool(model, normcsp.NBoolVar(0)))
}

func TestEncodeGraphDivisionRejectsUnsatisfiableSizeClues(t *testing.T) {
	c := csp.New()
	e := c.NewBoolVar()
	c.AddConstraint(csp.GraphDivision{
		Sizes:    []csp.IntExpr{csp.IntConst(1), csp.IntConst(2)},
		SizesSet: []bool{true, true},
		Edges:    []csp.Edge{{U: 0, V: 1}},
		EdgeLits: []csp.BoolExpr{e.Expr()},
	})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.False(t, ok)
}

func TestEncodeExtensionSupportsFindsMatchingRow(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 2))
	y := c.NewIntVar(arith.NewDomainRange(0, 2))
	rows := [][]*int32{
		{int32Ptr(0), int32Ptr(0)},
		{int32Ptr(1), int32Ptr(1)},
		{int32Ptr(2), int32Ptr(2)},
	}
	c.AddConstraint(csp.ExtensionSupports{Exprs: []csp.IntExpr{x.Expr(), y.Expr()}, Supports: rows})

	res := compileCSP(t, c)
	model, ok := res.Backend.Solve()
	require.True(t, ok)
	assert.Equal(t, res.DecodeInt(model, normcsp.NIntVar(x)), res.DecodeInt(model, normcsp.NIntVar(y)))
}

func TestEncodeExtensionSupportsRejectsRowMismatch(t *testing.T) {
	c := csp.New()
	x := c.NewIntVar(arith.NewDomainRange(0, 1))
	y := c.NewIntVar(arith.NewDomainRange(0, 1))
	rows := [][]*int32{{int32Ptr(0), int32Ptr(0)}}
	c.AddConstraint(csp.ExtensionSupports{Exprs: []csp.IntExpr{x.Expr(), y.Expr()}, Supports: rows})
	c.AddConstraint(csp.Expr{E: csp.Eqv(x.Expr(), csp.IntConst(1))})

	res := compileCSP(t, c)
	_, ok := res.Backend.Solve()
	assert.False(t, ok)
}

func int32Ptr(v int32) *int32 { return &v }

// atMostOneTestPropagator rejects any model where more than one of its
// inputs is true, the same minimal propagator pkg/propagators' own tests
// use, reimplemented here since that type is unexported.
type atMostOneTestPropagator struct {
	seenTrue []satbackend.Lit
}

func (p *atMostOneTestPropagator) Initialize(satbackend.PropagatorHost) bool { return true }

func (p *atMostOneTestPropagator) Propagate(host satbackend.PropagatorHost, lit satbackend.Lit, _ int) bool {
	if !lit.IsNegated() {
		p.seenTrue = append(p.seenTrue, lit)
	}
	return len(p.seenTrue) <= 1
}

func (p *atMostOneTestPropagator) CalcReason(satbackend.PropagatorHost, *satbackend.Lit, *satbackend.Lit) []satbackend.Lit {
	if len(p.seenTrue) < 2 {
		return nil
	}
	return []satbackend.Lit{p.seenTrue[0].Not(), p.seenTrue[1].Not()}
}

func (p *atMostOneTestPropagator) Undo(satbackend.PropagatorHost, satbackend.Lit) {}

type atMostOneTestGen struct{}

func (atMostOneTestGen) Generate(inputs []csp.BoolExpr) csp.CustomPropagator {
	return &atMostOneTestPropagator{}
}
func (atMostOneTestGen) String() string { return "test-at-most-one" }

func TestEncodeCustomConstraintAcceptsSatisfyingAssignment(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.CustomConstraint{Inputs: []csp.BoolExpr{a.Expr(), b.Expr()}, Gen: atMostOneTestGen{}})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.True(t, ok)
}

func TestEncodeCustomConstraintRejectsForcedViolation(t *testing.T) {
	c := csp.New()
	a := c.NewBoolVar()
	b := c.NewBoolVar()
	c.AddConstraint(csp.CustomConstraint{Inputs: []csp.BoolExpr{a.Expr(), b.Expr()}, Gen: atMostOneTestGen{}})
	c.AddConstraint(csp.Expr{E: csp.And{a.Expr(), b.Expr()}})

	res := compileCSP(t, c)
	_, ok := solveWithLazy(res)
	assert.False(t, ok)
}
