package normcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
)

func TestLinearSumAddTermCancels(t *testing.T) {
	s := NewLinearSum()
	s.AddTerm(0, 3)
	s.AddTerm(1, 5)
	s.AddTerm(0, -3)
	assert.Equal(t, 1, s.NumTerms())
	terms := s.Terms()
	require.Len(t, terms, 1)
	assert.Equal(t, NIntVar(1), terms[0].Var)
	assert.Equal(t, int32(5), terms[0].Coef)
}

func TestLinearSumArithmetic(t *testing.T) {
	a := SingleVar(0)
	b := SingleVar(1)
	sum := a.Add(b).ScalarMul(2)
	sum.Constant += 3

	store := New()
	store.NewIntVar(DomainRepresentation{Domain: arith.NewDomainRange(0, 5)})
	store.NewIntVar(DomainRepresentation{Domain: arith.NewDomainRange(0, 5)})

	r := sum.Range(store)
	assert.Equal(t, int32(3), r.Low.Int())
	assert.Equal(t, int32(23), r.High.Int())
}

func TestLinearLitClassify(t *testing.T) {
	store := New()
	v := store.NewIntVar(DomainRepresentation{Domain: arith.NewDomainRange(1, 3)})

	alwaysPositive := LinearLit{Sum: SingleVar(v), Op: Gt}
	assert.Equal(t, 1, alwaysPositive.Classify(store))

	neverNegative := LinearLit{Sum: SingleVar(v), Op: Lt}
	assert.Equal(t, -1, neverNegative.Classify(store))

	maybeTwo := LinearLit{Sum: SingleVar(v).Add(ConstSum(-2)), Op: Eq}
	assert.Equal(t, 0, maybeTwo.Classify(store))
}

func TestNormCSPClauseAndVarBookkeeping(t *testing.T) {
	store := New()
	b0 := store.NewBoolVar()
	b1 := store.NewBoolVar()
	assert.Equal(t, 2, store.NumBoolVars())

	c := NewClause().AddBoolLit(Lit(b0)).AddBoolLit(Lit(b1).Not())
	store.AddClause(c)
	require.Len(t, store.Clauses(), 1)
	assert.Equal(t, 2, store.Clauses()[0].NumLits())
}

func TestNormCSPRefineDomain(t *testing.T) {
	store := New()
	v := store.NewIntVar(DomainRepresentation{Domain: arith.NewDomainRange(0, 10)})
	store.RefineDomain(v, arith.NewDomainRange(3, 6))
	d := store.DomainOf(v)
	assert.Equal(t, int32(3), d.Min())
	assert.Equal(t, int32(6), d.Max())
}

func TestBinaryRepresentationDomain(t *testing.T) {
	store := New()
	cond := store.NewBoolVar()
	v := store.NewIntVar(BinaryRepresentation{Cond: cond, F: 0, T: 1})
	d := store.IntVarInfo(v).Domain()
	assert.Equal(t, []int32{0, 1}, d.Enumerate())
}
