package satbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLitPacking(t *testing.T) {
	v := Var(5)
	pos := NewLit(v, false)
	neg := NewLit(v, true)

	assert.Equal(t, v, pos.Var())
	assert.Equal(t, v, neg.Var())
	assert.False(t, pos.IsNegated())
	assert.True(t, neg.IsNegated())
	assert.Equal(t, neg, pos.Not())
	assert.Equal(t, pos, neg.Not())
}

func TestGiniBackendSatisfiableUnitClauses(t *testing.T) {
	b := NewGiniBackend()
	x := b.NewVar()
	y := b.NewVar()

	b.AddClause([]Lit{Pos(x)})
	b.AddClause([]Lit{Neg(y)})

	model, ok := b.Solve()
	require.True(t, ok)
	assert.True(t, model.Value(x))
	assert.False(t, model.Value(y))
}

func TestGiniBackendUnsatisfiable(t *testing.T) {
	b := NewGiniBackend()
	x := b.NewVar()

	b.AddClause([]Lit{Pos(x)})
	b.AddClause([]Lit{Neg(x)})

	_, ok := b.Solve()
	assert.False(t, ok)
}

func TestGiniBackendReportsNoNativePropagators(t *testing.T) {
	b := NewGiniBackend()
	assert.False(t, b.SupportsNativePropagators())
	assert.False(t, b.AddActiveVerticesConnected(nil, nil))
}
