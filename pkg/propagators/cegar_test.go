package propagators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// fakeModel is a minimal satbackend.Model over a fixed polarity map, used to
// drive CEGARConstraint without a real SAT backend.
type fakeModel struct {
	positive map[satbackend.Var]bool
}

func (m fakeModel) Value(v satbackend.Var) bool { return m.positive[v] }
func (m fakeModel) ValueLit(l satbackend.Lit) bool {
	v := m.positive[l.Var()]
	if l.IsNegated() {
		return !v
	}
	return v
}

// atMostOnePropagator rejects any assignment where more than one of its
// inputs is true, reporting the two offending literals as the reason.
type atMostOnePropagator struct {
	seenTrue []satbackend.Lit
}

func (p *atMostOnePropagator) Initialize(satbackend.PropagatorHost) bool { return true }

func (p *atMostOnePropagator) Propagate(host satbackend.PropagatorHost, lit satbackend.Lit, _ int) bool {
	if !lit.IsNegated() {
		p.seenTrue = append(p.seenTrue, lit)
	}
	return len(p.seenTrue) <= 1
}

func (p *atMostOnePropagator) CalcReason(satbackend.PropagatorHost, *satbackend.Lit, *satbackend.Lit) []satbackend.Lit {
	if len(p.seenTrue) < 2 {
		return nil
	}
	return []satbackend.Lit{p.seenTrue[0].Not(), p.seenTrue[1].Not()}
}

func (p *atMostOnePropagator) Undo(satbackend.PropagatorHost, satbackend.Lit) {}

func TestCEGARConstraintAcceptsValidAssignment(t *testing.T) {
	v0, v1 := satbackend.Var(0), satbackend.Var(1)
	inputs := []satbackend.Lit{satbackend.Pos(v0), satbackend.Pos(v1)}
	model := fakeModel{positive: map[satbackend.Var]bool{v0: true, v1: false}}

	c := &CEGARConstraint{Inputs: inputs, Prop: &atMostOnePropagator{}}
	violated, _ := c.Check(model)
	assert.False(t, violated)
}

func TestCEGARConstraintBlocksInvalidAssignment(t *testing.T) {
	v0, v1 := satbackend.Var(0), satbackend.Var(1)
	inputs := []satbackend.Lit{satbackend.Pos(v0), satbackend.Pos(v1)}
	model := fakeModel{positive: map[satbackend.Var]bool{v0: true, v1: true}}

	c := &CEGARConstraint{Inputs: inputs, Prop: &atMostOnePropagator{}}
	violated, blocking := c.Check(model)
	require.True(t, violated)
	assert.ElementsMatch(t, []satbackend.Lit{satbackend.Neg(v0), satbackend.Neg(v1)}, blocking)
}
