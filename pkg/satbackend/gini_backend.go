package satbackend

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/semiexp/cspuz-core-sub001/pkg/config"
)

// GiniBackend wraps a github.com/go-air/gini instance behind the Backend
// interface. gini's public API has no equivalent of the source solver's
// unsafe SolverManipulator/CustomPropagator ABI, so every structural-
// constraint hook here returns false. Against this backend the encoder
// emits plain CNF for AllDifferent and ExtensionSupports, CNF plus a lazy
// check-and-block round for Circuit, and only lazy checks for
// ActiveVerticesConnected and GraphDivision; CustomConstraint is driven by
// pkg/propagators' CEGAR refinement loop instead of a real incremental
// watch.
type GiniBackend struct {
	g       *gini.Gini
	numVars int
	assumed []z.Lit
}

// NewGiniBackend returns a fresh, empty GiniBackend.
func NewGiniBackend() *GiniBackend {
	return &GiniBackend{g: gini.New()}
}

func toGini(l Lit) z.Lit {
	return z.Var(l.Var()+1).Lit(l.IsNegated())
}

func fromGiniVar(v z.Var) Var {
	return Var(v - 1)
}

func (b *GiniBackend) NewVar() Var {
	b.g.NewVar()
	v := Var(b.numVars)
	b.numVars++
	return v
}

func (b *GiniBackend) NumVars() int { return b.numVars }

func (b *GiniBackend) AddClause(lits []Lit) {
	for _, l := range lits {
		b.g.Add(toGini(l))
	}
	b.g.Add(z.LitNull)
}

func (b *GiniBackend) Assume(lits ...Lit) {
	b.assumed = b.assumed[:0]
	for _, l := range lits {
		b.assumed = append(b.assumed, toGini(l))
	}
	b.g.Assume(b.assumed...)
}

func (b *GiniBackend) AddOrderEncodingLinear(_ [][]Lit, _ [][]int32, _ []int32, _ int32, _ config.OrderEncodingLinearMode) bool {
	return false
}

func (b *GiniBackend) AddActiveVerticesConnected(_ []Lit, _ [][2]int) bool { return false }

func (b *GiniBackend) AddDirectEncodingExtensionSupports(_ [][]Lit, _ [][]*int) bool { return false }

func (b *GiniBackend) AddGraphDivision(_ [][]int32, _ [][]Lit, _ [][2]int, _ []Lit, _ config.GraphDivisionMode, _, _ bool) bool {
	return false
}

func (b *GiniBackend) AddCustomConstraint(_ []Lit, _ PropagatorFactory) bool { return false }

func (b *GiniBackend) SupportsNativePropagators() bool { return false }

func (b *GiniBackend) SetSeed(seed float64) {
	// gini picks its own randomization schedule internally; no public seed
	// hook exists, so this is intentionally a no-op kept to satisfy Backend.
	_ = seed
}

func (b *GiniBackend) SetRndInitAct(bool) {}

func (b *GiniBackend) SetDumpAnalysisInfo(bool) {}

func (b *GiniBackend) Solve() (Model, bool) {
	switch b.g.Solve() {
	case 1:
		return &giniModel{g: b.g}, true
	default:
		return nil, false
	}
}

func (b *GiniBackend) SolveWithoutModel() bool {
	return b.g.Solve() == 1
}

func (b *GiniBackend) Stats() Stats {
	return Stats{}
}

type giniModel struct {
	g *gini.Gini
}

func (m *giniModel) Value(v Var) bool {
	return m.g.Value(z.Var(v + 1).Pos())
}

func (m *giniModel) ValueLit(l Lit) bool {
	val := m.g.Value(z.Var(l.Var() + 1).Pos())
	if l.IsNegated() {
		return !val
	}
	return val
}
