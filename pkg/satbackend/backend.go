package satbackend

import "github.com/semiexp/cspuz-core-sub001/pkg/config"

// Stats mirrors the source solver's optional decision/propagation/conflict
// counters; a backend that cannot report one leaves it nil rather than
// faking a zero.
type Stats struct {
	Decisions    *uint64
	Propagations *uint64
	Conflicts    *uint64
}

// Model answers queries against a satisfying assignment found by Solve.
type Model interface {
	Value(v Var) bool
	ValueLit(l Lit) bool
}

// PropagatorHost is the slice of solver-internal state a CustomConstraint's
// Propagator is allowed to touch while the search is running: reading the
// current (possibly partial) assignment, registering watches, enqueuing new
// forced literals, and checking whether a literal was assigned at the
// current decision level. It corresponds to the unsafe SolverManipulator
// contract of the source solver, minus the "unsafe" — Go backends that
// cannot honor it at all report so via Backend.SupportsNativePropagators.
type PropagatorHost interface {
	// Value reports the current assignment of lit, and whether it is
	// assigned at all.
	Value(lit Lit) (value bool, known bool)
	AddWatch(lit Lit)
	Enqueue(lit Lit) bool
	IsCurrentLevel(lit Lit) bool
}

// Propagator is implemented by a user-supplied custom constraint. Initialize
// runs once before search begins; Propagate runs whenever a watched literal
// is assigned; CalcReason explains a conflict or a propagated literal as a
// clause the host can learn; Undo runs on backtrack past an assignment the
// propagator reacted to.
type Propagator interface {
	Initialize(host PropagatorHost) bool
	Propagate(host PropagatorHost, p Lit, numPendingPropagations int) bool
	CalcReason(host PropagatorHost, p *Lit, extra *Lit) []Lit
	Undo(host PropagatorHost, p Lit)
}

// PropagatorFactory builds the Propagator for a CustomConstraint once its
// input literals are known, mirroring PropagatorGenerator::generate.
type PropagatorFactory interface {
	Generate(inputs []Lit) Propagator
}

// Backend is the contract pkg/encoder compiles against. A concrete backend
// may lack native support for one or more structural-constraint hooks; the
// encoder must check SupportsNativePropagators (and, before calling a
// structural-constraint method, treat a false return as "fall back to a
// plain CNF encoding of this constraint instead") rather than assume every
// method call succeeds.
type Backend interface {
	NewVar() Var
	NumVars() int
	AddClause(lits []Lit)

	// Assume sets the assumption literals for the next Solve/SolveWithoutModel
	// call. Used by the CEGAR-style refinement loop that drives
	// CustomConstraint on backends without a native propagator hook.
	Assume(lits ...Lit)

	// AddOrderEncodingLinear teaches the backend a native propagator for a
	// linear inequality over order-encoded literals. lits[i][j] is the
	// literal "term i >= domain[i][j]"; it returns false if the backend has
	// no such propagator (the encoder must fall back to a CNF expansion).
	AddOrderEncodingLinear(lits [][]Lit, domain [][]int32, coefs []int32, constant int32, mode config.OrderEncodingLinearMode) bool

	AddActiveVerticesConnected(lits []Lit, edges [][2]int) bool
	AddDirectEncodingExtensionSupports(vars [][]Lit, supports [][]*int) bool
	AddGraphDivision(domains [][]int32, domLits [][]Lit, edges [][2]int, edgeLits []Lit, mode config.GraphDivisionMode, allowBlankRegion, requireTree bool) bool
	AddCustomConstraint(inputs []Lit, gen PropagatorFactory) bool

	SetSeed(seed float64)
	SetRndInitAct(b bool)
	SetDumpAnalysisInfo(b bool)

	Solve() (Model, bool)
	SolveWithoutModel() bool
	Stats() Stats

	// SupportsNativePropagators reports whether AddOrderEncodingLinear,
	// AddActiveVerticesConnected, AddDirectEncodingExtensionSupports,
	// AddGraphDivision and AddCustomConstraint are backed by a genuine
	// incremental propagator rather than always returning false.
	SupportsNativePropagators() bool
}
