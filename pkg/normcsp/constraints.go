package normcsp

// Edge is an undirected edge between two 0-based vertex indices, mirroring
// csp.Edge at the normalized layer (kept separate so normcsp has no
// dependency on pkg/csp).
type Edge struct{ U, V int }

// AllDifferentConstraint asserts that Vars take pairwise distinct values.
type AllDifferentConstraint struct {
	Vars []NIntVar
}

// CircuitConstraint asserts that Vars (one successor-index variable per
// vertex) forms a single Hamiltonian cycle.
type CircuitConstraint struct {
	Vars []NIntVar
}

// ActiveVerticesConnectedConstraint asserts that the subgraph induced by
// vertices whose Active literal holds is connected, over Edges.
type ActiveVerticesConnectedConstraint struct {
	Active []BoolLit
	Edges  []Edge
}

// ExtensionSupportsConstraint asserts the tuple of values taken by Vars
// matches one row of Supports; a nil entry in a row is a wildcard.
type ExtensionSupportsConstraint struct {
	Vars     []NIntVar
	Supports [][]*int32
}

// GraphDivisionConstraint asserts a size-constrained partition of the
// vertex set along EdgeLits-selected Edges.
type GraphDivisionConstraint struct {
	Sizes            []NIntVar
	SizesSet         []bool
	Edges            []Edge
	EdgeLits         []BoolLit
	AllowBlankRegion bool
	RequireTree      bool
}

// CustomConstraint asserts a user-supplied propagator over Inputs, carried
// through from pkg/csp.CustomPropagator without interpretation at this
// layer (pkg/encoder and pkg/propagators give it concrete shape).
type CustomConstraint struct {
	Inputs     []BoolLit
	Propagator interface{}
}
