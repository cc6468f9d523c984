package normcsp

import "github.com/semiexp/cspuz-core-sub001/pkg/arith"

// NormCSP is the normalized-problem store produced by pkg/normalizer: flat
// variable tables, a clause list, and per-kind lists of the structural
// ("native") constraints the encoder knows how to translate — either to CNF
// or to a propagator attached at the SAT backend (spec.md §3/§4).
type NormCSP struct {
	boolVars int
	intVars  []IntVarInfo

	clauses []Clause

	allDifferent []AllDifferentConstraint
	circuits     []CircuitConstraint
	avc          []ActiveVerticesConnectedConstraint
	extSupports  []ExtensionSupportsConstraint
	graphDiv     []GraphDivisionConstraint
	custom       []CustomConstraint
}

// New returns an empty NormCSP.
func New() *NormCSP {
	return &NormCSP{}
}

// NewBoolVar appends a fresh normalized Boolean variable and returns its
// handle.
func (n *NormCSP) NewBoolVar() NBoolVar {
	v := NBoolVar(n.boolVars)
	n.boolVars++
	return v
}

// NewIntVar appends a fresh normalized integer variable with the given
// representation and returns its handle.
func (n *NormCSP) NewIntVar(repr IntVarRepresentation) NIntVar {
	v := NIntVar(len(n.intVars))
	n.intVars = append(n.intVars, IntVarInfo{Repr: repr})
	return v
}

// NumBoolVars returns the number of normalized Boolean variables.
func (n *NormCSP) NumBoolVars() int { return n.boolVars }

// NumIntVars returns the number of normalized integer variables.
func (n *NormCSP) NumIntVars() int { return len(n.intVars) }

// IntVarInfo returns the stored representation record for v.
func (n *NormCSP) IntVarInfo(v NIntVar) IntVarInfo {
	return n.intVars[v]
}

// DomainOf implements DomainLookup, resolving v's current domain, so that
// LinearSum.Range and LinearLit.Classify can be called directly against a
// NormCSP.
func (n *NormCSP) DomainOf(v NIntVar) arith.Domain {
	return n.intVars[v].Domain()
}

// RefineDomain intersects v's domain with d in place. Only valid for a
// DomainRepresentation; callers must not call this on a BinaryRepresentation
// variable (its two-valued shape is fixed by construction).
func (n *NormCSP) RefineDomain(v NIntVar, d arith.Domain) {
	repr, ok := n.intVars[v].Repr.(DomainRepresentation)
	if !ok {
		panic("normcsp: RefineDomain called on a non-domain representation")
	}
	n.intVars[v].Repr = DomainRepresentation{Domain: repr.Domain.Intersect(d)}
}

// AddClause appends a clause to the store.
func (n *NormCSP) AddClause(c Clause) {
	n.clauses = append(n.clauses, c)
}

// Clauses returns the accumulated clause list in insertion order.
func (n *NormCSP) Clauses() []Clause { return n.clauses }

// AddAllDifferent registers a native all-different constraint.
func (n *NormCSP) AddAllDifferent(c AllDifferentConstraint) {
	n.allDifferent = append(n.allDifferent, c)
}

// AllDifferentConstraints returns the registered all-different constraints.
func (n *NormCSP) AllDifferentConstraints() []AllDifferentConstraint { return n.allDifferent }

// AddCircuit registers a native circuit (Hamiltonian cycle) constraint.
func (n *NormCSP) AddCircuit(c CircuitConstraint) {
	n.circuits = append(n.circuits, c)
}

// CircuitConstraints returns the registered circuit constraints.
func (n *NormCSP) CircuitConstraints() []CircuitConstraint { return n.circuits }

// AddActiveVerticesConnected registers a native connectivity constraint.
func (n *NormCSP) AddActiveVerticesConnected(c ActiveVerticesConnectedConstraint) {
	n.avc = append(n.avc, c)
}

// ActiveVerticesConnectedConstraints returns the registered connectivity
// constraints.
func (n *NormCSP) ActiveVerticesConnectedConstraints() []ActiveVerticesConnectedConstraint {
	return n.avc
}

// AddExtensionSupports registers a native table (extensional-support)
// constraint.
func (n *NormCSP) AddExtensionSupports(c ExtensionSupportsConstraint) {
	n.extSupports = append(n.extSupports, c)
}

// ExtensionSupportsConstraints returns the registered table constraints.
func (n *NormCSP) ExtensionSupportsConstraints() []ExtensionSupportsConstraint {
	return n.extSupports
}

// AddGraphDivision registers a native graph-division constraint.
func (n *NormCSP) AddGraphDivision(c GraphDivisionConstraint) {
	n.graphDiv = append(n.graphDiv, c)
}

// GraphDivisionConstraints returns the registered graph-division
// constraints.
func (n *NormCSP) GraphDivisionConstraints() []GraphDivisionConstraint { return n.graphDiv }

// AddCustomConstraint registers a user propagator constraint.
func (n *NormCSP) AddCustomConstraint(c CustomConstraint) {
	n.custom = append(n.custom, c)
}

// CustomConstraints returns the registered custom-propagator constraints.
func (n *NormCSP) CustomConstraints() []CustomConstraint { return n.custom }

// RewriteBoolLits applies f to every Boolean literal reachable from the
// store's clauses and structural constraints, in place. Optional normalizer
// passes (equivalent-variable merging) use this to canonicalize variable
// references after the fact, without needing their own traversal of every
// constraint kind.
func (n *NormCSP) RewriteBoolLits(f func(BoolLit) BoolLit) {
	for i := range n.clauses {
		for j := range n.clauses[i].BoolLits {
			n.clauses[i].BoolLits[j] = f(n.clauses[i].BoolLits[j])
		}
	}
	for i := range n.avc {
		for j := range n.avc[i].Active {
			n.avc[i].Active[j] = f(n.avc[i].Active[j])
		}
	}
	for i := range n.graphDiv {
		for j := range n.graphDiv[i].EdgeLits {
			n.graphDiv[i].EdgeLits[j] = f(n.graphDiv[i].EdgeLits[j])
		}
	}
	for i := range n.custom {
		for j := range n.custom[i].Inputs {
			n.custom[i].Inputs[j] = f(n.custom[i].Inputs[j])
		}
	}
}
