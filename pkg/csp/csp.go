package csp

import "github.com/semiexp/cspuz-core-sub001/pkg/arith"

// CSP is the original-problem store: an append-only table of Boolean
// variables (which carry no metadata beyond their existence), an
// append-only table of integer-variable domains, and the list of statements
// asserted against them. Constraints may be appended in any order; domains
// must be non-empty when a variable is created.
type CSP struct {
	numBoolVars int
	intDomains  []arith.Domain
	stmts       []Stmt
}

// New returns an empty CSP.
func New() *CSP {
	return &CSP{}
}

// NewBoolVar appends a fresh Boolean variable and returns its handle.
func (c *CSP) NewBoolVar() BoolVar {
	v := BoolVar(c.numBoolVars)
	c.numBoolVars++
	return v
}

// NewIntVar appends a fresh integer variable with the given domain and
// returns its handle. Panics if domain is empty: an infeasible domain at
// creation time is a structural error in the caller, not a condition the
// solver is asked to reason about.
func (c *CSP) NewIntVar(domain arith.Domain) IntVar {
	if domain.IsInfeasible() {
		panic("csp: NewIntVar called with an empty domain")
	}
	v := IntVar(len(c.intDomains))
	c.intDomains = append(c.intDomains, domain)
	return v
}

// AddConstraint appends a statement to the CSP.
func (c *CSP) AddConstraint(s Stmt) {
	c.stmts = append(c.stmts, s)
}

// NumBoolVars returns the number of Boolean variables created so far.
func (c *CSP) NumBoolVars() int { return c.numBoolVars }

// NumIntVars returns the number of integer variables created so far.
func (c *CSP) NumIntVars() int { return len(c.intDomains) }

// DomainOf returns the domain registered for v. Panics if v was not
// returned by this CSP's NewIntVar: every production caller (the
// normalizer's own variable loop) only ever passes back a v it just
// enumerated from NumIntVars, so this is an internal invariant, not a
// user-facing validation surface — a caller worried about a hand-built Stmt
// tree referencing a stray index should call Validate first, which reports
// that case as a typed *UnregisteredVarError instead of panicking.
func (c *CSP) DomainOf(v IntVar) arith.Domain {
	if int(v) < 0 || int(v) >= len(c.intDomains) {
		panic("csp: reference to unregistered IntVar")
	}
	return c.intDomains[v]
}

// Stmts returns the statements appended so far, in submission order. The
// normalizer visits them in this order, so that normalized-variable
// allocation is deterministic.
func (c *CSP) Stmts() []Stmt { return c.stmts }
