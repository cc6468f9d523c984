// Package normcsp is the normalized intermediate representation: plain
// integer-indexed Boolean/integer variables, linear sums and literals over
// them, clauses, and the native structural constraints the encoder knows
// how to translate to CNF (or a propagator). It is the output of
// pkg/normalizer and the input of pkg/encoder.
package normcsp

import "github.com/semiexp/cspuz-core-sub001/pkg/arith"

// NBoolVar is an append-only index into a NormCSP's Boolean variable table.
// Unlike csp.BoolVar it carries no further structure — a normalized
// Boolean variable is just a name for a literal.
type NBoolVar int

// NIntVar is an append-only index into a NormCSP's integer variable table.
type NIntVar int

// IntVarRepresentation is the storage discriminant for a normalized integer
// variable: either an explicit finite domain, or a two-valued variable
// gated by a Boolean condition (spec.md §3, "NIntVar").
type IntVarRepresentation interface {
	isIntVarRepresentation()
	Range() arith.Range
}

// DomainRepresentation stores an explicit finite set of values.
type DomainRepresentation struct {
	Domain arith.Domain
}

func (DomainRepresentation) isIntVarRepresentation() {}
func (r DomainRepresentation) Range() arith.Range     { return r.Domain.AsRange() }

// BinaryRepresentation stores a two-valued variable taking T when Cond
// holds and F otherwise. Invariant: F < T (spec.md §3).
type BinaryRepresentation struct {
	Cond NBoolVar
	F, T int32
}

func (BinaryRepresentation) isIntVarRepresentation() {}
func (r BinaryRepresentation) Range() arith.Range {
	return arith.NewRange(r.F, r.T)
}

// IntVarInfo is the stored record for a normalized integer variable.
type IntVarInfo struct {
	Repr IntVarRepresentation
}

// Domain returns the variable's set of possible values, materializing a
// BinaryRepresentation's {F, T} pair as a two-element Domain so callers
// don't need to special-case representation kinds for anything but
// encoding choice.
func (info IntVarInfo) Domain() arith.Domain {
	switch r := info.Repr.(type) {
	case DomainRepresentation:
		return r.Domain
	case BinaryRepresentation:
		return arith.NewDomainValues([]int32{r.F, r.T})
	}
	panic("normcsp: unknown IntVarRepresentation")
}
