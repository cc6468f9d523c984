package csp

import (
	"fmt"
	"io"
)

// GraphDivisionMode selects which concrete algorithm a graph-division
// constraint should ultimately be realized by (§4.4.3 / §9). Only Cpp and
// Rust exist in the original source as two ports of the same contract. This
// Go port ships one encoder, and pkg/config declares its own parallel
// GraphDivisionMode rather than referring to this one.
type GraphDivisionMode int

const (
	GraphDivisionModeCpp GraphDivisionMode = iota
	GraphDivisionModeRust
)

// GraphDivisionOptions configures a GraphDivision statement: whether the
// partition may include "blank" (unassigned) regions, and whether every
// region's connectivity must additionally be acyclic (a tree, not just
// connected).
type GraphDivisionOptions struct {
	AllowBlankRegion bool
	RequireTree      bool
}

// CustomPropagator is an opaque handle produced by a PropagatorGenerator. It
// is untyped here (csp is the pure-IR layer and imports no solver package);
// pkg/encoder type-asserts it to satbackend.Propagator.
type CustomPropagator interface{}

// PropagatorGenerator is supplied by a caller constructing a
// CustomConstraint statement. Generate is invoked once, during
// normalization, with the constraint's input expressions after constant
// folding, and must return a CustomPropagator (in practice a
// satbackend.Propagator) implementing the contract of spec.md §4.4.4.
type PropagatorGenerator interface {
	Generate(inputs []BoolExpr) CustomPropagator
	fmt.Stringer
}

// Stmt is the closed set of top-level constraints a CSP accepts:
// an assertion plus the six structural constraint kinds.
type Stmt interface {
	isStmt()
	PrettyPrint(w io.Writer) error
	String() string
}

// Expr asserts that e must hold.
type Expr struct{ E BoolExpr }

func (Expr) isStmt() {}
func (s Expr) PrettyPrint(w io.Writer) error { return s.E.PrettyPrint(w) }
func (s Expr) String() string                { return s.E.String() }

// AllDifferent asserts that every expression in Exprs evaluates to a
// distinct value.
type AllDifferent struct{ Exprs []IntExpr }

func (AllDifferent) isStmt() {}
func (s AllDifferent) PrettyPrint(w io.Writer) error {
	return prettyPrintIntList(w, "alldifferent", s.Exprs)
}
func (s AllDifferent) String() string { return stringOfPrint(s) }

// ActiveVerticesConnected asserts that the subgraph induced by the vertices
// whose BoolExpr evaluates to true is connected, over the given edge list
// (vertex indices into Vertices).
type ActiveVerticesConnected struct {
	Vertices []BoolExpr
	Edges    []Edge
}

// Edge is an undirected edge between two 0-based vertex indices.
type Edge struct{ U, V int }

func (ActiveVerticesConnected) isStmt() {}
func (s ActiveVerticesConnected) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(active-vertices-connected"); err != nil {
		return err
	}
	for i, e := range s.Vertices {
		if _, err := fmt.Fprintf(w, " %d:", i); err != nil {
			return err
		}
		if err := e.PrettyPrint(w); err != nil {
			return err
		}
	}
	if err := printGraph(w, s.Edges); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}
func (s ActiveVerticesConnected) String() string { return stringOfPrint(s) }

// Circuit asserts that Exprs (one IntVar per vertex, giving the index of its
// successor) forms a single Hamiltonian cycle over len(Exprs) vertices.
type Circuit struct{ Exprs []IntExpr }

func (Circuit) isStmt() {}
func (s Circuit) PrettyPrint(w io.Writer) error { return prettyPrintIntList(w, "circuit", s.Exprs) }
func (s Circuit) String() string                { return stringOfPrint(s) }

// ExtensionSupports asserts that the tuple of values taken by Exprs must
// match one of Supports' rows; nil entries in a row are wildcards.
type ExtensionSupports struct {
	Exprs    []IntExpr
	Supports [][]*int32
}

func (ExtensionSupports) isStmt() {}
func (s ExtensionSupports) PrettyPrint(w io.Writer) error {
	if err := prettyPrintIntListOpen(w, "extension-supports", s.Exprs); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, " supports=["); err != nil {
		return err
	}
	for i, tuple := range s.Supports {
		if i != 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "("); err != nil {
			return err
		}
		for j, v := range tuple {
			if j != 0 {
				if _, err := fmt.Fprint(w, ","); err != nil {
					return err
				}
			}
			if v == nil {
				if _, err := fmt.Fprint(w, "*"); err != nil {
					return err
				}
			} else if _, err := fmt.Fprintf(w, "%d", *v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, ")"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "])")
	return err
}
func (s ExtensionSupports) String() string { return stringOfPrint(s) }

// GraphDivision asserts that the vertex set is partitioned into regions
// along the given edges, gated by the EdgeLits Boolean per-edge selection,
// with each region's size constrained by the corresponding (optional) Sizes
// entry.
type GraphDivision struct {
	Sizes    []IntExpr // entry ignored (unconstrained size) when SizesSet[i] is false
	SizesSet []bool    // SizesSet[i] == false means Sizes[i] is absent
	Edges    []Edge
	EdgeLits []BoolExpr
	Opts     GraphDivisionOptions
}

func (GraphDivision) isStmt() {}
func (s GraphDivision) PrettyPrint(w io.Writer) error {
	if _, err := fmt.Fprint(w, "(graph-division sizes=["); err != nil {
		return err
	}
	for i := range s.Sizes {
		if i != 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if !s.SizesSet[i] {
			if _, err := fmt.Fprint(w, "*"); err != nil {
				return err
			}
			continue
		}
		if err := s.Sizes[i].PrettyPrint(w); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "]"); err != nil {
		return err
	}
	if err := printGraph(w, s.Edges); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, " edges=["); err != nil {
		return err
	}
	for i, e := range s.EdgeLits {
		if i != 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if err := e.PrettyPrint(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "])")
	return err
}
func (s GraphDivision) String() string { return stringOfPrint(s) }

// CustomConstraint asserts Gen's propagator over Inputs.
type CustomConstraint struct {
	Inputs []BoolExpr
	Gen    PropagatorGenerator
}

func (CustomConstraint) isStmt() {}
func (s CustomConstraint) PrettyPrint(w io.Writer) error {
	return prettyPrintList(w, "custom-constraint", s.Inputs)
}
func (s CustomConstraint) String() string { return stringOfPrint(s) }

func printGraph(w io.Writer, edges []Edge) error {
	if _, err := fmt.Fprint(w, " graph=["); err != nil {
		return err
	}
	for i, e := range edges {
		if i != 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d--%d", e.U, e.V); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "]")
	return err
}

func prettyPrintIntList(w io.Writer, op string, exprs []IntExpr) error {
	if err := prettyPrintIntListOpen(w, op, exprs); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

func prettyPrintIntListOpen(w io.Writer, op string, exprs []IntExpr) error {
	if _, err := fmt.Fprintf(w, "(%s", op); err != nil {
		return err
	}
	for _, e := range exprs {
		if _, err := fmt.Fprint(w, " "); err != nil {
			return err
		}
		if err := e.PrettyPrint(w); err != nil {
			return err
		}
	}
	return nil
}
