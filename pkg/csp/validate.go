package csp

import "fmt"

// UnregisteredVarError reports that a Stmt tree referenced a BoolVar or
// IntVar this CSP never created through NewBoolVar/NewIntVar. It is a
// malformed-input condition from a caller assembling Stmts by hand (e.g.
// copy-pasting an index, or mixing variables from two different CSP
// values) — not an internal invariant violation, so Validate returns it
// rather than panicking.
type UnregisteredVarError struct {
	Kind  string // "BoolVar" or "IntVar"
	Index int
}

func (e *UnregisteredVarError) Error() string {
	return fmt.Sprintf("csp: reference to unregistered %s %d", e.Kind, e.Index)
}

// Validate walks every Stmt accumulated so far and checks that each BoolVar
// and IntVar reference falls within the variables c actually created,
// returning the first *UnregisteredVarError found. pkg/solve calls this
// before normalizing, so a malformed Stmt tree fails fast with a typed error
// instead of the normalizer tripping over it partway through (where a bad
// index would otherwise surface as an unrelated map-lookup or slice-bounds
// failure deep in normalizeInt/normalizeBool).
func (c *CSP) Validate() error {
	for _, s := range c.stmts {
		if err := c.validateStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSP) validateStmt(s Stmt) error {
	switch t := s.(type) {
	case Expr:
		return c.validateBool(t.E)
	case AllDifferent:
		return c.validateIntList(t.Exprs)
	case ActiveVerticesConnected:
		return c.validateBoolList(t.Vertices)
	case Circuit:
		return c.validateIntList(t.Exprs)
	case ExtensionSupports:
		return c.validateIntList(t.Exprs)
	case GraphDivision:
		for i, set := range t.SizesSet {
			if set {
				if err := c.validateInt(t.Sizes[i]); err != nil {
					return err
				}
			}
		}
		return c.validateBoolList(t.EdgeLits)
	case CustomConstraint:
		return c.validateBoolList(t.Inputs)
	}
	return nil
}

func (c *CSP) validateBoolList(es []BoolExpr) error {
	for _, e := range es {
		if err := c.validateBool(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSP) validateIntList(es []IntExpr) error {
	for _, e := range es {
		if err := c.validateInt(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSP) validateBool(e BoolExpr) error {
	switch t := e.(type) {
	case Var:
		if int(t) < 0 || int(t) >= c.numBoolVars {
			return &UnregisteredVarError{Kind: "BoolVar", Index: int(t)}
		}
	case And:
		return c.validateBoolList(t)
	case Or:
		return c.validateBoolList(t)
	case Not:
		return c.validateBool(t.X)
	case Xor:
		if err := c.validateBool(t.L); err != nil {
			return err
		}
		return c.validateBool(t.R)
	case Iff:
		if err := c.validateBool(t.L); err != nil {
			return err
		}
		return c.validateBool(t.R)
	case Imp:
		if err := c.validateBool(t.L); err != nil {
			return err
		}
		return c.validateBool(t.R)
	case Cmp:
		if err := c.validateInt(t.L); err != nil {
			return err
		}
		return c.validateInt(t.R)
	}
	return nil
}

func (c *CSP) validateInt(e IntExpr) error {
	switch t := e.(type) {
	case IntVarExpr:
		if int(t) < 0 || int(t) >= len(c.intDomains) {
			return &UnregisteredVarError{Kind: "IntVar", Index: int(t)}
		}
	case Linear:
		for _, term := range t {
			if err := c.validateInt(term.Expr); err != nil {
				return err
			}
		}
	case If:
		if err := c.validateBool(t.Cond); err != nil {
			return err
		}
		if err := c.validateInt(t.T); err != nil {
			return err
		}
		return c.validateInt(t.F)
	case Abs:
		return c.validateInt(t.X)
	case Mul:
		if err := c.validateInt(t.X); err != nil {
			return err
		}
		return c.validateInt(t.Y)
	}
	return nil
}
