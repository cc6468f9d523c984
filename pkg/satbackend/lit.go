// Package satbackend is the thin adapter between the encoder and a concrete
// SAT solver: a bit-packed Var/Lit pair mirroring the wire shape of the
// source solver's literal encoding, a capability-probed Backend interface
// the encoder compiles against, and a GiniBackend implementation wrapping
// github.com/go-air/gini.
package satbackend

// Var names one Boolean decision variable inside a SAT instance. Var(0) is
// an ordinary variable (GiniBackend's first NewVar returns it), so it cannot
// serve as a sentinel; callers that need one use a separate bool or pointer.
type Var int32

// Lit is a variable together with a polarity, packed as var*2+negated so
// that negation is a single XOR and the two literals of a variable sort
// next to each other.
type Lit int32

// NewLit builds the literal of v with the given polarity.
func NewLit(v Var, negated bool) Lit {
	n := int32(0)
	if negated {
		n = 1
	}
	return Lit(int32(v)*2 + n)
}

// Pos is the positive literal of v.
func Pos(v Var) Lit { return NewLit(v, false) }

// Neg is the negated literal of v.
func Neg(v Var) Lit { return NewLit(v, true) }

// Var returns the variable l refers to.
func (l Lit) Var() Var { return Var(int32(l) / 2) }

// IsNegated reports whether l is the negated literal of its variable.
func (l Lit) IsNegated() bool { return int32(l)%2 == 1 }

// Not returns the opposite literal of the same variable.
func (l Lit) Not() Lit { return Lit(int32(l) ^ 1) }
