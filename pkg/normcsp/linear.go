package normcsp

import "github.com/semiexp/cspuz-core-sub001/pkg/arith"

// LinearSum maps normalized integer variables to non-zero int32
// coefficients, plus a constant; its arithmetic is plain int32, without
// CheckedInt's overflow checks. Term order matches first-insertion order
// so that clause emission is deterministic for a fixed Config (spec.md §5).
// Invariant: no zero coefficients are ever stored; adding a term that
// cancels to zero removes it.
type LinearSum struct {
	order  []NIntVar
	coefs  map[NIntVar]int32
	Constant int32
}

// NewLinearSum returns the empty sum (constant 0).
func NewLinearSum() *LinearSum {
	return &LinearSum{coefs: make(map[NIntVar]int32)}
}

// ConstSum returns a sum that is just the literal integer c.
func ConstSum(c int32) *LinearSum {
	s := NewLinearSum()
	s.Constant = c
	return s
}

// SingleVar returns the sum `v` (coefficient 1, no constant).
func SingleVar(v NIntVar) *LinearSum {
	s := NewLinearSum()
	s.AddTerm(v, 1)
	return s
}

// Clone returns a deep copy.
func (s *LinearSum) Clone() *LinearSum {
	c := &LinearSum{
		order:    append([]NIntVar(nil), s.order...),
		coefs:    make(map[NIntVar]int32, len(s.coefs)),
		Constant: s.Constant,
	}
	for k, v := range s.coefs {
		c.coefs[k] = v
	}
	return c
}

// AddTerm adds coef*v to the sum in place, dropping the term if the
// resulting coefficient is zero.
func (s *LinearSum) AddTerm(v NIntVar, coef int32) {
	if coef == 0 {
		return
	}
	cur, ok := s.coefs[v]
	if !ok {
		s.order = append(s.order, v)
		s.coefs[v] = coef
		return
	}
	next := cur + coef
	if next == 0 {
		delete(s.coefs, v)
		for i, o := range s.order {
			if o == v {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.coefs[v] = next
}

// Terms returns the (variable, coefficient) pairs in insertion order. The
// caller must not mutate the returned slice's backing array via the sum.
func (s *LinearSum) Terms() []Term {
	out := make([]Term, len(s.order))
	for i, v := range s.order {
		out[i] = Term{Var: v, Coef: s.coefs[v]}
	}
	return out
}

// Term pairs a normalized integer variable with its non-zero coefficient.
type Term struct {
	Var  NIntVar
	Coef int32
}

// NumTerms returns the number of distinct variables with a non-zero
// coefficient.
func (s *LinearSum) NumTerms() int { return len(s.order) }

// Add returns s+o as a new sum.
func (s *LinearSum) Add(o *LinearSum) *LinearSum {
	r := s.Clone()
	for _, t := range o.Terms() {
		r.AddTerm(t.Var, t.Coef)
	}
	r.Constant += o.Constant
	return r
}

// Sub returns s-o as a new sum.
func (s *LinearSum) Sub(o *LinearSum) *LinearSum {
	return s.Add(o.ScalarMul(-1))
}

// ScalarMul returns k*s as a new sum.
func (s *LinearSum) ScalarMul(k int32) *LinearSum {
	r := NewLinearSum()
	r.Constant = s.Constant * k
	for _, t := range s.Terms() {
		r.AddTerm(t.Var, t.Coef*k)
	}
	return r
}

// Negate returns -s as a new sum.
func (s *LinearSum) Negate() *LinearSum { return s.ScalarMul(-1) }

// DomainLookup resolves a normalized integer variable's current domain;
// pkg/normcsp's NormCSP implements this directly.
type DomainLookup interface {
	DomainOf(v NIntVar) arith.Domain
}

// Range computes the interval of values the sum can take given each
// variable's domain, by summing each term's scaled range (spec.md §3,
// LinearSum.range()).
func (s *LinearSum) Range(vars DomainLookup) arith.Range {
	r := arith.Single(s.Constant)
	for _, t := range s.Terms() {
		vr := vars.DomainOf(t.Var).AsRange().MulConst(t.Coef)
		r = r.Add(vr)
	}
	return r
}

// LinearLit asserts that Sum, compared to zero via Op, holds.
type LinearLit struct {
	Sum *LinearSum
	Op  CmpOp
}

// CmpOp mirrors csp.CmpOp without pkg/normcsp depending on pkg/csp; the
// normalizer maps csp.CmpOp values to these one-for-one.
type CmpOp int

const (
	Eq CmpOp = iota
	Ne
	Le
	Lt
	Ge
	Gt
)

func (op CmpOp) Flip() CmpOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Le:
		return Gt
	case Gt:
		return Le
	case Lt:
		return Ge
	case Ge:
		return Lt
	}
	panic("normcsp: unreachable CmpOp")
}

// Holds reports whether v (satisfies op) 0, i.e. whether `v op 0`.
func (op CmpOp) Holds(v int32) bool {
	switch op {
	case Eq:
		return v == 0
	case Ne:
		return v != 0
	case Le:
		return v <= 0
	case Lt:
		return v < 0
	case Ge:
		return v >= 0
	case Gt:
		return v > 0
	}
	panic("normcsp: unreachable CmpOp")
}

// isTriviallyTrue reports whether every value in r satisfies `r op 0`.
func (lit LinearLit) isTriviallyTrue(r arith.Range) bool {
	if r.IsEmpty() {
		return true
	}
	return lit.Op.Holds(r.Low.Int()) && lit.Op.Holds(r.High.Int()) && monotoneHolds(lit.Op, r)
}

// monotoneHolds additionally checks interior consistency for Eq/Ne, where
// holding at both endpoints does not imply holding throughout the range.
func monotoneHolds(op CmpOp, r arith.Range) bool {
	switch op {
	case Eq:
		return r.Low.Int() == r.High.Int() && r.Low.Int() == 0
	case Ne:
		return r.Low.Int() > 0 || r.High.Int() < 0
	default:
		return true
	}
}

// isTriviallyFalse reports whether no value in r satisfies `r op 0`.
func (lit LinearLit) isTriviallyFalse(r arith.Range) bool {
	if r.IsEmpty() {
		return true
	}
	switch lit.Op {
	case Eq:
		return r.Low.Int() > 0 || r.High.Int() < 0
	case Ne:
		return r.Low.Int() == 0 && r.High.Int() == 0
	case Le:
		return r.Low.Int() > 0
	case Lt:
		return r.Low.Int() >= 0
	case Ge:
		return r.High.Int() < 0
	case Gt:
		return r.High.Int() <= 0
	}
	panic("normcsp: unreachable CmpOp")
}

// Classify reports the LinearLit's status given the current domains: +1
// trivially true (drop the literal's clause / clause becomes satisfied),
// -1 trivially false (the literal can be dropped from its clause), 0
// neither (must be encoded).
func (lit LinearLit) Classify(vars DomainLookup) int {
	r := lit.Sum.Range(vars)
	if lit.isTriviallyTrue(r) {
		return 1
	}
	if lit.isTriviallyFalse(r) {
		return -1
	}
	return 0
}
