package normcsp

// BoolLit is a polarity-tagged reference to a normalized Boolean variable.
type BoolLit struct {
	Var     NBoolVar
	Negated bool
}

// Lit returns the positive literal for v.
func Lit(v NBoolVar) BoolLit { return BoolLit{Var: v} }

// Not returns the negation of lit.
func (lit BoolLit) Not() BoolLit { return BoolLit{Var: lit.Var, Negated: !lit.Negated} }

// Clause is a disjunction of Boolean literals and linear literals: it is
// satisfied when at least one disjunct holds (spec.md §3, "Clause"). A bare
// assertion becomes a single-literal clause.
type Clause struct {
	BoolLits   []BoolLit
	LinearLits []LinearLit
}

// NewClause returns the empty clause (unsatisfiable until literals are
// added).
func NewClause() Clause { return Clause{} }

// AddBoolLit appends a Boolean disjunct in place and returns the receiver,
// for chained construction.
func (c Clause) AddBoolLit(lit BoolLit) Clause {
	c.BoolLits = append(c.BoolLits, lit)
	return c
}

// AddLinearLit appends a linear disjunct in place and returns the receiver.
func (c Clause) AddLinearLit(lit LinearLit) Clause {
	c.LinearLits = append(c.LinearLits, lit)
	return c
}

// IsEmpty reports whether the clause has no disjuncts at all (the
// unsatisfiable clause, produced e.g. by folding every disjunct away as
// trivially false).
func (c Clause) IsEmpty() bool {
	return len(c.BoolLits) == 0 && len(c.LinearLits) == 0
}

// NumLits returns the total number of disjuncts, Boolean and linear
// combined.
func (c Clause) NumLits() int {
	return len(c.BoolLits) + len(c.LinearLits)
}
