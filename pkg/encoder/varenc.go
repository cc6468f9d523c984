package encoder

import "github.com/semiexp/cspuz-core-sub001/pkg/satbackend"

// encodingKind selects which SAT-level representation a VarEncoding uses,
// per spec.md §4.4.1's per-variable direct/log/order encoding choice.
type encodingKind int

const (
	// orderEncoding represents value >= Values[i] for every threshold i,
	// so comparisons (including the >= chains alldifferent/linear lean on)
	// cost one literal lookup; the default, and the only kind a
	// BinaryRepresentation variable ever uses.
	orderEncoding encodingKind = iota
	// directEncoding allocates one literal per value with an exactly-one
	// constraint over them; equality tests are a single literal at the
	// cost of a variable per value.
	directEncoding
	// logEncoding allocates ceil(log2(len(Values))) bits and represents a
	// value by its index's bit pattern, trading one extra clause per
	// equality test for a variable count logarithmic in domain size.
	logEncoding
)

// VarEncoding is the SAT-level encoding of one normalized integer variable:
// its sorted domain values, and the literals needed to test or decode them.
// Which of geLits/eqLits/bits is populated depends on kind. A
// BinaryRepresentation variable always uses orderEncoding and reuses its
// existing condition literal as geLits[1] instead of allocating a fresh SAT
// variable — the rest of the encoder never needs to special-case it past
// construction.
type VarEncoding struct {
	Values []int32
	kind   encodingKind

	geLits []satbackend.Lit // order encoding only; geLits[0] unused, index 0 always holds
	eqLits []satbackend.Lit // direct encoding only; eqLits[i] true iff value == Values[i]
	bits   []satbackend.Lit // log encoding only; value's index in binary, bits[0] is the LSB
}

// IndexOf returns the position of val in Values, or -1 if val is not a
// possible value of this variable.
func (e *VarEncoding) IndexOf(val int32) int {
	for i, v := range e.Values {
		if v == val {
			return i
		}
	}
	return -1
}

// EqLits returns the literal(s) whose conjunction means "value == Values[i]".
func (e *VarEncoding) EqLits(i int) []satbackend.Lit {
	switch e.kind {
	case directEncoding:
		return []satbackend.Lit{e.eqLits[i]}
	case logEncoding:
		lits := make([]satbackend.Lit, len(e.bits))
		for b := range e.bits {
			if i&(1<<uint(b)) != 0 {
				lits[b] = e.bits[b]
			} else {
				lits[b] = e.bits[b].Not()
			}
		}
		return lits
	default:
		var lits []satbackend.Lit
		if i > 0 {
			lits = append(lits, e.geLits[i])
		}
		if i+1 < len(e.Values) {
			lits = append(lits, e.geLits[i+1].Not())
		}
		return lits
	}
}

// NotEqLits returns the clause literals whose disjunction means
// "value != Values[i]" — De Morgan's negation of EqLits(i), which holds
// regardless of which encoding produced it.
func (e *VarEncoding) NotEqLits(i int) []satbackend.Lit {
	eq := e.EqLits(i)
	lits := make([]satbackend.Lit, len(eq))
	for j, l := range eq {
		lits[j] = l.Not()
	}
	return lits
}

// DecodeValue reads off the assigned value of this variable from a
// satisfying model.
func (e *VarEncoding) DecodeValue(model satbackend.Model) int32 {
	switch e.kind {
	case directEncoding:
		for i, l := range e.eqLits {
			if model.ValueLit(l) {
				return e.Values[i]
			}
		}
		return e.Values[0]
	case logEncoding:
		idx := 0
		for b, l := range e.bits {
			if model.ValueLit(l) {
				idx |= 1 << uint(b)
			}
		}
		return e.Values[idx]
	default:
		idx := 0
		for i := 1; i < len(e.Values); i++ {
			if model.ValueLit(e.geLits[i]) {
				idx = i
			}
		}
		return e.Values[idx]
	}
}
