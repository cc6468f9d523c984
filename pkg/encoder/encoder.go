// Package encoder compiles a pkg/normcsp.NormCSP into a satbackend.Backend
// instance: an order-, direct- or log-encoded literal table per integer
// variable, CNF for
// every clause and every structural constraint that admits one, and a list
// of LazyConstraints for the ones that don't (Circuit, ActiveVerticesConnected,
// GraphDivision, CustomConstraint) — checked against each SAT model found and
// strengthened by a blocking clause on violation, the CEGAR loop spec.md §9
// calls for whenever the backend lacks a native propagator hook.
package encoder

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// LazyConstraint is re-checked against every SAT model the backend produces.
// If the model violates it, Check also returns a blocking clause (in terms
// of literals already known to the backend) that rules the violating
// assignment out without ruling out every other solution sharing it.
type LazyConstraint interface {
	Check(model satbackend.Model) (violated bool, blockingClause []satbackend.Lit)
}

// Result is everything pkg/solve needs to drive a compiled instance: the
// backend holding the CNF (and any native propagators it accepted), the
// variable tables for decoding a model back to normalized variables, and the
// constraints that need the lazy check-and-block loop.
type Result struct {
	Backend satbackend.Backend

	BoolVars []satbackend.Var
	IntVars  map[normcsp.NIntVar]*VarEncoding

	Lazy []LazyConstraint
}

// BoolLitOf translates a normcsp.BoolLit to its backend literal.
func (r *Result) BoolLitOf(b normcsp.BoolLit) satbackend.Lit {
	return satbackend.NewLit(r.BoolVars[b.Var], b.Negated)
}

// DecodeBool reports the assigned truth value of a normalized Boolean
// variable under model.
func (r *Result) DecodeBool(model satbackend.Model, v normcsp.NBoolVar) bool {
	return model.Value(r.BoolVars[v])
}

// DecodeInt reports the assigned value of a normalized integer variable
// under model.
func (r *Result) DecodeInt(model satbackend.Model, v normcsp.NIntVar) int32 {
	return r.IntVars[v].DecodeValue(model)
}

type encoder struct {
	norm    *normcsp.NormCSP
	cfg     config.Config
	backend satbackend.Backend

	boolVars []satbackend.Var
	intEnc   map[normcsp.NIntVar]*VarEncoding
	lazy     []LazyConstraint

	trueVar *satbackend.Lit // lazily allocated; see trueLit in linear.go
}

// Encode compiles norm under cfg against a freshly created backend,
// returning a Result ready for pkg/solve. The caller chooses the backend
// (normally satbackend.NewGiniBackend()) so tests can substitute a fake one.
func Encode(norm *normcsp.NormCSP, cfg config.Config, backend satbackend.Backend) (*Result, error) {
	enc := &encoder{
		norm:    norm,
		cfg:     cfg,
		backend: backend,
		intEnc:  make(map[normcsp.NIntVar]*VarEncoding),
	}

	enc.boolVars = make([]satbackend.Var, norm.NumBoolVars())
	for i := range enc.boolVars {
		enc.boolVars[i] = backend.NewVar()
	}
	for i := 0; i < norm.NumIntVars(); i++ {
		enc.varEncodingOf(normcsp.NIntVar(i))
	}

	if seed := cfg.GlucoseRandomSeed; seed != nil {
		backend.SetSeed(*seed)
	}
	backend.SetRndInitAct(cfg.GlucoseRndInitAct)
	backend.SetDumpAnalysisInfo(cfg.DumpAnalysisInfo)

	for _, c := range norm.Clauses() {
		if err := enc.encodeClause(c); err != nil {
			return nil, err
		}
	}
	for _, c := range norm.AllDifferentConstraints() {
		enc.encodeAllDifferent(c)
	}
	for _, c := range norm.ExtensionSupportsConstraints() {
		if err := enc.encodeExtensionSupports(c); err != nil {
			return nil, err
		}
	}
	for _, c := range norm.CircuitConstraints() {
		enc.encodeCircuit(c)
	}
	for _, c := range norm.ActiveVerticesConnectedConstraints() {
		enc.encodeActiveVerticesConnected(c)
	}
	for _, c := range norm.GraphDivisionConstraints() {
		if err := enc.encodeGraphDivision(c); err != nil {
			return nil, err
		}
	}
	for _, c := range norm.CustomConstraints() {
		enc.encodeCustomConstraint(c)
	}

	log.WithFields(log.Fields{
		"satVars":   len(enc.boolVars),
		"intVars":   len(enc.intEnc),
		"lazy":      len(enc.lazy),
		"dimacsVar": backend.NumVars(),
	}).Info("encode: done")

	return &Result{
		Backend:  backend,
		BoolVars: enc.boolVars,
		IntVars:  enc.intEnc,
		Lazy:     enc.lazy,
	}, nil
}

func (enc *encoder) litOf(b normcsp.BoolLit) satbackend.Lit {
	return satbackend.NewLit(enc.boolVars[b.Var], b.Negated)
}

// varEncodingOf returns v's SAT-level encoding, allocating it (order, direct
// or log, per chooseEncoding) the first time v is referenced; Encode
// references every integer variable once up front. A
// BinaryRepresentation variable always gets the order encoding and never
// allocates a fresh variable here; it reuses its Cond literal directly.
func (enc *encoder) varEncodingOf(v normcsp.NIntVar) *VarEncoding {
	if e, ok := enc.intEnc[v]; ok {
		return e
	}

	info := enc.norm.IntVarInfo(v)
	var e *VarEncoding
	switch repr := info.Repr.(type) {
	case normcsp.BinaryRepresentation:
		e = &VarEncoding{
			kind:   orderEncoding,
			Values: []int32{repr.F, repr.T},
			geLits: []satbackend.Lit{0, enc.litOf(normcsp.Lit(repr.Cond))},
		}
	case normcsp.DomainRepresentation:
		vals := repr.Domain.Enumerate()
		switch chooseEncoding(len(vals), enc.cfg) {
		case directEncoding:
			e = enc.buildDirectEncoding(vals)
		case logEncoding:
			e = enc.buildLogEncoding(vals)
		default:
			e = enc.buildOrderEncoding(vals)
		}
	default:
		panic(fmt.Sprintf("encoder: unknown IntVarRepresentation %T", repr))
	}

	enc.intEnc[v] = e
	return e
}

// chooseEncoding picks a representation for a domain of the given size under
// cfg, per spec.md §4.4.1: ForceUseLogEncoding always wins; small domains
// favor direct encoding (one literal and one equality test per value, no
// exactly-one overhead worth paying above domainSize 16); large domains
// favor log encoding when enabled, to keep the variable count logarithmic
// rather than linear in domain size; order encoding is the fallback, since
// it is the only kind usable without either flag set.
func chooseEncoding(domainSize int, cfg config.Config) encodingKind {
	if cfg.ForceUseLogEncoding {
		return logEncoding
	}
	if domainSize == 2 {
		if cfg.DirectEncodingForBinaryVars {
			return directEncoding
		}
		return orderEncoding
	}
	const directEncodingMaxDomain = 16
	if cfg.UseLogEncoding && domainSize > directEncodingMaxDomain {
		return logEncoding
	}
	if cfg.UseDirectEncoding && domainSize <= directEncodingMaxDomain {
		return directEncoding
	}
	return orderEncoding
}

// buildOrderEncoding allocates one literal per non-leading value plus the
// monotonic chain clauses (geLits[i] -> geLits[i-1]) that keep the order
// encoding's literals consistent with a total order over vals.
func (enc *encoder) buildOrderEncoding(vals []int32) *VarEncoding {
	lits := make([]satbackend.Lit, len(vals))
	for i := 1; i < len(vals); i++ {
		lits[i] = satbackend.Pos(enc.backend.NewVar())
	}
	for i := 2; i < len(vals); i++ {
		enc.backend.AddClause([]satbackend.Lit{lits[i].Not(), lits[i-1]})
	}
	return &VarEncoding{kind: orderEncoding, Values: vals, geLits: lits}
}

// buildDirectEncoding allocates one literal per value plus the "at least
// one" and pairwise "at most one" clauses that make eqLits an exactly-one
// family over vals.
func (enc *encoder) buildDirectEncoding(vals []int32) *VarEncoding {
	lits := make([]satbackend.Lit, len(vals))
	for i := range lits {
		lits[i] = satbackend.Pos(enc.backend.NewVar())
	}
	enc.backend.AddClause(append([]satbackend.Lit{}, lits...))
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			enc.backend.AddClause([]satbackend.Lit{lits[i].Not(), lits[j].Not()})
		}
	}
	return &VarEncoding{kind: directEncoding, Values: vals, eqLits: lits}
}

// buildLogEncoding allocates ceil(log2(len(vals))) bits and forbids every
// bit pattern that would denote an index past len(vals)-1, since a binary
// encoding of a non-power-of-two domain always has spare patterns.
func (enc *encoder) buildLogEncoding(vals []int32) *VarEncoding {
	n := len(vals)
	numBits := 0
	for (1 << uint(numBits)) < n {
		numBits++
	}
	bits := make([]satbackend.Lit, numBits)
	for i := range bits {
		bits[i] = satbackend.Pos(enc.backend.NewVar())
	}
	e := &VarEncoding{kind: logEncoding, Values: vals, bits: bits}
	for idx := n; idx < (1 << uint(numBits)); idx++ {
		enc.backend.AddClause(e.NotEqLits(idx))
	}
	return e
}
