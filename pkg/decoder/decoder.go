// Package decoder turns a satbackend.Model — a raw SAT assignment — back
// into values of the original pkg/csp variables, and drives the irrefutable-
// facts search: for each answer-key Boolean or integer variable, repeated forcing
// solves that determine whether every solution agrees on its value.
//
// Normalizing a csp.CSP allocates exactly one normcsp.NBoolVar per
// csp.BoolVar and one normcsp.NIntVar per csp.IntVar, in original-index
// order, before anything else (pkg/normalizer.Normalize's variable-creation
// loop runs before any Stmt is processed); every later auxiliary variable is
// appended afterward. So csp.BoolVar(i) and csp.IntVar(i) always correspond
// to normcsp.NBoolVar(i) and normcsp.NIntVar(i) — no separate mapping table
// needs to survive the normalizer call.
package decoder

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/encoder"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// Model is a decoded assignment of every original variable of a CSP.
type Model struct {
	bools []bool
	ints  []int32
}

// Bool returns v's assigned value.
func (m *Model) Bool(v csp.BoolVar) bool { return m.bools[v] }

// Int returns v's assigned value.
func (m *Model) Int(v csp.IntVar) int32 { return m.ints[v] }

// Decode reads every original variable's value for c out of satModel,
// using res's variable tables.
func Decode(c *csp.CSP, res *encoder.Result, satModel satbackend.Model) *Model {
	m := &Model{
		bools: make([]bool, c.NumBoolVars()),
		ints:  make([]int32, c.NumIntVars()),
	}
	for i := range m.bools {
		m.bools[i] = res.DecodeBool(satModel, normcsp.NBoolVar(i))
	}
	for i := range m.ints {
		m.ints[i] = res.DecodeInt(satModel, normcsp.NIntVar(i))
	}
	return m
}

// solveWithLazy runs res.Backend.Solve() and, if satisfied, checks every
// entry of res.Lazy against the model; any violation adds a blocking clause
// and triggers a re-solve. It is the one search loop every top-level solve
// and fact query goes through, so Circuit/ActiveVerticesConnected/
// GraphDivision/CustomConstraint are enforced exactly the same way whether
// this call came from pkg/solve's main entry point or an irrefutable-facts
// probe. The backend drops assumptions after each Solve, so assumptions are
// re-applied before every round.
func solveWithLazy(res *encoder.Result, assumptions ...satbackend.Lit) (satbackend.Model, bool) {
	for round := 1; ; round++ {
		if len(assumptions) > 0 {
			res.Backend.Assume(assumptions...)
		}
		model, ok := res.Backend.Solve()
		if !ok {
			log.WithField("round", round).Debug("solve: backend reports unsatisfiable")
			return nil, false
		}
		violated := false
		for _, lz := range res.Lazy {
			if bad, blocking := lz.Check(model); bad {
				violated = true
				log.WithFields(log.Fields{"round": round, "blockingLits": len(blocking)}).
					Debug("solve: lazy constraint violated, adding blocking clause")
				res.Backend.AddClause(blocking)
			}
		}
		if !violated {
			if round > 1 {
				log.WithField("rounds", round).Debug("solve: CEGAR loop converged")
			}
			return model, true
		}
	}
}

// SolveWithLazy is the exported entry point pkg/solve uses; it exists
// separately from the lower-case helper so package boundaries stay clean
// even though both are needed here (IrrefutableFacts and IrrefutableIntFacts
// both call the search loop, and pkg/solve needs it too for its first solve).
func SolveWithLazy(res *encoder.Result) (satbackend.Model, bool) {
	return solveWithLazy(res)
}

// IrrefutableFacts determines, for each variable in answerVars, whether
// every satisfying assignment agrees on its value: it solves once to get a
// baseline, then for each variable re-solves with that variable's polarity
// forced to the opposite of the baseline model. UNSAT means the baseline
// value was forced; SAT means both polarities are witnessed and the
// variable is not a fact.
func IrrefutableFacts(res *encoder.Result, answerVars []csp.BoolVar) (map[csp.BoolVar]bool, error) {
	log.WithField("answerVars", len(answerVars)).Info("irrefutable-facts: start")
	baseline, ok := solveWithLazy(res)
	if !ok {
		log.Warn("irrefutable-facts: baseline instance is unsatisfiable")
		return nil, fmt.Errorf("decoder: instance is unsatisfiable")
	}

	facts := make(map[csp.BoolVar]bool)
	for _, v := range answerVars {
		want := res.DecodeBool(baseline, normcsp.NBoolVar(v))
		forced := res.BoolVars[normcsp.NBoolVar(v)]
		opposite := satOpposite(forced, want)

		if _, ok := solveWithLazy(res, opposite); !ok {
			facts[v] = want
		}
	}
	log.WithFields(log.Fields{"answerVars": len(answerVars), "forced": len(facts)}).Info("irrefutable-facts: done")
	return facts, nil
}

// IrrefutableIntFacts is IrrefutableFacts' integer-variable counterpart
// (spec.md §4.5, "for integer variables, re-run per candidate value (or per
// order-encoding bracket) as needed"): it solves once for a baseline value
// of each variable in answerVars, then re-solves once per remaining
// candidate value with that bracket's equality literals assumed. A variable
// is a fact only if every other candidate is unreachable.
func IrrefutableIntFacts(res *encoder.Result, answerVars []csp.IntVar) (map[csp.IntVar]int32, error) {
	log.WithField("answerVars", len(answerVars)).Info("irrefutable-int-facts: start")
	baseline, ok := solveWithLazy(res)
	if !ok {
		log.Warn("irrefutable-int-facts: baseline instance is unsatisfiable")
		return nil, fmt.Errorf("decoder: instance is unsatisfiable")
	}

	facts := make(map[csp.IntVar]int32)
vars:
	for _, v := range answerVars {
		ve := res.IntVars[normcsp.NIntVar(v)]
		want := ve.DecodeValue(baseline)
		wantIdx := ve.IndexOf(want)

		for idx := range ve.Values {
			if idx == wantIdx {
				continue
			}
			if _, ok := solveWithLazy(res, ve.EqLits(idx)...); ok {
				continue vars
			}
		}
		facts[v] = want
	}
	log.WithFields(log.Fields{"answerVars": len(answerVars), "forced": len(facts)}).Info("irrefutable-int-facts: done")
	return facts, nil
}

func satOpposite(v satbackend.Var, want bool) satbackend.Lit {
	if want {
		return satbackend.Neg(v)
	}
	return satbackend.Pos(v)
}
