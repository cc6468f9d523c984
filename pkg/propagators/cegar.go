// Package propagators drives a CustomConstraint's user-supplied Propagator
// on a backend that lacks a native incremental-propagation hook (spec.md
// §9, "Backend unavailability"). Since satbackend.GiniBackend reports
// SupportsNativePropagators() == false, pkg/encoder never attaches the
// propagator to the solver directly; instead it wraps one of these in a
// CEGARConstraint and checks it against every model the solver finds,
// simulating a single full run of Initialize/Propagate over the model's
// already-settled input values and asking CalcReason for a clause to learn
// when that simulation finds a contradiction.
package propagators

import "github.com/semiexp/cspuz-core-sub001/pkg/satbackend"

// CEGARConstraint adapts a satbackend.Propagator to the check-and-block
// loop pkg/decoder runs after every SAT call. It satisfies pkg/encoder's
// LazyConstraint interface structurally (same Check signature), so this
// package does not import pkg/encoder (pkg/encoder imports this one).
type CEGARConstraint struct {
	Inputs []satbackend.Lit
	Prop   satbackend.Propagator
}

// Check reports whether model violates the propagator's constraint and, if
// so, a clause that forbids this particular resolution of the conflict.
func (c *CEGARConstraint) Check(model satbackend.Model) (bool, []satbackend.Lit) {
	host := &simHost{model: model}

	if !c.Prop.Initialize(host) {
		return true, c.fallbackBlock(model)
	}

	for _, lit := range c.Inputs {
		assigned := lit
		if !model.ValueLit(lit) {
			assigned = lit.Not()
		}
		if c.Prop.Propagate(host, assigned, 0) {
			continue
		}
		if reason := c.Prop.CalcReason(host, &assigned, nil); len(reason) > 0 {
			return true, reason
		}
		return true, c.fallbackBlock(model)
	}

	return false, nil
}

// fallbackBlock forbids exactly the input assignment the model produced,
// used when the propagator signals a conflict without explaining it via
// CalcReason.
func (c *CEGARConstraint) fallbackBlock(model satbackend.Model) []satbackend.Lit {
	blocking := make([]satbackend.Lit, len(c.Inputs))
	for i, lit := range c.Inputs {
		if model.ValueLit(lit) {
			blocking[i] = lit.Not()
		} else {
			blocking[i] = lit
		}
	}
	return blocking
}

// simHost implements satbackend.PropagatorHost against a single already-
// complete model: every query answers from that fixed assignment, watches
// are accepted and ignored (there is no later propagation phase to fire
// them), and every literal counts as assigned at the current level since
// there is only one level in a post-hoc check.
type simHost struct {
	model satbackend.Model
}

func (h *simHost) Value(lit satbackend.Lit) (bool, bool) {
	return h.model.ValueLit(lit), true
}

func (h *simHost) AddWatch(satbackend.Lit) {}

func (h *simHost) Enqueue(satbackend.Lit) bool { return true }

func (h *simHost) IsCurrentLevel(satbackend.Lit) bool { return true }
