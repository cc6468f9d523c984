package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/propagators"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// encodeCustomConstraint wires a user propagator into the lazy
// check-and-block loop. It first gives the backend a chance to host it
// natively (SupportsNativePropagators); GiniBackend always declines, so in
// practice this always falls through to the CEGAR adapter.
func (enc *encoder) encodeCustomConstraint(c normcsp.CustomConstraint) {
	prop, ok := c.Propagator.(satbackend.Propagator)
	if !ok {
		panic("encoder: CustomConstraint propagator does not implement satbackend.Propagator")
	}

	inputs := make([]satbackend.Lit, len(c.Inputs))
	for i, b := range c.Inputs {
		inputs[i] = enc.litOf(b)
	}

	if enc.backend.SupportsNativePropagators() {
		if enc.backend.AddCustomConstraint(inputs, nativePropagatorFactory{prop}) {
			return
		}
	}

	enc.lazy = append(enc.lazy, &propagators.CEGARConstraint{Inputs: inputs, Prop: prop})
}

// nativePropagatorFactory adapts an already-built Propagator to the
// PropagatorFactory shape AddCustomConstraint expects, for the (currently
// unused by GiniBackend) case of a backend that can host one directly.
type nativePropagatorFactory struct {
	prop satbackend.Propagator
}

func (f nativePropagatorFactory) Generate([]satbackend.Lit) satbackend.Propagator { return f.prop }
