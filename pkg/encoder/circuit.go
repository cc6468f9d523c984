package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// encodeCircuit compiles the permutation part of a Hamiltonian-cycle
// constraint directly to CNF (no self-loops, all successors distinct) and
// registers a circuitLazy that rejects any model whose successor function
// decomposes into more than one cycle, the classic lazy subtour-elimination
// pattern: cheap to state, but only checkable after a candidate model
// exists, since the illegal subtours are not known in advance.
func (enc *encoder) encodeCircuit(c normcsp.CircuitConstraint) {
	n := len(c.Vars)
	encs := make([]*VarEncoding, n)
	for i, v := range c.Vars {
		encs[i] = enc.varEncodingOf(v)
		if idx := encs[i].IndexOf(int32(i)); idx >= 0 {
			enc.backend.AddClause(encs[i].NotEqLits(idx))
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			enc.assertNotEqual(c.Vars[i], c.Vars[j])
		}
	}

	enc.lazy = append(enc.lazy, &circuitLazy{vars: c.Vars, encs: encs})
}

type circuitLazy struct {
	vars []normcsp.NIntVar
	encs []*VarEncoding
}

func (lz *circuitLazy) Check(model satbackend.Model) (bool, []satbackend.Lit) {
	n := len(lz.vars)
	succ := make([]int32, n)
	for i, e := range lz.encs {
		succ[i] = e.DecodeValue(model)
	}

	visited := make([]bool, n)
	cur := int32(0)
	count := 0
	for !visited[cur] {
		visited[cur] = true
		count++
		cur = succ[cur]
	}
	if count == n {
		return false, nil
	}

	var blocking []satbackend.Lit
	for i := 0; i < n; i++ {
		if !visited[i] {
			continue
		}
		idx := lz.encs[i].IndexOf(succ[i])
		blocking = append(blocking, lz.encs[i].NotEqLits(idx)...)
	}
	return true, blocking
}
