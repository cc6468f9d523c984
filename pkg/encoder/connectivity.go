package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// connectedComponents groups n vertices into connected components given a
// same-component predicate over edges, via plain union-find.
func connectedComponents(n int, edges []normcsp.Edge, sameComponent func(e normcsp.Edge) bool) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, e := range edges {
		if !sameComponent(e) {
			continue
		}
		ru, rv := find(e.U), find(e.V)
		if ru != rv {
			parent[ru] = rv
		}
	}
	comp := make([]int, n)
	for i := range comp {
		comp[i] = find(i)
	}
	return comp
}

// encodeActiveVerticesConnected registers a lazy check: the subgraph induced
// by vertices whose Active literal holds must be a single connected
// component (or empty). No CNF equivalent of "connected" exists without an
// auxiliary flow/potential encoding, so this constraint is entirely driven
// by the lazy check-and-block loop.
func (enc *encoder) encodeActiveVerticesConnected(c normcsp.ActiveVerticesConnectedConstraint) {
	enc.lazy = append(enc.lazy, &activeConnectedLazy{
		active: c.Active,
		edges:  c.Edges,
		result: enc,
	})
}

type activeConnectedLazy struct {
	active []normcsp.BoolLit
	edges  []normcsp.Edge
	result *encoder
}

func (lz *activeConnectedLazy) Check(model satbackend.Model) (bool, []satbackend.Lit) {
	n := len(lz.active)
	activeLits := make([]satbackend.Lit, n)
	isActive := make([]bool, n)
	anyActive := false
	for i, b := range lz.active {
		activeLits[i] = lz.result.litOf(b)
		isActive[i] = model.ValueLit(activeLits[i])
		anyActive = anyActive || isActive[i]
	}
	if !anyActive {
		return false, nil
	}

	comp := connectedComponents(n, lz.edges, func(e normcsp.Edge) bool {
		return isActive[e.U] && isActive[e.V]
	})

	root, rootVertex := -1, -1
	for i := 0; i < n; i++ {
		if isActive[i] {
			root, rootVertex = comp[i], i
			break
		}
	}
	violatedComponent := -1
	for i := 0; i < n; i++ {
		if isActive[i] && comp[i] != root {
			violatedComponent = comp[i]
			break
		}
	}
	if violatedComponent < 0 {
		return false, nil
	}

	inC := func(v int) bool { return isActive[v] && comp[v] == violatedComponent }
	blocking := []satbackend.Lit{activeLits[rootVertex].Not()}
	for v := 0; v < n; v++ {
		if inC(v) {
			blocking = append(blocking, activeLits[v].Not())
		}
	}
	for _, e := range lz.edges {
		switch {
		case inC(e.U) && !inC(e.V):
			blocking = append(blocking, activeLits[e.V])
		case inC(e.V) && !inC(e.U):
			blocking = append(blocking, activeLits[e.U])
		}
	}
	return true, blocking
}
