package encoder

import (
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// encodeGraphDivision registers a lazy check for a size-constrained graph
// partition: EdgeLits[i] true means that edge's endpoints lie in the same
// region. Regions are exactly the connected components of the
// EdgeLits-true subgraph; a region containing a clued vertex (SizesSet[i])
// must have the size that vertex's Sizes variable takes in the model, and
// (when RequireTree holds) must use exactly size-1 same-region edges, i.e.
// contain no redundant same-region edge closing a cycle.
func (enc *encoder) encodeGraphDivision(c normcsp.GraphDivisionConstraint) error {
	sizeEncs := make(map[int]*VarEncoding, len(c.Sizes))
	for i, set := range c.SizesSet {
		if set {
			sizeEncs[i] = enc.varEncodingOf(c.Sizes[i])
		}
	}
	edgeLits := make([]satbackend.Lit, len(c.EdgeLits))
	for i, b := range c.EdgeLits {
		edgeLits[i] = enc.litOf(b)
	}

	enc.lazy = append(enc.lazy, &graphDivisionLazy{
		c:         c,
		edgeLits:  edgeLits,
		sizeEncs:  sizeEncs,
	})
	return nil
}

type graphDivisionLazy struct {
	c        normcsp.GraphDivisionConstraint
	edgeLits []satbackend.Lit
	sizeEncs map[int]*VarEncoding
}

func (lz *graphDivisionLazy) Check(model satbackend.Model) (bool, []satbackend.Lit) {
	c := lz.c
	n := len(c.SizesSet)
	edgeOn := make([]bool, len(c.Edges))
	for i := range c.Edges {
		edgeOn[i] = model.ValueLit(lz.edgeLits[i])
	}

	comp := connectedComponents(n, c.Edges, func(e normcsp.Edge) bool {
		for i, ed := range c.Edges {
			if ed == e {
				return edgeOn[i]
			}
		}
		return false
	})

	size := make(map[int]int)
	for v := 0; v < n; v++ {
		size[comp[v]]++
	}

	// Size mismatch: a clued vertex's region size must match its Sizes
	// variable's assigned value.
	for v := 0; v < n; v++ {
		enc, ok := lz.sizeEncs[v]
		if !ok {
			continue
		}
		want := enc.DecodeValue(model)
		if int32(size[comp[v]]) == want {
			continue
		}
		wantIdx := enc.IndexOf(want)
		var blocking []satbackend.Lit
		blocking = append(blocking, enc.NotEqLits(wantIdx)...)
		for i, ed := range c.Edges {
			uIn, vIn := comp[ed.U] == comp[v], comp[ed.V] == comp[v]
			switch {
			case edgeOn[i] && (uIn || vIn):
				blocking = append(blocking, lz.edgeLits[i].Not())
			case !edgeOn[i] && (uIn || vIn):
				// This edge sits on the region's boundary and is currently
				// off; turning it on would grow or merge the region, so
				// offer that as an alternative resolution too — without it,
				// an isolated clued vertex with no internal edges yields an
				// empty blocking clause that dead-ends the search instead of
				// ever trying to connect it to a neighbor.
				blocking = append(blocking, lz.edgeLits[i])
			}
		}
		return true, blocking
	}

	if c.RequireTree {
		edgeCount := make(map[int]int)
		for i, ed := range c.Edges {
			if edgeOn[i] {
				edgeCount[comp[ed.U]]++
			}
		}
		for root, cnt := range edgeCount {
			if cnt > size[root]-1 {
				var blocking []satbackend.Lit
				for i, ed := range c.Edges {
					if edgeOn[i] && comp[ed.U] == root {
						blocking = append(blocking, lz.edgeLits[i].Not())
					}
				}
				return true, blocking
			}
		}
	}

	if !c.AllowBlankRegion {
		hasClue := make(map[int]bool)
		for v := 0; v < n; v++ {
			if _, ok := lz.sizeEncs[v]; ok {
				hasClue[comp[v]] = true
			}
		}
		for v := 0; v < n; v++ {
			if hasClue[comp[v]] {
				continue
			}
			var blocking []satbackend.Lit
			for i, ed := range c.Edges {
				if ed.U == v || ed.V == v {
					blocking = append(blocking, lz.edgeLits[i])
				}
			}
			if len(blocking) > 0 {
				return true, blocking
			}
		}
	}

	return false, nil
}
