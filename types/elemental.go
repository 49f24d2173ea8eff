package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// EdgeSet holds undirected edges, [a,b] and [b,a] are the same member
type EdgeSet map[EdgeKey]struct{}

func NewEdgeSet(edges [][2]int) (es EdgeSet) {
	es = make(EdgeSet, len(edges))
	for _, e := range edges {
		es.Add(e)
	}
	return
}

// Add returns false when the edge was already present
func (es EdgeSet) Add(verts [2]int) bool {
	ek := NewEdgeKey(verts)
	if _, ok := es[ek]; ok {
		return false
	}
	es[ek] = struct{}{}
	return true
}

func (es EdgeSet) Has(verts [2]int) bool {
	_, ok := es[NewEdgeKey(verts)]
	return ok
}
