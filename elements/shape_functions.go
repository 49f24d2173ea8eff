package elements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
)

type ElementType uint8

const (
	PRISM6 ElementType = iota
	PRISM15
)

var elementNames = map[ElementType]string{
	PRISM6:  "PRISM6",
	PRISM15: "PRISM15",
}

func (et ElementType) String() string {
	if name, ok := elementNames[et]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(%d)", uint8(et))
}

func NewElementType(label string) (et ElementType, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for et, name := range elementNames {
		if name == label {
			return et, nil
		}
	}
	err = fmt.Errorf("%w: %q", ErrUnknownElement, label)
	return
}

// ShapeFunctionSet evaluates the isoparametric basis of one reference element.
// Implementations are stateless and safe for concurrent use.
type ShapeFunctionSet interface {
	Type() ElementType
	NodeCount() int
	Order() int // polynomial degree of the basis
	Origin() [3]float64
	ReferenceNodes() [][3]float64
	Faces() [][]int
	Segments() [][2]int
	Triangles() []int

	Evaluate(r, s, t float64) []float64
	EvaluateGradient(r, s, t float64) utils.Matrix
	EvaluateSecondDerivative(r, s, t float64) (utils.Matrix, error)
	EvaluateThirdDerivative(r, s, t float64) (utils.Matrix, error)
	EvaluateFourthDerivative(r, s, t float64) (utils.Matrix, error)
	Derivative(order int, r, s, t float64) (utils.Matrix, error)
	EvaluatePoints(points [][3]float64) utils.Matrix
}

type basisFunc func(r, s, t float64) float64

func zero(_, _, _ float64) float64 { return 0 }

// derivTable holds one row of partials per basis function:
// d/dr, d/ds, d/dt for order 1 and the pure partials d^k/dr^k, d^k/ds^k, d^k/dt^k above that
type derivTable [][3]basisFunc

type shapeSet struct {
	elementType ElementType
	order       int
	origin      [3]float64
	nodes       [][3]float64
	faces       [][]int
	segments    [][2]int
	triangles   []int
	n           []basisFunc
	derivs      []derivTable // derivs[k-1] holds order k, len(derivs) is the highest supported order
}

func (ss *shapeSet) Type() ElementType  { return ss.elementType }
func (ss *shapeSet) NodeCount() int     { return len(ss.n) }
func (ss *shapeSet) Order() int         { return ss.order }
func (ss *shapeSet) Origin() [3]float64 { return ss.origin }

func (ss *shapeSet) ReferenceNodes() (nodes [][3]float64) {
	nodes = make([][3]float64, len(ss.nodes))
	copy(nodes, ss.nodes)
	return
}

func (ss *shapeSet) Faces() (faces [][]int) {
	faces = make([][]int, len(ss.faces))
	for i, f := range ss.faces {
		faces[i] = append([]int(nil), f...)
	}
	return
}

func (ss *shapeSet) Segments() (segs [][2]int) {
	segs = make([][2]int, len(ss.segments))
	copy(segs, ss.segments)
	return
}

func (ss *shapeSet) Triangles() []int {
	return append([]int(nil), ss.triangles...)
}

func (ss *shapeSet) Evaluate(r, s, t float64) (N []float64) {
	N = make([]float64, len(ss.n))
	for i, f := range ss.n {
		N[i] = f(r, s, t)
	}
	return
}

func (ss *shapeSet) EvaluateGradient(r, s, t float64) utils.Matrix {
	dN, _ := ss.Derivative(1, r, s, t)
	return dN
}

func (ss *shapeSet) EvaluateSecondDerivative(r, s, t float64) (utils.Matrix, error) {
	return ss.Derivative(2, r, s, t)
}

func (ss *shapeSet) EvaluateThirdDerivative(r, s, t float64) (utils.Matrix, error) {
	return ss.Derivative(3, r, s, t)
}

func (ss *shapeSet) EvaluateFourthDerivative(r, s, t float64) (utils.Matrix, error) {
	return ss.Derivative(4, r, s, t)
}

// Derivative returns the NodeCount x 3 matrix of order-th partials, order 0 returns N as a column
func (ss *shapeSet) Derivative(order int, r, s, t float64) (D utils.Matrix, err error) {
	var (
		nn = len(ss.n)
	)
	switch {
	case order == 0:
		D = utils.NewMatrix(nn, 1, ss.Evaluate(r, s, t))
		return
	case order < 0 || order > 4:
		err = fmt.Errorf("%w: %d", ErrInvalidDerivativeOrder, order)
		return
	case order > len(ss.derivs):
		err = fmt.Errorf("%w: %s has no order %d derivatives", ErrUnsupportedDerivative, ss.elementType, order)
		return
	}
	table := ss.derivs[order-1]
	D = utils.NewMatrix(nn, 3)
	for i, row := range table {
		for j, f := range row {
			D.M.Set(i, j, f(r, s, t))
		}
	}
	return
}

// EvaluatePoints stacks N for every point as one row, giving an Npoints x NodeCount matrix
func (ss *shapeSet) EvaluatePoints(points [][3]float64) (V utils.Matrix) {
	V = utils.NewMatrix(len(points), len(ss.n))
	for i, p := range points {
		V.SetRow(i, ss.Evaluate(p[0], p[1], p[2]))
	}
	return
}

// faceCorners returns the distinct corner nodes of each face, in loop order.
// Quadratic records interleave corner and mid-edge nodes, so corners sit at a stride of order.
func faceCorners(faces [][]int, order int) (corners [][]int) {
	corners = make([][]int, len(faces))
	for i, f := range faces {
		var c utils.Index
		for k := 0; k < len(f); k += order {
			c = append(c, f[k])
		}
		corners[i] = c.Unique()
	}
	return
}

// fanTriangles splits every face into a fan of triangles anchored at its first corner
func fanTriangles(faces [][]int, order int) (tris []int) {
	for _, c := range faceCorners(faces, order) {
		for k := 1; k+1 < len(c); k++ {
			tris = append(tris, c[0], c[k], c[k+1])
		}
	}
	return
}

// CheckTopology verifies that the static tables of a shape are consistent
func CheckTopology(ss ShapeFunctionSet) (err error) {
	var (
		nn    = ss.NodeCount()
		segs  = ss.Segments()
		nodes = ss.ReferenceNodes()
	)
	if len(nodes) != nn {
		return fmt.Errorf("%s: %d reference nodes for %d shape functions", ss.Type(), len(nodes), nn)
	}
	edges := types.EdgeSet{}
	for _, seg := range segs {
		if !utils.Index(seg[:]).InRange(nn) {
			return fmt.Errorf("%s: segment %v out of range", ss.Type(), seg)
		}
		if !edges.Add(seg) {
			return fmt.Errorf("%s: duplicate segment %v", ss.Type(), types.NewEdgeKey(seg).GetVertices(false))
		}
	}
	faces := ss.Faces()
	for i, f := range faces {
		if !utils.Index(f).InRange(nn) {
			return fmt.Errorf("%s: face %d = %v out of range", ss.Type(), i, f)
		}
	}
	var faceEdges [][2]int
	for i, c := range faceCorners(faces, ss.Order()) {
		for k := range c {
			e := [2]int{c[k], c[(k+1)%len(c)]}
			if !edges.Has(e) {
				return fmt.Errorf("%s: face %d edge %v is not a segment", ss.Type(), i, e)
			}
			faceEdges = append(faceEdges, e)
		}
	}
	// Every segment bounds at least one face
	onFace := types.NewEdgeSet(faceEdges)
	for _, seg := range segs {
		if !onFace.Has(seg) {
			return fmt.Errorf("%s: segment %v is on no face", ss.Type(), seg)
		}
	}
	tris := ss.Triangles()
	if len(tris)%3 != 0 || !utils.Index(tris).InRange(nn) {
		return fmt.Errorf("%s: malformed triangle table %v", ss.Type(), tris)
	}
	return
}

var factory = make(map[ElementType]ShapeFunctionSet)

func register(ss *shapeSet) {
	if ss.triangles == nil {
		ss.triangles = fanTriangles(ss.faces, ss.order)
	}
	if err := CheckTopology(ss); err != nil {
		panic(err)
	}
	factory[ss.elementType] = ss
}

// Get returns the shape function set of an element type
func Get(et ElementType) (ss ShapeFunctionSet, err error) {
	var ok bool
	if ss, ok = factory[et]; !ok {
		err = fmt.Errorf("%w: %s", ErrUnknownElement, et)
	}
	return
}

// GetByName looks a shape up by its label, e.g. "prism15"
func GetByName(label string) (ss ShapeFunctionSet, err error) {
	var et ElementType
	if et, err = NewElementType(label); err != nil {
		return
	}
	return Get(et)
}

// Names lists the registered element labels in sorted order
func Names() (names []string) {
	for et := range factory {
		names = append(names, et.String())
	}
	sort.Strings(names)
	return
}
