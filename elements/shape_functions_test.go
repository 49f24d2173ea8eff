package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// samplePoints returns points inside and on the boundary of the reference prism
func samplePoints() (pts [][3]float64) {
	for _, t := range []float64{-1, -0.6, 0, 0.35, 1} {
		for _, rs := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.2, 0.3}, {0.5, 0.5}, {0.1, 0.7}, {1. / 3, 1. / 3}} {
			pts = append(pts, [3]float64{rs[0], rs[1], t})
		}
	}
	return
}

func allShapes(t *testing.T) (shapes []ShapeFunctionSet) {
	for _, et := range []ElementType{PRISM6, PRISM15} {
		ss, err := Get(et)
		require.NoError(t, err)
		shapes = append(shapes, ss)
	}
	return
}

func TestPrismKronecker(t *testing.T) {
	for _, ss := range allShapes(t) {
		assert.Less(t, KroneckerResidual(ss), 1.e-14, ss.Type().String())
	}
	ss, err := Get(PRISM6)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0}, ss.Evaluate(0, 0, -1))
	assert.Equal(t, [3]float64{0, 0, -1}, ss.Origin())
	assert.Equal(t, 6, ss.NodeCount())

	ss, err = Get(PRISM15)
	require.NoError(t, err)
	assert.Equal(t, 15, ss.NodeCount())
	assert.Equal(t, [3]float64{0, 0, -1}, ss.Origin())
	N := ss.Evaluate(0.5, 0.5, 1) // node 14
	for i, val := range N {
		if i == 14 {
			assert.InDelta(t, 1, val, 1.e-15)
		} else {
			assert.InDelta(t, 0, val, 1.e-15)
		}
	}
}

func TestPrismPartitionOfUnity(t *testing.T) {
	for _, ss := range allShapes(t) {
		for _, p := range samplePoints() {
			assert.Less(t, PartitionResidual(ss, p[0], p[1], p[2]), 1.e-14, "%s at %v", ss.Type(), p)
		}
	}
}

func TestPrismGradient(t *testing.T) {
	for _, ss := range allShapes(t) {
		for _, p := range samplePoints() {
			dN := ss.EvaluateGradient(p[0], p[1], p[2])
			nr, nc := dN.Dims()
			assert.Equal(t, ss.NodeCount(), nr)
			assert.Equal(t, 3, nc)
			assert.Less(t, GradientResidual(ss, p[0], p[1], p[2]), 1.e-6, "%s at %v", ss.Type(), p)
			// Gradients of a partition of unity sum to zero
			for j := 0; j < 3; j++ {
				var sum float64
				for i := 0; i < nr; i++ {
					sum += dN.At(i, j)
				}
				assert.InDelta(t, 0, sum, 1.e-13)
			}
		}
	}
}

func TestPrismSecondDerivative(t *testing.T) {
	{ // Linear prism: valid and identically zero
		ss, err := Get(PRISM6)
		require.NoError(t, err)
		for _, p := range samplePoints() {
			ddN, err := ss.EvaluateSecondDerivative(p[0], p[1], p[2])
			require.NoError(t, err)
			nr, nc := ddN.Dims()
			assert.Equal(t, 6, nr)
			assert.Equal(t, 3, nc)
			assert.Equal(t, 0., ddN.AbsMax())
		}
	}
	{ // Quadratic prism
		ss, err := Get(PRISM15)
		require.NoError(t, err)
		for _, p := range samplePoints() {
			res, err := SecondDerivativeResidual(ss, p[0], p[1], p[2])
			require.NoError(t, err)
			assert.Less(t, res, 1.e-6, "at %v", p)
		}
		ddN, err := ss.EvaluateSecondDerivative(0.2, 0.3, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, 1.-0.2-0.3, ddN.At(0, 2), 1.e-15)
		assert.InDelta(t, 4*0.5-4, ddN.At(6, 0), 1.e-15)
	}
}

func TestPrismUnsupportedDerivatives(t *testing.T) {
	for _, ss := range allShapes(t) {
		_, err := ss.EvaluateThirdDerivative(0.1, 0.1, 0)
		assert.ErrorIs(t, err, ErrUnsupportedDerivative)
		_, err = ss.EvaluateFourthDerivative(0.1, 0.1, 0)
		assert.ErrorIs(t, err, ErrUnsupportedDerivative)
		_, err = ss.Derivative(5, 0.1, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidDerivativeOrder)
		_, err = ss.Derivative(-1, 0.1, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidDerivativeOrder)

		N, err := ss.Derivative(0, 0.1, 0.2, 0.3)
		require.NoError(t, err)
		assert.Equal(t, ss.Evaluate(0.1, 0.2, 0.3), N.Data())
	}
}

func TestPrismTopology(t *testing.T) {
	for _, ss := range allShapes(t) {
		require.NoError(t, CheckTopology(ss))
		assert.Len(t, ss.Faces(), 5)
		assert.Len(t, ss.Segments(), 9)
		assert.Len(t, ss.ReferenceNodes(), ss.NodeCount())
		// Three quads split in two, two triangles
		assert.Len(t, ss.Triangles(), 3*8)
	}
	ss, err := Get(PRISM6)
	require.NoError(t, err)
	assert.Equal(t, []int{
		0, 3, 4, 0, 4, 1,
		0, 2, 5, 0, 5, 3,
		1, 4, 5, 1, 5, 2,
		3, 5, 4,
		0, 1, 2,
	}, ss.Triangles())

	q, err := Get(PRISM15)
	require.NoError(t, err)
	assert.Equal(t, ss.Triangles(), q.Triangles())
	assert.Equal(t, []int{3, 13, 5, 14, 4, 12, 3, 3}, q.Faces()[3])

	// Accessors hand out copies
	faces := ss.Faces()
	faces[0][0] = 99
	assert.Equal(t, 0, ss.Faces()[0][0])
	nodes := ss.ReferenceNodes()
	nodes[0][2] = 42
	assert.Equal(t, -1., ss.ReferenceNodes()[0][2])

	{ // Broken tables are reported
		p := newPrism6()
		p.segments = [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {0, 3}, {1, 4}, {2, 5}, {2, 1}}
		err = CheckTopology(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate segment [1 2]")

		p = newPrism6()
		p.segments = [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {0, 3}, {1, 4}, {2, 5}, {0, 4}}
		err = CheckTopology(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "segment [0 4] is on no face")

		p = newPrism6()
		p.segments = [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {0, 3}, {1, 4}}
		err = CheckTopology(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a segment")

		p = newPrism6()
		p.segments = [][2]int{{0, 6}}
		err = CheckTopology(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"PRISM15", "PRISM6"}, Names())
	ss, err := GetByName(" prism15 ")
	require.NoError(t, err)
	assert.Equal(t, PRISM15, ss.Type())
	_, err = GetByName("hexa8")
	assert.ErrorIs(t, err, ErrUnknownElement)
	_, err = Get(ElementType(42))
	assert.ErrorIs(t, err, ErrUnknownElement)
	assert.Equal(t, "ElementType(42)", ElementType(42).String())
}

func TestEvaluatePoints(t *testing.T) {
	ss, err := Get(PRISM15)
	require.NoError(t, err)
	V := ss.EvaluatePoints(ss.ReferenceNodes())
	nr, nc := V.Dims()
	assert.Equal(t, 15, nr)
	assert.Equal(t, 15, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if i == j {
				assert.InDelta(t, 1, V.At(i, j), 1.e-15)
			} else {
				assert.InDelta(t, 0, V.At(i, j), 1.e-15)
			}
		}
	}
}
