package materials

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofea/utils"
)

func assertMatrixEqual(t *testing.T, A, B utils.Matrix, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	nrA, ncA := A.Dims()
	nrB, ncB := B.Dims()
	require.Equal(t, nrA, nrB, msgAndArgs...)
	require.Equal(t, ncA, ncB, msgAndArgs...)
	assert.True(t, floats.EqualApprox(A.Data(), B.Data(), tol), append([]interface{}{"\n%v\n%v"}, A, B)...)
}

func TestKelvinMandel(t *testing.T) {
	voigt := utils.NewMatrix(3, 3, []float64{
		1, 2, 3,
		2, 4, 5,
		3, 5, 6,
	})
	km, err := KelvinMandel(2, voigt)
	require.NoError(t, err)
	assertMatrixEqual(t, utils.NewMatrix(3, 3, []float64{
		1, 2, 3 * math.Sqrt2,
		2, 4, 5 * math.Sqrt2,
		3 * math.Sqrt2, 5 * math.Sqrt2, 12,
	}), km, 1.e-14)
	// Input untouched
	assert.Equal(t, 6., voigt.At(2, 2))

	_, err = KelvinMandel(3, voigt)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = KelvinMandel(4, voigt)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCoordinates(t *testing.T) {
	x, err := AsCoordinates([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2, 0}, x)
	_, err = AsCoordinates([]float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = AsCoordinates([]float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrGeometry)

	n, err := Normalize([3]float64{3, 0, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.6, 0, 0.8}, n[:], 1.e-15)
	_, err = Normalize([3]float64{})
	assert.ErrorIs(t, err, ErrGeometry)

	_, _, err = materialAxes([]float64{1, 0, 0}, []float64{1, 1, 0})
	assert.ErrorIs(t, err, ErrGeometry)
	a1, a2, err := materialAxes([]float64{2, 0}, []float64{0, 0, 5})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 0, 0}, a1)
	assert.Equal(t, [3]float64{0, 0, 1}, a2)
}

func TestRotationOperator(t *testing.T) {
	P, err := RotationOperator([]float64{1, 0, 0}, []float64{0, 1, 0})
	require.NoError(t, err)
	assertMatrixEqual(t, utils.NewIdentity(6), P, 1.e-15)

	for _, axes := range [][2][]float64{
		{{0, 1, 0}, {1, 0, 0}},
		{{1, 1, 0}, {-1, 1, 0}},
		{{1, 2, 3}, {3, 0, -1}},
	} {
		P, err = RotationOperator(axes[0], axes[1])
		require.NoError(t, err)
		// Orthogonal in Kelvin-Mandel space
		assertMatrixEqual(t, utils.NewIdentity(6), P.Mul(P.Transpose()), 1.e-14, axes)
		// The identity tensor is frame independent
		ivect := utils.NewMatrix(6, 1, []float64{1, 1, 1, 0, 0, 0})
		assertMatrixEqual(t, ivect, P.Mul(ivect), 1.e-14, axes)
	}

	// Material xx lands on global yy when axis1 = y
	P, err = RotationOperator([]float64{0, 1, 0}, []float64{1, 0, 0})
	require.NoError(t, err)
	M := utils.NewMatrix(6, 6)
	M.Set(0, 0, 7)
	R := ApplyRotation(P, M)
	assert.InDelta(t, 7, R.At(1, 1), 1.e-14)
	assert.InDelta(t, 0, R.At(0, 0), 1.e-14)

	_, err = RotationOperator([]float64{1, 0, 0}, []float64{1, 0, 0})
	assert.ErrorIs(t, err, ErrGeometry)
}

func TestProjectKelvin(t *testing.T) {
	I := Identity2()
	assertMatrixEqual(t, utils.NewIdentity(6), ProjectKelvin(SymmetricTensorProduct(I, I)), 1.e-15)

	IxI := ProjectKelvin(TensorProduct(I, I))
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i < 3 && j < 3 {
				assert.Equal(t, 1., IxI.At(i, j))
			} else {
				assert.Equal(t, 0., IxI.At(i, j))
			}
		}
	}

	var A Tensor2
	A[0][1], A[1][0] = 2, 2
	assert.InDeltaSlice(t, []float64{0, 0, 2 * math.Sqrt2}, ProjectKelvinVector(2, A), 1.e-15)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0, 2 * math.Sqrt2}, ProjectKelvinVector(3, A), 1.e-15)
}

func TestTransverseBases(t *testing.T) {
	// The bases of a fiber along any axis are idempotent projectors except the coupling term
	for _, n := range [][3]float64{{1, 0, 0}, {0, 0, 1}, {1 / math.Sqrt2, 1 / math.Sqrt2, 0}} {
		E := transverseBases(n)
		require.Len(t, E, 5)
		for _, i := range []int{0, 1, 3, 4} {
			assertMatrixEqual(t, E[i], E[i].Mul(E[i]), 1.e-14, "n = %v, basis %d", n, i)
		}
		sum := utils.NewMatrix(6, 6)
		for _, i := range []int{0, 1, 3, 4} {
			sum.Add(E[i])
		}
		assertMatrixEqual(t, utils.NewIdentity(6), sum, 1.e-14, n)
	}
}
