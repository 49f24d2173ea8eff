package materials

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
	"gonum.org/v1/gonum/floats"
)

/*
Kelvin-Mandel ordering of a symmetric second order tensor:

	3D: [xx, yy, zz, sqrt(2)*yz, sqrt(2)*xz, sqrt(2)*xy]
	2D: [xx, yy, sqrt(2)*xy]

With this scaling the euclidean norm of the vector is the Frobenius norm of the tensor,
and matrix products are tensor contractions.
*/
var (
	kmPairs3D = [6][2]int{{0, 0}, {1, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	kmPairs2D = [3][2]int{{0, 0}, {1, 1}, {0, 1}}
	// Kelvin-Mandel indices of the in-plane components xx, yy, xy inside the 3D ordering
	planeIndex = utils.Index{0, 1, 5}
)

// Coef is the Kelvin-Mandel shear scaling
const Coef = math.Sqrt2

func matrixSize(dim int) int {
	if dim == 2 {
		return 3
	}
	return 6
}

func kmWeights(dim int) (w []float64) {
	if dim == 2 {
		return []float64{1, 1, math.Sqrt2}
	}
	return []float64{1, 1, 1, math.Sqrt2, math.Sqrt2, math.Sqrt2}
}

// KelvinMandel converts a Voigt stiffness matrix to Kelvin-Mandel form by scaling
// shear rows and columns by sqrt(2)
func KelvinMandel(dim int, voigt utils.Matrix) (R utils.Matrix, err error) {
	var (
		size   = matrixSize(dim)
		nr, nc = voigt.Dims()
		w      = kmWeights(dim)
	)
	if dim != 2 && dim != 3 {
		err = fmt.Errorf("%w: dimension %d", ErrShapeMismatch, dim)
		return
	}
	if nr != size || nc != size {
		err = fmt.Errorf("%w: %dD Voigt matrix must be %dx%d, have %dx%d", ErrShapeMismatch, dim, size, size, nr, nc)
		return
	}
	R = voigt.Copy()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			R.M.Set(i, j, R.M.At(i, j)*w[i]*w[j])
		}
	}
	return
}

func kelvinMandelBatch(dim int, voigt Batch) (R Batch, err error) {
	R = make(Batch, len(voigt))
	for k, M := range voigt {
		if R[k], err = KelvinMandel(dim, M); err != nil {
			return nil, err
		}
	}
	return
}

// AsCoordinates validates a 2D or 3D vector and returns it as a 3D vector, 2D input gets z = 0
func AsCoordinates(v []float64) (x [3]float64, err error) {
	switch len(v) {
	case 2, 3:
		copy(x[:], v)
	default:
		err = fmt.Errorf("%w: a coordinate vector needs 2 or 3 components, have %d", ErrShapeMismatch, len(v))
		return
	}
	if !utils.AllFinite(x[:]) {
		err = fmt.Errorf("%w: non finite coordinates %v", ErrGeometry, v)
	}
	return
}

func Normalize(v [3]float64) (n [3]float64, err error) {
	norm := floats.Norm(v[:], 2)
	if norm == 0 {
		err = fmt.Errorf("%w: zero length axis", ErrGeometry)
		return
	}
	for i := range v {
		n[i] = v[i] / norm
	}
	return
}

func dot(a, b [3]float64) float64 { return floats.Dot(a[:], b[:]) }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// materialAxes coerces, normalizes and checks orthogonality of a pair of axes
func materialAxes(axis1, axis2 []float64) (a1, a2 [3]float64, err error) {
	for i, v := range [][]float64{axis1, axis2} {
		var x [3]float64
		if x, err = AsCoordinates(v); err != nil {
			return
		}
		if x, err = Normalize(x); err != nil {
			return
		}
		if i == 0 {
			a1 = x
		} else {
			a2 = x
		}
	}
	if d := math.Abs(dot(a1, a2)); !(d <= Tolerance) {
		err = fmt.Errorf("%w: axes %v and %v are not perpendicular, |a1.a2| = %.3e", ErrGeometry, axis1, axis2, d)
	}
	return
}

func isDefaultFrame(a1, a2 [3]float64) bool {
	return floats.Distance(a1[:], []float64{1, 0, 0}, 2) <= Tolerance &&
		floats.Distance(a2[:], []float64{0, 1, 0}, 2) <= Tolerance
}

// RotationOperator returns the 6x6 Kelvin-Mandel operator P that maps tensor components
// in the material frame [a1, a2, a1 x a2] to the global frame: x_global = P x_material.
// P is orthogonal, so a stiffness rotates as P C P^T.
func RotationOperator(axis1, axis2 []float64) (P utils.Matrix, err error) {
	var (
		a1, a2 [3]float64
	)
	if a1, a2, err = materialAxes(axis1, axis2); err != nil {
		return
	}
	P = rotationOperator(a1, a2)
	return
}

func rotationOperator(a1, a2 [3]float64) (P utils.Matrix) {
	var (
		a3 = cross(a1, a2)
		// columns of p are the material axes expressed in global components
		p = [3][3]float64{
			{a1[0], a2[0], a3[0]},
			{a1[1], a2[1], a3[1]},
			{a1[2], a2[2], a3[2]},
		}
		w = kmWeights(3)
	)
	P = utils.NewMatrix(6, 6)
	for J, pj := range kmPairs3D {
		// unit Kelvin-Mandel basis tensor J rotated to the global frame: p B_J p^T
		var B, R [3][3]float64
		if pj[0] == pj[1] {
			B[pj[0]][pj[1]] = 1
		} else {
			B[pj[0]][pj[1]] = 1 / math.Sqrt2
			B[pj[1]][pj[0]] = 1 / math.Sqrt2
		}
		for i := 0; i < 3; i++ {
			for l := 0; l < 3; l++ {
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						R[i][l] += p[i][a] * B[a][b] * p[l][b]
					}
				}
			}
		}
		for I, pi := range kmPairs3D {
			P.M.Set(I, J, w[I]*R[pi[0]][pi[1]])
		}
	}
	return
}

// ApplyRotation returns P M P^T
func ApplyRotation(P, M utils.Matrix) utils.Matrix {
	return P.Mul(M).Mul(P.Transpose())
}

func applyRotationBatch(P utils.Matrix, B Batch) (R Batch) {
	R = make(Batch, len(B))
	for k, M := range B {
		R[k] = ApplyRotation(P, M)
	}
	return
}

// embedPlane places a 3x3 in-plane Kelvin-Mandel matrix at the xx, yy, xy slots of a 6x6
func embedPlane(M utils.Matrix) utils.Matrix {
	return utils.NewMatrix(6, 6).Scatter(planeIndex, M)
}

// Tensor2 and Tensor4 are full second and fourth order tensors in 3D
type Tensor2 [3][3]float64
type Tensor4 [3][3][3][3]float64

func Identity2() (I Tensor2) {
	for i := 0; i < 3; i++ {
		I[i][i] = 1
	}
	return
}

// Outer returns n (x) n
func Outer(n [3]float64) (A Tensor2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j] = n[i] * n[j]
		}
	}
	return
}

func (A Tensor2) Sub(B Tensor2) (R Tensor2) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = A[i][j] - B[i][j]
		}
	}
	return
}

// TensorProduct returns T_ijkl = A_ij B_kl
func TensorProduct(A, B Tensor2) (T Tensor4) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					T[i][j][k][l] = A[i][j] * B[k][l]
				}
			}
		}
	}
	return
}

// SymmetricTensorProduct returns T_ijkl = (A_ik B_jl + A_il B_jk) / 2
func SymmetricTensorProduct(A, B Tensor2) (T Tensor4) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					T[i][j][k][l] = (A[i][k]*B[j][l] + A[i][l]*B[j][k]) / 2
				}
			}
		}
	}
	return
}

// ProjectKelvin returns the 6x6 Kelvin-Mandel matrix of a fourth order tensor with minor symmetries
func ProjectKelvin(T Tensor4) (M utils.Matrix) {
	var (
		w = kmWeights(3)
	)
	M = utils.NewMatrix(6, 6)
	for I, pi := range kmPairs3D {
		for J, pj := range kmPairs3D {
			M.M.Set(I, J, w[I]*w[J]*T[pi[0]][pi[1]][pj[0]][pj[1]])
		}
	}
	return
}

// ProjectKelvinVector returns the Kelvin-Mandel vector of a symmetric tensor, in 2D only xx, yy, xy are kept
func ProjectKelvinVector(dim int, A Tensor2) (v []float64) {
	var (
		w = kmWeights(dim)
	)
	if dim == 2 {
		v = make([]float64, 3)
		for I, pi := range kmPairs2D {
			v[I] = w[I] * A[pi[0]][pi[1]]
		}
		return
	}
	v = make([]float64, 6)
	for I, pi := range kmPairs3D {
		v[I] = w[I] * A[pi[0]][pi[1]]
	}
	return
}
