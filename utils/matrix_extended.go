package utils

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// NewMatrixFromRows copies a row-major [][]float64 into a new Matrix
func NewMatrixFromRows(rows [][]float64) (R Matrix) {
	var (
		nr = len(rows)
		nc int
	)
	if nr != 0 {
		nc = len(rows[0])
	}
	R = NewMatrix(nr, nc)
	for i, row := range rows {
		if len(row) != nc {
			panic(fmt.Errorf("ragged input: row %d has %d columns, expected %d", i, len(row), nc))
		}
		R.M.SetRow(i, row)
	}
	return
}

func NewIdentity(n int) (R Matrix) {
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.M.Set(i, i, 1)
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

// Chainable methods (extended)
func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, m.Data())
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	R.M.Copy(m.M.T())
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

// SubMatrix gathers the rows and columns listed in I from a square matrix
func (m Matrix) SubMatrix(I Index) (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		nI     = len(I)
	)
	R = NewMatrix(nI, nI)
	for ii, i := range I {
		if i < 0 || i >= nr {
			panic(fmt.Errorf("index out of bounds: index = %d, max_bounds = %d", i, nr-1))
		}
		for jj, j := range I {
			if j < 0 || j >= nc {
				panic(fmt.Errorf("index out of bounds: index = %d, max_bounds = %d", j, nc-1))
			}
			R.M.Set(ii, jj, m.M.At(i, j))
		}
	}
	return
}

// Scatter places the entries of A into the rows and columns I of the receiver
func (m Matrix) Scatter(I Index, A Matrix) Matrix { // Changes receiver
	m.checkWritable()
	for ii, i := range I {
		for jj, j := range I {
			m.M.Set(i, j, A.At(ii, jj))
		}
	}
	return m
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	i, j = lim(i, nr), lim(j, nc)
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	var (
		nr, _ = m.Dims()
	)
	i = lim(i, nr)
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	var (
		dataM = m.Data()
		dataA = A.Data()
	)
	m.checkWritable()
	for i, val := range dataA {
		dataM[i] += val
	}
	return m
}

func (m Matrix) Subtract(a Matrix) Matrix { // Changes receiver
	var (
		data  = m.Data()
		dataA = a.Data()
	)
	m.checkWritable()
	for i := range data {
		data[i] -= dataA[i]
	}
	return m
}

func (m Matrix) AddScaled(a float64, A Matrix) Matrix { // Changes receiver
	var (
		dataM = m.Data()
		dataA = A.Data()
	)
	m.checkWritable()
	for i, val := range dataA {
		dataM[i] += a * val
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.Data()
	)
	m.checkWritable()
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("unable to invert, matrix is not square: %d x %d", nr, nc)
		return
	}
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

// Norm is the Frobenius norm
func (m Matrix) Norm() float64 {
	return mat.Norm(m.M, 2)
}

// RelativeDifference returns |m - A| / |A| in the Frobenius norm
func (m Matrix) RelativeDifference(A Matrix) float64 {
	var (
		diff = m.Copy().Subtract(A)
		den  = A.Norm()
	)
	if den == 0 {
		return diff.Norm()
	}
	return diff.Norm() / den
}

// Asymmetry returns |m^T - m| / |m|
func (m Matrix) Asymmetry() float64 {
	return m.Transpose().RelativeDifference(m)
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.Data()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.Data()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) AbsMax() (max float64) {
	for _, val := range m.Data() {
		if math.Abs(val) > max {
			max = math.Abs(val)
		}
	}
	return
}

func (m Matrix) String() string {
	var (
		nr, nc = m.Dims()
		sb     strings.Builder
	)
	for i := 0; i < nr; i++ {
		sb.WriteString("[")
		for j := 0; j < nc; j++ {
			fmt.Fprintf(&sb, "%14.6g", m.M.At(i, j))
		}
		sb.WriteString(" ]\n")
	}
	return sb.String()
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Support indexing from end, -1 is imax
	}
	return i
}
