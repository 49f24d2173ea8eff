package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// SetBlock copies the dense block A into the receiver with its top left corner at (i0, j0).
// Zero entries are skipped to keep the sparsity pattern tight.
func (m DOK) SetBlock(i0, j0 int, A Matrix) DOK { // Changes receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	m.checkWritable()
	if i0 < 0 || j0 < 0 || i0+nrA > nr || j0+ncA > nc {
		panic(fmt.Errorf("block of size %dx%d at (%d,%d) does not fit in %dx%d matrix", nrA, ncA, i0, j0, nr, nc))
	}
	for i := 0; i < nrA; i++ {
		for j := 0; j < ncA; j++ {
			if val := A.At(i, j); val != 0 {
				m.M.Set(i0+i, j0+j, val)
			}
		}
	}
	return m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

// MulVec returns the product of the receiver with the column vector x
func (m CSR) MulVec(x []float64) (y []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		panic(fmt.Errorf("dimension mismatch: matrix has %d columns, vector has %d entries", nc, len(x)))
	}
	yV := mat.NewVecDense(nr, nil)
	yV.MulVec(m.M, mat.NewVecDense(nc, x))
	y = yV.RawVector().Data
	return
}
