package materials

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
)

// Batch holds one matrix per material point, a uniform material is a batch of one
type Batch []utils.Matrix

// Inversions below this many entries run on the calling goroutine
const parallelBatchThreshold = 256

func newBatch(n, size int, fill func(k int, M utils.Matrix)) (B Batch) {
	B = make(Batch, n)
	for k := range B {
		B[k] = utils.NewMatrix(size, size)
		fill(k, B[k])
	}
	return
}

func (B Batch) Len() int { return len(B) }

func (B Batch) IsHeterogeneous() bool { return len(B) > 1 }

// At broadcasts a batch of one to every point
func (B Batch) At(k int) utils.Matrix {
	if len(B) == 1 {
		return B[0]
	}
	return B[k]
}

func (B Batch) Copy() (R Batch) {
	R = make(Batch, len(B))
	for k, M := range B {
		R[k] = M.Copy()
	}
	return
}

// Dims returns the dimensions shared by every entry
func (B Batch) Dims() (nr, nc int) {
	if len(B) == 0 {
		return
	}
	return B[0].Dims()
}

func (B Batch) checkSquare(size int) error {
	if len(B) == 0 {
		return fmt.Errorf("%w: empty matrix batch", ErrShapeMismatch)
	}
	for k, M := range B {
		if nr, nc := M.Dims(); nr != size || nc != size {
			return fmt.Errorf("%w: entry %d is %dx%d, expected %dx%d", ErrShapeMismatch, k, nr, nc, size, size)
		}
	}
	return nil
}

// Inverse inverts every entry independently, large batches are split over goroutines
func (B Batch) Inverse() (R Batch, err error) {
	var (
		n      = len(B)
		degree = 1
	)
	if n >= parallelBatchThreshold {
		degree = utils.DefaultParallelDegree()
	}
	R = make(Batch, n)
	pm := utils.NewPartitionMap(degree, n)
	err = pm.ParallelFor(func(k int) (err error) {
		var inv utils.Matrix
		if inv, err = B[k].Inverse(); err != nil {
			return fmt.Errorf("%w: batch entry %d: %v", ErrSingular, k, err)
		}
		if !utils.AllFinite(inv.Data()) {
			return fmt.Errorf("%w: batch entry %d has non finite inverse", ErrSingular, k)
		}
		R[k] = inv
		return
	})
	if err != nil {
		R = nil
	}
	return
}

// SubMatrix gathers the rows and columns I of every entry
func (B Batch) SubMatrix(I utils.Index) (R Batch) {
	R = make(Batch, len(B))
	for k, M := range B {
		R[k] = M.SubMatrix(I)
	}
	return
}

// MaxRelativeDifference is the largest |B_k - A_k| / |A_k| over the batch
func (B Batch) MaxRelativeDifference(A Batch) (maxDiff float64) {
	for k := range B {
		d := B[k].RelativeDifference(A.At(k))
		if math.IsNaN(d) {
			return d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return
}

// BlockDiagonal lays the batch out as a sparse block diagonal operator, entry k
// occupying rows and columns [k*size, (k+1)*size). An assembler multiplies it with the
// stacked per-point strain vectors.
func (B Batch) BlockDiagonal() (R utils.CSR) {
	var (
		n, _ = B.Dims()
		N    = n * len(B)
	)
	D := utils.NewDOK(N, N)
	for k, M := range B {
		D.SetBlock(k*n, k*n, M)
	}
	R = D.ToCSR()
	return
}
