package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	A := NewMatrixFromRows([][]float64{
		{4, 1, 0},
		{1, 3, 0},
		{0, 0, 2},
	})
	nr, nc := A.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 0., A.Asymmetry())
	assert.Equal(t, 0., A.Min())
	assert.Equal(t, 4., A.Max())

	Ainv, err := A.Inverse()
	require.NoError(t, err)
	I := A.Mul(Ainv)
	assert.Less(t, I.RelativeDifference(NewIdentity(3)), 1.e-14)

	_, err = NewMatrix(2, 3).Inverse()
	assert.Error(t, err)
	_, err = NewMatrix(2, 2).Inverse()
	assert.Error(t, err)

	B := A.Copy().Set(0, 1, 5)
	assert.Equal(t, 1., A.At(0, 1))
	assert.Equal(t, 5., B.At(0, 1))
	assert.Greater(t, B.Asymmetry(), 0.)
	assert.Equal(t, 1., B.Transpose().At(0, 1))
	// Negative indices count from the end
	assert.Equal(t, 9., A.Copy().Set(-1, -1, 9).At(2, 2))

	sub := A.SubMatrix(Index{0, 2})
	assert.Equal(t, []float64{4, 0, 0, 2}, sub.Data())
	big := NewMatrix(4, 4).Scatter(Index{3, 1}, sub)
	assert.Equal(t, 4., big.At(3, 3))
	assert.Equal(t, 2., big.At(1, 1))
	assert.Equal(t, 0., big.At(3, 1))

	C := NewIdentity(2).AddScaled(2, NewIdentity(2)).Scale(0.5)
	assert.Equal(t, []float64{1.5, 0, 0, 1.5}, C.Data())
	assert.Equal(t, 1.5, C.AbsMax())
	assert.Contains(t, C.String(), "1.5")

	R := NewMatrix(2, 2)
	R.SetReadOnly("R")
	assert.Panics(t, func() { R.Set(0, 0, 1) })
	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
	assert.Panics(t, func() { NewMatrixFromRows([][]float64{{1, 2}, {3}}) })
}

func TestSparse(t *testing.T) {
	D := NewDOK(4, 4)
	D.SetBlock(2, 2, NewMatrixFromRows([][]float64{{1, 2}, {0, 3}}))
	D.Set(0, 0, 7)
	assert.Equal(t, 4, D.NNZ())
	assert.Panics(t, func() { D.SetBlock(3, 3, NewIdentity(2)) })

	S := D.ToCSR()
	assert.Equal(t, 2., S.At(2, 3))
	assert.Equal(t, 0., S.At(3, 2))
	assert.Equal(t, []float64{7, 0, 3, 3}, S.MulVec([]float64{1, 1, 1, 1}))
	assert.Panics(t, func() { S.MulVec([]float64{1}) })
}

func TestIndex(t *testing.T) {
	assert.True(t, Index{0, 2, 4}.InRange(5))
	assert.False(t, Index{0, 5}.InRange(5))
	assert.False(t, Index{-1}.InRange(5))
	assert.True(t, Index{}.InRange(0))
	assert.Equal(t, Index{3, 5, 4}, Index{3, 5, 4, 3}.Unique())
	assert.Equal(t, Index{0, 1}, Index{0, 0, 1, 1, 0}.Unique())
}
