package utils

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionMap(t *testing.T) {
	{ // Bucket sizes
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		// More buckets than work is clamped
		assert.Equal(t, map[int]int{1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Degree below one runs serially
		pm := NewPartitionMap(0, 10)
		assert.Equal(t, 1, pm.ParallelDegree)
	}
}

func TestParallelFor(t *testing.T) {
	for _, degree := range []int{1, 4, 16} {
		var (
			n     = 1000
			hits  = make([]int32, n)
			count int64
		)
		pm := NewPartitionMap(degree, n)
		require.NoError(t, pm.ParallelFor(func(k int) error {
			atomic.AddInt32(&hits[k], 1)
			atomic.AddInt64(&count, 1)
			return nil
		}))
		assert.Equal(t, int64(n), count)
		for k := range hits {
			assert.Equal(t, int32(1), hits[k])
		}
	}
	errBad := errors.New("bad index")
	pm := NewPartitionMap(4, 100)
	err := pm.ParallelFor(func(k int) error {
		if k == 77 {
			return errBad
		}
		return nil
	})
	assert.ErrorIs(t, err, errBad)
}

func TestDefaultParallelDegree(t *testing.T) {
	defer SetMaxParallelDegree(0)
	assert.Equal(t, runtime.GOMAXPROCS(0), DefaultParallelDegree())
	SetMaxParallelDegree(1)
	assert.Equal(t, 1, DefaultParallelDegree())
}
