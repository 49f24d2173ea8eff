package utils

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	if ParallelDegree > maxIndex && maxIndex > 0 {
		ParallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ParallelFor runs f over every index of the partition map, one goroutine per
// bucket, and returns the first error reported by any bucket
func (pm *PartitionMap) ParallelFor(f func(k int) error) error {
	if pm.ParallelDegree == 1 {
		for k := 0; k < pm.MaxIndex; k++ {
			if err := f(k); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		g.Go(func() error {
			for k := kMin; k < kMax; k++ {
				if err := f(k); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

var maxParallelDegree int

// SetMaxParallelDegree caps DefaultParallelDegree, n < 1 restores GOMAXPROCS
func SetMaxParallelDegree(n int) {
	maxParallelDegree = n
}

// DefaultParallelDegree is the number of buckets used when callers do not choose one
func DefaultParallelDegree() int {
	n := runtime.GOMAXPROCS(0)
	if maxParallelDegree > 0 && maxParallelDegree < n {
		n = maxParallelDegree
	}
	return n
}
