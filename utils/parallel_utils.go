package utils

import (
	"math"
	"sync"
)

// Comm couples the workers of one data-parallel run. Workers are goroutines
// identified by rank in [0, NP). Every collective below is a synchronous
// barrier-like operation: each worker must call it the same number of times
// in the same order.
type Comm struct {
	NP int

	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation int

	fScratch []float64
	bScratch []bool
	eScratch [][]MatrixEntry
}

func NewComm(NP int) (c *Comm) {
	c = &Comm{
		NP:       NP,
		fScratch: make([]float64, NP),
		bScratch: make([]bool, NP),
		eScratch: make([][]MatrixEntry, NP),
	}
	c.cond = sync.NewCond(&c.mu)
	return
}

// Barrier blocks until all NP workers have entered it.
func (c *Comm) Barrier() {
	c.mu.Lock()
	gen := c.generation
	c.arrived++
	if c.arrived == c.NP {
		c.arrived = 0
		c.generation++
		c.cond.Broadcast()
	} else {
		for gen == c.generation {
			c.cond.Wait()
		}
	}
	c.mu.Unlock()
}

// AllReduceSum sums v across all workers; every worker receives the total.
// The reduction order is rank order on every worker, so the result is
// bitwise identical everywhere.
func (c *Comm) AllReduceSum(rank int, v float64) (sum float64) {
	c.fScratch[rank] = v
	c.Barrier()
	for _, val := range c.fScratch {
		sum += val
	}
	c.Barrier()
	return
}

// AllReduceMax returns the maximum of v across all workers.
func (c *Comm) AllReduceMax(rank int, v float64) (max float64) {
	c.fScratch[rank] = v
	c.Barrier()
	max = -math.MaxFloat64
	for _, val := range c.fScratch {
		if val > max {
			max = val
		}
	}
	c.Barrier()
	return
}

// AllReduceOr is the logical-OR reduction used for globally agreed sparsity
// membership.
func (c *Comm) AllReduceOr(rank int, b bool) (or bool) {
	c.bScratch[rank] = b
	c.Barrier()
	for _, val := range c.bScratch {
		or = or || val
	}
	c.Barrier()
	return
}

// AllGatherEntries concatenates per-worker sparse matrix contributions in
// rank order; every worker receives the full list.
func (c *Comm) AllGatherEntries(rank int, entries []MatrixEntry) (all []MatrixEntry) {
	c.eScratch[rank] = entries
	c.Barrier()
	for _, list := range c.eScratch {
		all = append(all, list...)
	}
	c.Barrier()
	return
}

// PartitionMap splits MaxIndex items into ParallelDegree contiguous buckets
// with a maximum imbalance of one item.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of each bucket
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
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

func (pm *PartitionMap) Split1D(bucketNum int) (bucket [2]int) {
	var (
		Npart            = pm.MaxIndex / pm.ParallelDegree
		remainder        = pm.MaxIndex % pm.ParallelDegree
		startAdd, endAdd int
	)
	if remainder != 0 { // spread the remainder over the first buckets evenly
		if bucketNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = bucketNum
			endAdd = 1
		}
	}
	bucket[0] = bucketNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) (size int) {
	return pm.Partitions[bucketNum][1] - pm.Partitions[bucketNum][0]
}

// GetBucket locates the bucket containing index kDim.
func (pm *PartitionMap) GetBucket(kDim int) (bucketNum int) {
	// Initial guess assuming near-even distribution
	bucketNum = int(float64(pm.ParallelDegree*kDim) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= kDim && kDim < pm.Partitions[bucketNum][1]) {
		if pm.Partitions[bucketNum][0] > kDim {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return -1
		}
	}
	return
}
