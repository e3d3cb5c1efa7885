package fountain

import "sort"

// chooseDegree draws a mixture degree in [1, seqLen] from a distribution
// weighted by 1/d, so low degrees (fewer fragments XORed together) are
// drawn far more often than high ones — the shape that makes the rateless
// tail converge quickly in practice (spec.md §4.2).
func chooseDegree(rng *xoshiro256ss, seqLen int) int {
	if seqLen <= 1 {
		return seqLen
	}
	weights := make([]float64, seqLen)
	sum := 0.0
	for d := 1; d <= seqLen; d++ {
		w := 1.0 / float64(d)
		weights[d-1] = w
		sum += w
	}
	r := rng.nextDouble() * sum
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i + 1
		}
	}
	return seqLen
}

// chooseIndices Fisher-Yates shuffles 0..seqLen-1 with rng and returns the
// first degree indices in ascending order.
func chooseIndices(rng *xoshiro256ss, seqLen, degree int) []int {
	idx := make([]int, seqLen)
	for i := range idx {
		idx[i] = i
	}
	for i := seqLen - 1; i > 0; i-- {
		j := rng.nextInt(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	chosen := append([]int(nil), idx[:degree]...)
	sort.Ints(chosen)
	return chosen
}

// indices returns the fragment indices mixed into part seqNum (1-based) of
// a seqLen-fragment message identified by checksum. Parts 1..seqLen are
// pure fragments (index seqNum-1 alone); every later part is a
// pseudorandom degree-weighted mixture reproducible from the same inputs.
func indices(checksum uint32, seqLen, seqNum int) []int {
	if seqNum <= seqLen {
		return []int{seqNum - 1}
	}
	seed := createSeed(checksum, seqNum)
	rng := newXoshiro256ss(seed)
	degree := chooseDegree(rng, seqLen)
	return chooseIndices(rng, seqLen, degree)
}
