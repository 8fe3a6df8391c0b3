package solution

import (
	"hash/maphash"
	"math"
)

// bloomFilter is a space-efficient probabilistic membership set used by
// SolutionContext to answer "is job X definitely not assigned" in O(1)
// before falling back to a scan of the routes, cutting work in the hot
// insertion loop (supplemented from
// original_source/vrp-core/src/utils/bloom_filter.rs, generalized from
// the original's two-hasher-builder double hashing to Go's maphash with
// two independent seeds simulating k hash functions).
type bloomFilter struct {
	bits         []uint64
	bitCount     uint64
	hasherCount  int
	seedA, seedB maphash.Seed
}

// newBloomFilter sizes the filter for itemCount elements at false
// positive probability fpp.
func newBloomFilter(itemCount int, fpp float64) *bloomFilter {
	if itemCount < 1 {
		itemCount = 1
	}
	bitCount := uint64(math.Ceil(-math.Log2(fpp) * float64(itemCount) / math.Ln2))
	if bitCount < 64 {
		bitCount = 64
	}
	hasherCount := int(math.Ceil(float64(bitCount) / float64(itemCount) * math.Ln2))
	if hasherCount < 1 {
		hasherCount = 1
	}
	words := (bitCount + 63) / 64
	return &bloomFilter{
		bits:        make([]uint64, words),
		bitCount:    words * 64,
		hasherCount: hasherCount,
		seedA:       maphash.MakeSeed(),
		seedB:       maphash.MakeSeed(),
	}
}

func (b *bloomFilter) hashes(key string) (uint64, uint64) {
	var ha, hb maphash.Hash
	ha.SetSeed(b.seedA)
	hb.SetSeed(b.seedB)
	_, _ = ha.WriteString(key)
	_, _ = hb.WriteString(key)
	return ha.Sum64(), hb.Sum64()
}

// insert adds key's double-hashed bit positions.
func (b *bloomFilter) insert(key string) {
	h1, h2 := b.hashes(key)
	for i := 0; i < b.hasherCount; i++ {
		offset := (h1 + uint64(i)*h2) % b.bitCount
		b.bits[offset/64] |= 1 << (offset % 64)
	}
}

// maybeContains reports whether key is possibly present. false is a
// definitive "not present"; true requires checking the exact index.
func (b *bloomFilter) maybeContains(key string) bool {
	h1, h2 := b.hashes(key)
	for i := 0; i < b.hasherCount; i++ {
		offset := (h1 + uint64(i)*h2) % b.bitCount
		if b.bits[offset/64]&(1<<(offset%64)) == 0 {
			return false
		}
	}
	return true
}
