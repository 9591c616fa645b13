package automaton

const (
	// Golden ratio bit mixer.
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) uint64 {
	return uint64(mix32(key))
}

// MurmurHash3算法中的32位最终混合步骤
func mix32(v int) uint32 {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return k ^ (k >> 16)
}

// mixOrdered Folds v into h so that the result depends on the position of v in the sequence.
func mixOrdered(h uint64, v int) uint64 {
	h ^= mix(v) + PHI_C64 + (h << 6) + (h >> 2)
	return h
}
