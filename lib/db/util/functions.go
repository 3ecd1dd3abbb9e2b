package util

// --------------------------------------------------------------------------
// Hash Functions
// --------------------------------------------------------------------------

// polyMultiplier is the multiplier of the polynomial string hash
const polyMultiplier = 31

// PolyHash computes the polynomial hash of a string: starting from 0, the code
// point c of every character of the key is folded in as acc = c + acc*31. The
// accumulator is an unsigned 32-bit integer and wraps on overflow, so long keys
// are fine. Invalid UTF-8 bytes count as utf8.RuneError.
// The hash is deterministic and not salted. The empty string hashes to 0.
func PolyHash(key string) uint32 {
	var acc uint32
	for _, r := range key {
		acc = uint32(r) + acc*polyMultiplier
	}
	return acc
}

// BucketIndex maps a key to a bucket in a table with n buckets.
// n must be positive.
func BucketIndex(key string, n int) int {
	return int(PolyHash(key) % uint32(n))
}
