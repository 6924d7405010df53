package random

import (
	"crypto/rand"
	"math/big"
)

// IntRange returns a uniform integer in [lo, hi] drawn from crypto/rand.
func IntRange(lo, hi int) (int, error) {
	if hi < lo {
		lo, hi = hi, lo
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, err
	}
	return lo + int(n.Int64()), nil
}
