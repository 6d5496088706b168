package crypto

import (
	"crypto/rand"
	"math/big"
)

var float64Span = big.NewInt(1 << 53)

// Rand draws from crypto/rand. Its zero value is ready to use and safe for
// concurrent use.
type Rand struct{}

// Float64 returns a uniform value in [0, 1).
func (Rand) Float64() float64 {
	return float64(randInt(float64Span)) / (1 << 53)
}

// randInt returns a uniform random value in [0, max). It panics if got a
// non-positive parameter.
func randInt(max *big.Int) int64 {
	r, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}

	return r.Int64()
}
