package prize

import (
	"errors"
	"sync"

	"github.com/dawerha/backend/pkg/crypto"
)

var ErrNoPrizes = errors.New("no prizes to draw from")

// Random is the source of the uniform draw in [0, 1). *math/rand.Rand
// satisfies it, which makes draws reproducible in tests.
type Random interface {
	Float64() float64
}

// Allocator draws prizes with probabilities proportional to their
// configured percentages.
type Allocator struct {
	mutex sync.Mutex
	rnd   Random
}

// NewAllocator uses rnd for every draw. A nil rnd selects a cryptographically
// secure source.
func NewAllocator(rnd Random) *Allocator {
	if rnd == nil {
		rnd = crypto.Rand{}
	}

	return &Allocator{rnd: rnd}
}

// Select draws one of prizes. When percentages is nil or its length differs
// from prizes every prize is equally likely, as it is when no percentage is
// positive.
func (a *Allocator) Select(prizes []string, percentages []float64) (string, error) {
	if len(prizes) == 0 {
		return "", ErrNoPrizes
	}

	weights := Weights(len(prizes), percentages)

	a.mutex.Lock()
	u := a.rnd.Float64()
	a.mutex.Unlock()

	return prizes[pick(weights, u)], nil
}

// Weights returns the probability of each of n prizes. The result always
// sums to 1 within floating point error.
func Weights(n int, percentages []float64) []float64 {
	weights := make([]float64, n)
	if n == 0 {
		return weights
	}

	if len(percentages) != n {
		return uniform(weights)
	}

	total := 0.0
	for i, p := range percentages {
		if p > 0 {
			weights[i] = p / 100
			total += weights[i]
		}
	}

	if total <= 0 {
		return uniform(weights)
	}

	for i := range weights {
		weights[i] /= total
	}

	return weights
}

func uniform(weights []float64) []float64 {
	for i := range weights {
		weights[i] = 1 / float64(len(weights))
	}

	return weights
}

// pick maps u in [0, 1) onto the cumulative distribution of weights. The last
// index with a positive weight absorbs rounding at the top end.
func pick(weights []float64, u float64) int {
	last := 0
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}

		acc += w
		last = i
		if u < acc {
			return i
		}
	}

	return last
}
