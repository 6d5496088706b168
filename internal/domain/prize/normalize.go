package prize

import (
	"math"

	"github.com/dawerha/backend/pkg/errorx"
)

// NormalizeTo100 scales positive raw percentages to integers summing to 100.
//
// Rounding drift is moved onto the first largest entry, then every entry is
// raised to at least 1 and the largest entry absorbs that change once more.
// The second adjustment is a single pass, so with many tiny entries the sum
// can still miss 100.
func NormalizeTo100(raw []float64) ([]int, error) {
	if len(raw) == 0 {
		return nil, errorx.New(errorx.InvalidPrizes, "At least one percentage is required")
	}

	sum := 0.0
	for _, p := range raw {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, errorx.New(errorx.InvalidPrizes, "Every percentage must be a finite number")
		}

		if p <= 0 {
			return nil, errorx.New(errorx.InvalidPrizes, "Every percentage must be positive")
		}

		sum += p
	}

	normalized := make([]int, len(raw))
	for i, p := range raw {
		normalized[i] = int(math.RoundToEven(p / sum * 100))
	}

	if diff := 100 - total(normalized); diff != 0 {
		normalized[largest(normalized)] += diff
	}

	for i := range normalized {
		if normalized[i] < 1 {
			normalized[i] = 1
		}
	}

	if diff := 100 - total(normalized); diff != 0 {
		idx := largest(normalized)
		normalized[idx] += diff
		if normalized[idx] < 1 {
			normalized[idx] = 1
		}
	}

	return normalized, nil
}

// MaxPrizes is the largest prize list in which every prize can still hold
// at least one percent.
const MaxPrizes = 100

// EqualPercentages splits 100 evenly across n prizes; the last prize takes
// the remainder. It returns nil above MaxPrizes, which draws uniformly.
func EqualPercentages(n int) []int {
	if n <= 0 || n > MaxPrizes {
		return nil
	}

	result := make([]int, n)
	for i := range result {
		result[i] = 100 / n
	}

	result[n-1] += 100 - (100/n)*n
	return result
}

func total(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}

	return sum
}

func largest(values []int) int {
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}

	return idx
}
