package prize

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type sequenceRandom struct {
	values []float64
	next   int
}

func (r *sequenceRandom) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func Test_Allocator_Select_Distribution(t *testing.T) {
	a := NewAllocator(rand.New(rand.NewSource(42)))

	const draws = 100000
	count := 0
	for i := 0; i < draws; i++ {
		p, err := a.Select([]string{"A", "B"}, []float64{90, 10})
		require.NoError(t, err)
		if p == "A" {
			count++
		}
	}

	require.InDelta(t, 0.9, float64(count)/draws, 0.01)
}

func Test_Allocator_Select(t *testing.T) {
	prizes := []string{"A", "B", "C", "D"}

	tests := []struct {
		name        string
		percentages []float64
		draws       []float64
		want        []string
	}{
		{
			name:        "cumulative boundaries",
			percentages: []float64{10, 20, 30, 40},
			draws:       []float64{0, 0.0999, 0.1001, 0.2999, 0.3001, 0.5999, 0.6001, 0.9999},
			want:        []string{"A", "A", "B", "B", "C", "C", "D", "D"},
		},
		{
			name:        "percentages need not sum to 100",
			percentages: []float64{1, 1, 1, 1},
			draws:       []float64{0.2, 0.3, 0.6, 0.9},
			want:        []string{"A", "B", "C", "D"},
		},
		{
			name:        "missing percentages fall back to uniform",
			percentages: nil,
			draws:       []float64{0.2, 0.3, 0.6, 0.9},
			want:        []string{"A", "B", "C", "D"},
		},
		{
			name:        "mismatched length falls back to uniform",
			percentages: []float64{100, 0},
			draws:       []float64{0.2, 0.3, 0.6, 0.9},
			want:        []string{"A", "B", "C", "D"},
		},
		{
			name:        "all zero falls back to uniform",
			percentages: []float64{0, 0, 0, 0},
			draws:       []float64{0.2, 0.3, 0.6, 0.9},
			want:        []string{"A", "B", "C", "D"},
		},
		{
			name:        "zero weight prizes are never drawn",
			percentages: []float64{0, 50, 0, -20},
			draws:       []float64{0, 0.5, 0.999999},
			want:        []string{"B", "B", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllocator(&sequenceRandom{values: tt.draws})
			for i, want := range tt.want {
				got, err := a.Select(prizes, tt.percentages)
				require.NoError(t, err)
				require.Equal(t, want, got, "draw %d (u=%v)", i, tt.draws[i])
			}
		})
	}
}

func Test_Allocator_Select_NoPrizes(t *testing.T) {
	_, err := NewAllocator(nil).Select(nil, nil)
	require.ErrorIs(t, err, ErrNoPrizes)
}

func Test_Allocator_Select_Concurrent(t *testing.T) {
	a := NewAllocator(rand.New(rand.NewSource(1)))

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p, err := a.Select([]string{"A", "B"}, []float64{50, 50})
				if err != nil {
					p = err.Error()
				}
				results[i] = append(results[i], p)
			}
		}(i)
	}

	wg.Wait()
	for _, r := range results {
		require.Len(t, r, 1000)
		for _, p := range r {
			require.Contains(t, []string{"A", "B"}, p)
		}
	}
}

func Test_Allocator_SecureSource(t *testing.T) {
	a := NewAllocator(nil)
	p, err := a.Select([]string{"only"}, []float64{100})
	require.NoError(t, err)
	require.Equal(t, "only", p)
}

func Test_Weights(t *testing.T) {
	w := Weights(3, []float64{50, 25, 25})
	require.InDeltaSlice(t, []float64{0.5, 0.25, 0.25}, w, 1e-12)

	w = Weights(2, []float64{-5, 10})
	require.InDeltaSlice(t, []float64{0, 1}, w, 1e-12)

	w = Weights(4, nil)
	require.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, w, 1e-12)

	require.Empty(t, Weights(0, nil))
}
