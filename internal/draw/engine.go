package draw

import (
	"errors"
	"fmt"
	"sort"

	"lotto-picker/internal/constants"
	"lotto-picker/internal/domain"
	"lotto-picker/internal/rng"
)

var (
	ErrInvalidSetCount  = errors.New("draw: set count must be between 1 and the configured maximum")
	ErrInvalidPickSize  = errors.New("draw: pick size must be between 2 and 45")
	ErrInvalidSmoothing = errors.New("draw: smoothing must be non-negative")
	ErrZeroTotalWeight  = errors.New("draw: total sampling weight is zero")
)

// Options tune one Generate call. Zero values fall back to the
// defaults in DefaultOptions.
type Options struct {
	Sets      int
	PickSize  int
	Smoothing int
}

func DefaultOptions() Options {
	return Options{
		Sets:      constants.DefaultDrawSets,
		PickSize:  constants.DefaultPickSize,
		Smoothing: constants.DefaultSmoothing,
	}
}

// Engine generates weighted number sets from a frequency table. It is
// a pure function of the table and its randomness source: no I/O, no
// retained state between calls.
type Engine struct {
	src rng.Source
}

func NewEngine(src rng.Source) *Engine {
	return &Engine{src: src}
}

// Generate produces opts.Sets games. Per game it samples opts.PickSize
// numbers without replacement, each pick proportional to
// count + opts.Smoothing; the first PickSize-1 picks become the sorted
// main numbers and the final pick the bonus. The pool is rebuilt
// between games, so games are independent and may repeat numbers
// across the batch.
//
// A malformed table or non-positive total weight is a programming
// error in the caller's dataset contract and is returned as-is rather
// than degraded.
func (e *Engine) Generate(table domain.FrequencyTable, opts Options) (domain.DrawBatch, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	if opts.Sets < 1 || opts.Sets > constants.MaxDrawSets {
		return nil, ErrInvalidSetCount
	}
	if opts.PickSize < 2 || opts.PickSize > domain.TableSize {
		return nil, ErrInvalidPickSize
	}
	if opts.Smoothing < 0 {
		return nil, ErrInvalidSmoothing
	}

	sorted := table.Clone()
	sorted.SortByNumber()

	numbers := make([]int, len(sorted))
	weights := make([]int64, len(sorted))
	var total int64
	for i, r := range sorted {
		numbers[i] = r.Number
		weights[i] = int64(r.Count + opts.Smoothing)
		total += weights[i]
	}
	if total <= 0 {
		return nil, ErrZeroTotalWeight
	}

	batch := make(domain.DrawBatch, 0, opts.Sets)
	for range opts.Sets {
		picks, err := e.sampleWithoutReplacement(numbers, weights, total, opts.PickSize)
		if err != nil {
			return nil, err
		}

		main := picks[:opts.PickSize-1]
		sort.Ints(main)

		batch = append(batch, domain.DrawResult{
			MainNumbers: main,
			BonusNumber: picks[opts.PickSize-1],
		})
	}

	return batch, nil
}

// sampleWithoutReplacement draws count numbers from a fresh copy of
// the pool, removing each pick so it cannot recur within the set.
// Remaining weights are untouched beyond removal.
func (e *Engine) sampleWithoutReplacement(numbers []int, weights []int64, total int64, count int) ([]int, error) {
	poolNumbers := make([]int, len(numbers))
	poolWeights := make([]int64, len(weights))
	copy(poolNumbers, numbers)
	copy(poolWeights, weights)
	remaining := total

	picks := make([]int, 0, count)
	for range count {
		if remaining <= 0 {
			// reachable only when too many weights are zero to fill
			// the set, e.g. smoothing 0 over a sparse table
			return nil, ErrZeroTotalWeight
		}

		threshold := int64(e.src.Float64() * float64(remaining))
		if threshold >= remaining {
			threshold = remaining - 1
		}

		idx := 0
		var cumulative int64
		for i, w := range poolWeights {
			cumulative += w
			if threshold < cumulative {
				idx = i
				break
			}
		}

		picks = append(picks, poolNumbers[idx])
		remaining -= poolWeights[idx]
		poolNumbers = append(poolNumbers[:idx], poolNumbers[idx+1:]...)
		poolWeights = append(poolWeights[:idx], poolWeights[idx+1:]...)
	}

	return picks, nil
}
