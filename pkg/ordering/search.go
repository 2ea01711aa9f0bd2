package ordering

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Options configures the randomized local search.
type Options struct {
	// MaxIterations bounds the number of search iterations. Defaults to 100.
	MaxIterations int

	// Samples is the number of swap candidates evaluated per iteration.
	// Defaults to 20.
	Samples int

	// Patience stops the search after this many consecutive iterations
	// without improvement. Zero disables early stopping.
	Patience int

	// Seed makes the search reproducible: the same inputs and seed always
	// walk the same trace.
	Seed uint64

	// Workers sets how many goroutines evaluate candidates concurrently.
	// Values below 2 evaluate sequentially. Parallelism never changes the
	// result, only the wall time.
	Workers int

	// Progress, when set, is called after every iteration with the current
	// best score.
	Progress func(iteration int, best float64)
}

const (
	defaultMaxIterations = 100
	defaultSamples       = 20
)

// Entry is one accepted step of a search trace.
type Entry struct {
	Iteration int      `json:"iteration"`
	Ordering  []string `json:"ordering"`
	Score     float64  `json:"score"`
}

// Trace records the improvement history of one search run. Entries are
// appended only when the score strictly improves, so scores are strictly
// increasing and the last entry is the best ordering found. A trace with a
// single entry means the initial ordering was never beaten.
type Trace struct {
	RunID   string  `json:"run_id"`
	Entries []Entry `json:"entries"`
}

// Best returns the final, highest-scoring entry.
func (t *Trace) Best() Entry {
	return t.Entries[len(t.Entries)-1]
}

// Optimize improves an anchor ordering by seeded randomized local search.
// Each iteration draws Samples candidates from the swap neighborhood of the
// current best ordering, scores them, and accepts the best candidate if it
// strictly beats the incumbent. Ties among equally scored candidates go to
// the first one drawn, which keeps runs reproducible.
//
// The initial ordering is always scored and recorded as iteration 0, so the
// returned trace is never empty. Optimize returns ctx.Err alongside the
// partial trace when the context is canceled mid-search.
func Optimize(ctx context.Context, scorer Scorer, initial []string, opts Options) (*Trace, error) {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	if opts.Samples <= 0 {
		opts.Samples = defaultSamples
	}

	score, err := scorer.Score(initial)
	if err != nil {
		return nil, err
	}

	best := slices.Clone(initial)
	trace := &Trace{
		RunID:   uuid.NewString(),
		Entries: []Entry{{Iteration: 0, Ordering: slices.Clone(initial), Score: score}},
	}
	if len(initial) < 2 {
		return trace, nil // nothing to swap
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	bestScore := score
	stale := 0

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return trace, err
		}

		// Candidates are drawn before any evaluation so the random stream,
		// and therefore the run, is independent of worker count.
		candidates := make([][]string, opts.Samples)
		for i := range candidates {
			candidates[i] = swapped(rng, best)
		}

		scores, err := evaluate(scorer, candidates, opts.Workers)
		if err != nil {
			return nil, err
		}

		pick := -1
		pickScore := bestScore
		for i, s := range scores {
			if s > pickScore {
				pick = i
				pickScore = s
			}
		}

		if pick >= 0 {
			best = candidates[pick]
			bestScore = pickScore
			stale = 0
			trace.Entries = append(trace.Entries, Entry{
				Iteration: iter,
				Ordering:  slices.Clone(best),
				Score:     bestScore,
			})
		} else {
			stale++
		}

		if opts.Progress != nil {
			opts.Progress(iter, bestScore)
		}
		if opts.Patience > 0 && stale >= opts.Patience {
			break
		}
	}
	return trace, nil
}

// swapped returns a copy of ordering with one random pair exchanged.
func swapped(rng *rand.Rand, ordering []string) []string {
	out := slices.Clone(ordering)
	i := rng.IntN(len(out))
	j := rng.IntN(len(out) - 1)
	if j >= i {
		j++
	}
	out[i], out[j] = out[j], out[i]
	return out
}

// evaluate scores every candidate, fanning out across workers when asked.
// Results land in a slice indexed like candidates, so selection order never
// depends on goroutine scheduling.
func evaluate(scorer Scorer, candidates [][]string, workers int) ([]float64, error) {
	scores := make([]float64, len(candidates))
	if workers < 2 {
		for i, cand := range candidates {
			s, err := scorer.Score(cand)
			if err != nil {
				return nil, err
			}
			scores[i] = s
		}
		return scores, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s, err := scorer.Score(candidates[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				scores[i] = s
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return scores, nil
}
