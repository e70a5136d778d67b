package mining

import (
	"context"
	"math"
	"time"

	"github.com/YuminosukeSato/basketmine/core/model"
	"github.com/YuminosukeSato/basketmine/core/parallel"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"github.com/YuminosukeSato/basketmine/pkg/log"
	"github.com/YuminosukeSato/basketmine/preprocessing"
)

const (
	// DefaultMinSupport matches mlxtend's apriori default.
	DefaultMinSupport = 0.5

	// DefaultParallelThreshold is the candidate count at which a level is
	// split across workers.
	DefaultParallelThreshold = 256

	// cancelCheckEvery is how many candidates a worker counts between
	// context checks.
	cancelCheckEvery = 64
)

// Apriori mines frequent itemsets level by level.
//
// Level k+1 candidates are joined from level k itemsets that share their
// first k-1 items, pruned when any k-subset is not frequent, and counted by
// intersecting the two parents' transaction id sets.
type Apriori struct {
	state *model.StateManager

	minSupport        float64
	maxLen            int
	nJobs             int
	parallelThreshold int
	logger            log.Logger

	result *FrequentItemsets
}

var _ model.Fitted = (*Apriori)(nil)

// NewApriori creates a new Apriori miner
//
// Example:
//
//	ap := mining.NewApriori(mining.WithMinSupport(0.05), mining.WithNJobs(-1))
//	fi, err := ap.Fit(ctx, encoded)
func NewApriori(opts ...Option) *Apriori {
	a := &Apriori{
		state:             model.NewStateManager(),
		minSupport:        DefaultMinSupport,
		nJobs:             1,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.GetLoggerWithName("mining.apriori")
	}
	return a
}

// MinSupport returns the configured threshold.
func (a *Apriori) MinSupport() float64 {
	return a.minSupport
}

// IsFitted reports whether Fit has completed.
func (a *Apriori) IsFitted() bool {
	return a.state.IsFitted()
}

// Result returns the itemsets of the last Fit.
func (a *Apriori) Result() (*FrequentItemsets, error) {
	if err := a.state.RequireFitted("Apriori", "Result"); err != nil {
		return nil, err
	}
	return a.result, nil
}

// Validate checks the configured parameters without mining.
func (a *Apriori) Validate() error {
	if math.IsNaN(a.minSupport) || a.minSupport <= 0 || a.minSupport > 1 {
		return errors.NewValidationError("min_support", "must be in (0, 1]", a.minSupport)
	}
	if a.maxLen < 0 {
		return errors.NewValidationError("max_len", "must be >= 0 (0 means unlimited)", a.maxLen)
	}
	if a.nJobs == 0 || a.nJobs < -1 {
		return errors.NewValidationError("n_jobs", "must be -1 or a positive worker count", a.nJobs)
	}
	return nil
}

// node is a frequent itemset together with its transaction ids, kept only
// while the next level is being built.
type node struct {
	items []int
	tids  preprocessing.TIDSet
	count int
}

// candidate joins prev[left] and prev[right].
type candidate struct {
	items       []int
	left, right int
}

// Fit mines every itemset whose support is at least the threshold.
//
// Invalid parameters return a ValidationError. Empty input is not an error:
// the result is empty with StatusEmptyInput. When ctx ends between or during
// levels, the completed levels are returned with StatusCancelled and a nil
// error.
func (a *Apriori) Fit(ctx context.Context, enc *preprocessing.Encoded) (fi *FrequentItemsets, err error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.NewValueError("Apriori.Fit", "encoded transactions are nil")
	}

	start := time.Now()
	n := enc.NumTransactions()
	workers := parallel.Workers(a.nJobs)
	logger := a.logger.With(log.OperationKey, log.OperationFit)
	result := newFrequentItemsets(enc.Vocabulary(), n, a.minSupport)

	a.state.Reset()
	defer func() {
		if err != nil {
			logger.Error("mining failed", err)
			return
		}
		a.result = result
		a.state.SetFitted(n, enc.NumItems())
		logger.Info("mining complete",
			log.MinSupportKey, a.minSupport,
			log.TransactionsKey, n,
			log.ItemsKey, enc.NumItems(),
			log.FrequentKey, result.Len(),
			log.StatusKey, result.status.String(),
			log.WorkersKey, workers,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}()

	if n == 0 || enc.NumItems() == 0 {
		result.status = StatusEmptyInput
		return result, nil
	}
	if ctx.Err() != nil {
		result.status = StatusCancelled
		return result, nil
	}

	prev := a.firstLevel(enc)
	if len(prev) == 0 {
		return result, nil
	}
	result.addLevel(a.toItemsets(prev, n))
	logger.Debug("level complete", log.LevelKey, 1, log.CandidatesKey, enc.NumItems(), log.FrequentKey, len(prev))

	for k := 2; a.maxLen == 0 || k <= a.maxLen; k++ {
		if ctx.Err() != nil {
			result.status = StatusCancelled
			return result, nil
		}

		cands, pruned := generate(prev, result.index[k-2])
		if len(cands) == 0 {
			break
		}

		next, err := a.count(ctx, prev, cands, n, workers)
		if err != nil {
			if ctx.Err() != nil {
				result.status = StatusCancelled
				return result, nil
			}
			return nil, errors.NewModelError("Apriori.Fit", "support counting", err)
		}
		logger.Debug("level complete",
			log.LevelKey, k,
			log.CandidatesKey, len(cands),
			log.PrunedKey, pruned,
			log.FrequentKey, len(next),
		)
		if len(next) == 0 {
			break
		}
		result.addLevel(a.toItemsets(next, n))
		prev = next
	}
	return result, nil
}

func (a *Apriori) frequent(count, n int) bool {
	return float64(count)/float64(n) >= a.minSupport
}

func (a *Apriori) firstLevel(enc *preprocessing.Encoded) []node {
	n := enc.NumTransactions()
	level := make([]node, 0, enc.NumItems())
	for item := 0; item < enc.NumItems(); item++ {
		tids := enc.TIDs(item)
		c := tids.Count()
		if a.frequent(c, n) {
			level = append(level, node{items: []int{item}, tids: tids, count: c})
		}
	}
	return level
}

func (a *Apriori) toItemsets(level []node, n int) []Itemset {
	out := make([]Itemset, len(level))
	for i, nd := range level {
		out[i] = Itemset{Items: nd.items, Count: nd.count, Support: float64(nd.count) / float64(n)}
	}
	return out
}

// generate joins pairs of prev that share all but their last item and drops
// candidates with an infrequent subset. prev is sorted, so itemsets sharing a
// prefix are adjacent and the candidates come out sorted too.
func generate(prev []node, prevIndex map[Key]int) ([]candidate, int) {
	var cands []candidate
	pruned := 0
	for i := 0; i < len(prev); {
		j := i + 1
		for j < len(prev) && samePrefix(prev[i].items, prev[j].items) {
			j++
		}
		for x := i; x < j; x++ {
			for y := x + 1; y < j; y++ {
				px := prev[x].items
				items := make([]int, len(px)+1)
				copy(items, px)
				items[len(px)] = prev[y].items[len(px)-1]
				if !subsetsFrequent(items, prevIndex) {
					pruned++
					continue
				}
				cands = append(cands, candidate{items: items, left: x, right: y})
			}
		}
		i = j
	}
	return cands, pruned
}

func samePrefix(a, b []int) bool {
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// subsetsFrequent checks the subsets formed by dropping one of the first
// len-2 items; dropping either of the last two yields a join parent.
func subsetsFrequent(items []int, prevIndex map[Key]int) bool {
	sub := make([]int, len(items)-1)
	for drop := 0; drop < len(items)-2; drop++ {
		copy(sub, items[:drop])
		copy(sub[drop:], items[drop+1:])
		if _, ok := prevIndex[KeyOf(sub)]; !ok {
			return false
		}
	}
	return true
}

// count fills one slot per candidate, possibly across workers, then keeps the
// frequent ones in candidate order.
func (a *Apriori) count(ctx context.Context, prev []node, cands []candidate, n, workers int) ([]node, error) {
	slots := make([]node, len(cands))
	err := parallel.ForEachChunk(ctx, len(cands), workers, a.parallelThreshold, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if (i-start)%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			c := cands[i]
			tids := prev[c.left].tids.Intersect(prev[c.right].tids)
			slots[i] = node{items: c.items, tids: tids, count: tids.Count()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	next := make([]node, 0, len(slots))
	for _, s := range slots {
		if a.frequent(s.count, n) {
			next = append(next, s)
		}
	}
	return next, nil
}
