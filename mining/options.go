package mining

import "github.com/YuminosukeSato/basketmine/pkg/log"

// Option is a function that configures Apriori
type Option func(*Apriori)

// WithMinSupport sets the minimum support threshold, in (0, 1]
func WithMinSupport(s float64) Option {
	return func(a *Apriori) {
		a.minSupport = s
	}
}

// WithMaxLen caps the itemset size. 0 means no cap
func WithMaxLen(n int) Option {
	return func(a *Apriori) {
		a.maxLen = n
	}
}

// WithNJobs sets the number of workers counting supports. -1 uses every CPU
func WithNJobs(n int) Option {
	return func(a *Apriori) {
		a.nJobs = n
	}
}

// WithParallelThreshold sets the candidate count below which a level is
// counted sequentially
func WithParallelThreshold(n int) Option {
	return func(a *Apriori) {
		a.parallelThreshold = n
	}
}

// WithLogger sets the logger
func WithLogger(l log.Logger) Option {
	return func(a *Apriori) {
		a.logger = l
	}
}
