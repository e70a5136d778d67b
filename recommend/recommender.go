// Package recommend suggests companion items for a query item from a mined
// itemset collection.
package recommend

import (
	"sort"

	"github.com/YuminosukeSato/basketmine/mining"
	"github.com/YuminosukeSato/basketmine/pkg/log"
)

// Companion is an item that co-occurs with the query in at least one itemset.
type Companion struct {
	Item string `json:"item"`
	// Support is the highest support among the itemsets holding both the
	// query and Item.
	Support float64 `json:"support"`
	Count   int     `json:"count"`
}

// Recommendation is the answer to one query. Found is false when the query
// is not in the collection's vocabulary; Items is then empty.
type Recommendation struct {
	Query string      `json:"query"`
	Found bool        `json:"found"`
	Items []Companion `json:"items"`
}

// Labels returns the companion labels in result order.
func (r Recommendation) Labels() []string {
	out := make([]string, len(r.Items))
	for i, c := range r.Items {
		out[i] = c.Item
	}
	return out
}

// Recommender answers queries against one itemset collection. It is
// read-only after construction and safe for concurrent use.
type Recommender struct {
	family     string
	vocabulary []string
	index      map[string]int
	itemsets   []mining.Itemset
	logger     log.Logger
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(r *Recommender) {
		r.logger = l
	}
}

// New builds a Recommender over c.
func New(c mining.Collection, opts ...Option) *Recommender {
	vocab := c.Vocabulary()
	r := &Recommender{
		vocabulary: vocab,
		index:      make(map[string]int, len(vocab)),
		itemsets:   c.Itemsets(),
	}
	for i, label := range vocab {
		r.index[label] = i
	}
	if named, ok := c.(interface{ Name() string }); ok {
		r.family = named.Name()
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.GetLoggerWithName("recommend")
	}
	return r
}

// Suggest returns every other member of the itemsets that contain query,
// matched by exact item identity. Companions are ordered by support
// descending, then label.
func (r *Recommender) Suggest(query string) Recommendation {
	rec := Recommendation{Query: query, Items: []Companion{}}
	q, ok := r.index[query]
	if !ok {
		r.logger.Debug("query item not in vocabulary", log.QueryKey, query)
		return rec
	}
	rec.Found = true

	best := make(map[int]mining.Itemset)
	for _, s := range r.itemsets {
		if len(s.Items) < 2 || !s.Contains(q) {
			continue
		}
		for _, it := range s.Items {
			if it == q {
				continue
			}
			if cur, seen := best[it]; !seen || s.Count > cur.Count {
				best[it] = s
			}
		}
	}

	for it, s := range best {
		rec.Items = append(rec.Items, Companion{Item: r.vocabulary[it], Support: s.Support, Count: s.Count})
	}
	sort.Slice(rec.Items, func(i, j int) bool {
		a, b := rec.Items[i], rec.Items[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Item < b.Item
	})

	r.logger.Debug("recommendation computed",
		log.OperationKey, log.OperationRecommend,
		log.QueryKey, query,
		log.FamilyKey, r.family,
		log.CompanionsKey, len(rec.Items),
	)
	return rec
}
