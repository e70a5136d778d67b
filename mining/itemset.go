// Package mining finds frequent itemsets in encoded transactions and derives
// the maximal and closed families from them.
//
// Items are vocabulary indices of a preprocessing.Encoded value. Because the
// vocabulary is sorted by label, ordering itemsets by index is the same as
// ordering them by label.
package mining

import (
	"encoding/binary"
	"sort"
)

// Itemset is a non-empty set of items with its absolute and relative support.
type Itemset struct {
	// Items are ascending vocabulary indices.
	Items []int
	// Count is the number of transactions containing every item.
	Count int
	// Support is Count divided by the transaction count fixed at mining start.
	Support float64
}

// Len returns the number of items.
func (s Itemset) Len() int {
	return len(s.Items)
}

// Contains reports whether item is a member of s.
func (s Itemset) Contains(item int) bool {
	i := sort.SearchInts(s.Items, item)
	return i < len(s.Items) && s.Items[i] == item
}

// Key is the content key of an itemset, usable as a map key.
type Key string

// KeyOf encodes sorted items as a Key.
func KeyOf(items []int) Key {
	buf := make([]byte, 0, len(items)*2)
	for _, it := range items {
		buf = binary.AppendUvarint(buf, uint64(it))
	}
	return Key(buf)
}

// Labels maps the items of s back to their labels.
func Labels(vocabulary []string, s Itemset) []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = vocabulary[it]
	}
	return out
}

// Collection is a read-only view over a set of itemsets and the vocabulary
// their items index into.
type Collection interface {
	Vocabulary() []string
	Itemsets() []Itemset
}

// Status reports how a mining run ended.
type Status int

const (
	// StatusOK means every level was mined.
	StatusOK Status = iota
	// StatusEmptyInput means there were no transactions or no items.
	StatusEmptyInput
	// StatusCancelled means the context ended; only completed levels are kept.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmptyInput:
		return "empty_input"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MarshalText renders the status as its string form.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FrequentItemsets is the output of Apriori: every itemset whose support
// reaches the threshold, grouped by size. It is read-only.
type FrequentItemsets struct {
	vocabulary      []string
	levels          [][]Itemset
	index           []map[Key]int
	numTransactions int
	minSupport      float64
	status          Status
}

func newFrequentItemsets(vocabulary []string, n int, minSupport float64) *FrequentItemsets {
	return &FrequentItemsets{
		vocabulary:      vocabulary,
		numTransactions: n,
		minSupport:      minSupport,
	}
}

// addLevel appends the next level. level must be sorted by Items.
func (f *FrequentItemsets) addLevel(level []Itemset) {
	idx := make(map[Key]int, len(level))
	for i, s := range level {
		idx[KeyOf(s.Items)] = i
	}
	f.levels = append(f.levels, level)
	f.index = append(f.index, idx)
}

// Vocabulary returns the item labels, indexed by item.
func (f *FrequentItemsets) Vocabulary() []string {
	return append([]string(nil), f.vocabulary...)
}

// Itemsets returns a copy of every frequent itemset, level by level, each
// level in lexicographic item order. Modifying the result leaves f intact.
func (f *FrequentItemsets) Itemsets() []Itemset {
	out := make([]Itemset, 0, f.Len())
	for _, level := range f.levels {
		out = appendClones(out, level)
	}
	return out
}

// Len returns the number of frequent itemsets.
func (f *FrequentItemsets) Len() int {
	n := 0
	for _, level := range f.levels {
		n += len(level)
	}
	return n
}

// MaxLevel returns the size of the largest frequent itemset, 0 when empty.
func (f *FrequentItemsets) MaxLevel() int {
	return len(f.levels)
}

// Level returns a copy of the frequent itemsets of size k in lexicographic
// order.
func (f *FrequentItemsets) Level(k int) []Itemset {
	if k < 1 || k > len(f.levels) {
		return nil
	}
	return appendClones(nil, f.levels[k-1])
}

// Lookup finds the itemset with exactly the given sorted items.
func (f *FrequentItemsets) Lookup(items []int) (Itemset, bool) {
	k := len(items)
	if k < 1 || k > len(f.index) {
		return Itemset{}, false
	}
	i, ok := f.index[k-1][KeyOf(items)]
	if !ok {
		return Itemset{}, false
	}
	return f.levels[k-1][i].clone(), true
}

// LookupLabels is Lookup by item label. Unknown labels are never frequent.
func (f *FrequentItemsets) LookupLabels(labels ...string) (Itemset, bool) {
	items := make([]int, 0, len(labels))
	for _, l := range labels {
		i := sort.SearchStrings(f.vocabulary, l)
		if i == len(f.vocabulary) || f.vocabulary[i] != l {
			return Itemset{}, false
		}
		items = append(items, i)
	}
	sort.Ints(items)
	return f.Lookup(items)
}

// NumTransactions is the N every support was divided by.
func (f *FrequentItemsets) NumTransactions() int {
	return f.numTransactions
}

// MinSupport is the threshold the itemsets were mined with.
func (f *FrequentItemsets) MinSupport() float64 {
	return f.minSupport
}

// Status reports whether the run completed.
func (f *FrequentItemsets) Status() Status {
	return f.status
}

// Sorted returns the itemsets ordered by descending support, then size, then
// item contents.
func (f *FrequentItemsets) Sorted() []Itemset {
	return SortItemsets(f.Itemsets())
}

// Family is a named subset of a FrequentItemsets value, such as the maximal
// or closed itemsets.
type Family struct {
	name       string
	vocabulary []string
	itemsets   []Itemset
}

// Family names.
const (
	FamilyFrequent = "frequent"
	FamilyMaximal  = "maximal"
	FamilyClosed   = "closed"
)

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// Vocabulary returns the item labels, indexed by item.
func (f *Family) Vocabulary() []string {
	return append([]string(nil), f.vocabulary...)
}

// Itemsets returns a copy of the members level by level.
func (f *Family) Itemsets() []Itemset {
	return appendClones(nil, f.itemsets)
}

// Len returns the number of members.
func (f *Family) Len() int { return len(f.itemsets) }

// Sorted returns the members ordered like FrequentItemsets.Sorted.
func (f *Family) Sorted() []Itemset {
	return SortItemsets(f.Itemsets())
}

func (s Itemset) clone() Itemset {
	s.Items = append([]int(nil), s.Items...)
	return s
}

func appendClones(dst, src []Itemset) []Itemset {
	for _, s := range src {
		dst = append(dst, s.clone())
	}
	return dst
}

// AsFamily views every frequent itemset as a family named "frequent".
func (f *FrequentItemsets) AsFamily() *Family {
	return &Family{name: FamilyFrequent, vocabulary: f.vocabulary, itemsets: f.Itemsets()}
}

// SortItemsets orders its in place by descending support, then size, then
// item contents, and returns it.
func SortItemsets(its []Itemset) []Itemset {
	sort.SliceStable(its, func(i, j int) bool {
		a, b := its[i], its[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if len(a.Items) != len(b.Items) {
			return len(a.Items) < len(b.Items)
		}
		return lessItems(a.Items, b.Items)
	})
	return its
}

func lessItems(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
