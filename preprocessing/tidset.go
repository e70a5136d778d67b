package preprocessing

import "math/bits"

// TIDSet is a packed bitset of transaction row ids. Bit i is set iff
// transaction i contains the item (or every item of an itemset).
type TIDSet struct {
	words []uint64
	n     int
}

// NewTIDSet returns an empty set able to hold ids in [0, n).
func NewTIDSet(n int) TIDSet {
	return TIDSet{words: make([]uint64, (n+63)/64), n: n}
}

// Add sets bit i.
func (s TIDSet) Add(i int) {
	s.words[i>>6] |= 1 << (uint(i) & 63)
}

// Contains reports whether bit i is set.
func (s TIDSet) Contains(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Count returns the number of set bits.
func (s TIDSet) Count() int {
	c := 0
	for _, w := range s.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Cap returns the id range the set was created for.
func (s TIDSet) Cap() int {
	return s.n
}

// Intersect returns a new set holding the ids present in both s and o.
// Both sets must have been created with the same capacity.
func (s TIDSet) Intersect(o TIDSet) TIDSet {
	out := TIDSet{words: make([]uint64, len(s.words)), n: s.n}
	for i := range s.words {
		out.words[i] = s.words[i] & o.words[i]
	}
	return out
}

// IDs lists the set bits in ascending order.
func (s TIDSet) IDs() []int {
	ids := make([]int, 0, s.Count())
	for wi, w := range s.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			ids = append(ids, wi*64+tz)
			w &= w - 1
		}
	}
	return ids
}
