package mining

// Derive computes the maximal and closed families in one pass over f.
//
// Every frequent (k+1)-itemset marks each of its k+1 immediate subsets as
// having a frequent superset, and additionally as having an equal-support
// superset when the counts match. A frequent itemset is maximal when no
// immediate superset is frequent and closed when none has the same count.
// Checking immediate supersets is enough: support is anti-monotone, so if any
// frequent superset exists an immediate one does, and an equal-count superset
// of x forces every itemset between them to share that count.
func Derive(f *FrequentItemsets) (maximal, closed *Family) {
	hasSuper := make([][]bool, len(f.levels))
	hasEqual := make([][]bool, len(f.levels))
	for k, level := range f.levels {
		hasSuper[k] = make([]bool, len(level))
		hasEqual[k] = make([]bool, len(level))
	}

	for k := 1; k < len(f.levels); k++ {
		subIndex := f.index[k-1]
		sub := make([]int, k)
		for _, y := range f.levels[k] {
			for drop := range y.Items {
				copy(sub, y.Items[:drop])
				copy(sub[drop:], y.Items[drop+1:])
				xi, ok := subIndex[KeyOf(sub)]
				if !ok {
					continue
				}
				hasSuper[k-1][xi] = true
				if f.levels[k-1][xi].Count == y.Count {
					hasEqual[k-1][xi] = true
				}
			}
		}
	}

	maximal = &Family{name: FamilyMaximal, vocabulary: f.vocabulary}
	closed = &Family{name: FamilyClosed, vocabulary: f.vocabulary}
	for k, level := range f.levels {
		for i, s := range level {
			if !hasSuper[k][i] {
				maximal.itemsets = append(maximal.itemsets, s)
			}
			if !hasEqual[k][i] {
				closed.itemsets = append(closed.itemsets, s)
			}
		}
	}
	return maximal, closed
}

// Maximal returns the frequent itemsets with no frequent proper superset.
func Maximal(f *FrequentItemsets) *Family {
	m, _ := Derive(f)
	return m
}

// Closed returns the frequent itemsets with no proper superset of equal
// support.
func Closed(f *FrequentItemsets) *Family {
	_, c := Derive(f)
	return c
}
