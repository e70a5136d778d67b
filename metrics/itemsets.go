package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/basketmine/mining"
	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary はアイテム集合コレクションの要約統計量
type Summary struct {
	// Count はアイテム集合の数
	Count int `json:"count"`
	// PerLevel[k-1] はサイズ k のアイテム集合の数
	PerLevel []int `json:"per_level"`
	// MaxLength は最大のアイテム集合のサイズ
	MaxLength int `json:"max_length"`

	MinSupport    float64 `json:"min_support"`
	MaxSupport    float64 `json:"max_support"`
	MeanSupport   float64 `json:"mean_support"`
	StdSupport    float64 `json:"std_support"`
	MedianSupport float64 `json:"median_support"`

	// Coverage は少なくとも1つのアイテム集合に現れる語彙の割合
	Coverage float64 `json:"coverage"`
}

// Summarize はコレクションの支持度分布とサイズ分布を計算する
// 空のコレクションでは Count = 0 で統計量はすべて 0
func Summarize(c mining.Collection) Summary {
	itemsets := c.Itemsets()
	vocab := c.Vocabulary()
	if len(itemsets) == 0 {
		return Summary{PerLevel: []int{}}
	}

	supports := make([]float64, len(itemsets))
	seen := make(map[int]struct{})
	var s Summary
	s.Count = len(itemsets)
	for i, is := range itemsets {
		supports[i] = is.Support
		if is.Len() > s.MaxLength {
			s.MaxLength = is.Len()
		}
		for _, it := range is.Items {
			seen[it] = struct{}{}
		}
	}

	s.PerLevel = make([]int, s.MaxLength)
	for _, is := range itemsets {
		s.PerLevel[is.Len()-1]++
	}

	s.MinSupport = floats.Min(supports)
	s.MaxSupport = floats.Max(supports)
	// 標本数 1 のとき標準偏差は NaN になる
	s.MeanSupport, s.StdSupport = stat.MeanStdDev(supports, nil)
	if math.IsNaN(s.StdSupport) {
		s.StdSupport = 0
	}

	sort.Float64s(supports)
	s.MedianSupport = stat.Quantile(0.5, stat.Empirical, supports, nil)

	if len(vocab) > 0 {
		s.Coverage = float64(len(seen)) / float64(len(vocab))
	}
	return s
}

// Jaccard は2つのアイテム集合の Jaccard 係数 |A∩B| / |A∪B| を計算する
func Jaccard(a, b mining.Itemset) (float64, error) {
	if a.Len() == 0 && b.Len() == 0 {
		return 0, errors.NewValueError("Jaccard", "both itemsets are empty")
	}
	inter := 0
	for _, it := range a.Items {
		if b.Contains(it) {
			inter++
		}
	}
	union := a.Len() + b.Len() - inter
	return float64(inter) / float64(union), nil
}

// SupportCorrelation は2つのコレクションに共通するアイテム集合の支持度の
// ピアソン相関係数を計算する（異なるデータ期間の比較などに使う）
// 共通のアイテム集合が2つ未満、またはどちらかの支持度が一定で相関が定義できない場合はエラー
func SupportCorrelation(a, b mining.Collection) (float64, error) {
	bv := b.Vocabulary()
	bIndex := make(map[string]int, len(bv))
	for i, l := range bv {
		bIndex[l] = i
	}
	bSupport := make(map[mining.Key]float64)
	for _, is := range b.Itemsets() {
		bSupport[mining.KeyOf(is.Items)] = is.Support
	}

	av := a.Vocabulary()
	var xs, ys []float64
	for _, is := range a.Itemsets() {
		items := make([]int, 0, is.Len())
		ok := true
		for _, it := range is.Items {
			j, found := bIndex[av[it]]
			if !found {
				ok = false
				break
			}
			items = append(items, j)
		}
		if !ok {
			continue
		}
		sort.Ints(items)
		if sb, found := bSupport[mining.KeyOf(items)]; found {
			xs = append(xs, is.Support)
			ys = append(ys, sb)
		}
	}
	if len(xs) < 2 {
		return 0, errors.NewValueError("SupportCorrelation", "fewer than two shared itemsets")
	}
	// 分散 0 では相関係数が NaN になる
	if floats.Min(xs) == floats.Max(xs) || floats.Min(ys) == floats.Max(ys) {
		return 0, errors.NewValueError("SupportCorrelation", "supports are constant in one collection")
	}
	return stat.Correlation(xs, ys, nil), nil
}
