package recommend

import (
	"context"
	"testing"

	"github.com/YuminosukeSato/basketmine/mining"
	"github.com/YuminosukeSato/basketmine/pkg/log"
	"github.com/YuminosukeSato/basketmine/preprocessing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mine(t *testing.T, baskets [][]string, minSupport float64) *mining.FrequentItemsets {
	t.Helper()
	enc, err := preprocessing.NewTransactionEncoder().Encode(baskets)
	require.NoError(t, err)
	fi, err := mining.NewApriori(
		mining.WithMinSupport(minSupport),
		mining.WithLogger(log.Discard()),
	).Fit(context.Background(), enc)
	require.NoError(t, err)
	return fi
}

func TestSuggest_Scenario(t *testing.T) {
	fi := mine(t, [][]string{{"A", "B"}, {"A", "B"}, {"A"}, {"B", "C"}}, 0.5)
	r := New(fi, WithLogger(log.Discard()))

	rec := r.Suggest("A")
	assert.True(t, rec.Found)
	assert.Equal(t, []string{"B"}, rec.Labels())
	require.Len(t, rec.Items, 1)
	assert.Equal(t, 0.5, rec.Items[0].Support)
	assert.Equal(t, 2, rec.Items[0].Count)
}

func TestSuggest_ExactMembership(t *testing.T) {
	baskets := [][]string{
		{"Milkshake", "straws"},
		{"Milkshake", "straws"},
		{"Milk", "bread"},
		{"Milk", "bread"},
	}
	r := New(mine(t, baskets, 0.5), WithLogger(log.Discard()))

	rec := r.Suggest("Milk")
	assert.True(t, rec.Found)
	assert.Equal(t, []string{"bread"}, rec.Labels(), "Milk must not match Milkshake itemsets")

	rec = r.Suggest("Milkshake")
	assert.Equal(t, []string{"straws"}, rec.Labels())
}

func TestSuggest_ExcludesQueryAndDeduplicates(t *testing.T) {
	baskets := [][]string{
		{"a", "b", "c"},
		{"a", "b", "c"},
		{"a", "b"},
		{"a", "c", "d"},
	}
	r := New(mine(t, baskets, 0.25), WithLogger(log.Discard()))

	rec := r.Suggest("a")
	assert.NotContains(t, rec.Labels(), "a")
	assert.ElementsMatch(t, []string{"b", "c", "d"}, rec.Labels())

	// b: {a,b} count 3, c: {a,c} count 3, d: {a,c,d}/{a,d} count 1
	assert.Equal(t, []string{"b", "c", "d"}, rec.Labels())
	assert.Equal(t, 0.75, rec.Items[0].Support)
	assert.Equal(t, 0.25, rec.Items[2].Support)
}

func TestSuggest_NotFound(t *testing.T) {
	r := New(mine(t, [][]string{{"a", "b"}, {"a", "b"}}, 0.5), WithLogger(log.Discard()))

	rec := r.Suggest("zzz")
	assert.False(t, rec.Found)
	assert.Empty(t, rec.Items)
	assert.NotNil(t, rec.Items, "empty result must be explicit, not nil")
	assert.Equal(t, "zzz", rec.Query)
}

func TestSuggest_KnownButNoCompanions(t *testing.T) {
	// c is in the vocabulary but never frequent together with anything
	r := New(mine(t, [][]string{{"a", "b"}, {"a", "b"}, {"c"}}, 0.5), WithLogger(log.Discard()))

	rec := r.Suggest("c")
	assert.True(t, rec.Found)
	assert.Empty(t, rec.Items)
}

func TestSuggest_OverFamily(t *testing.T) {
	fi := mine(t, [][]string{{"a", "b", "c"}, {"a", "b", "c"}, {"a", "d"}, {"a", "d"}}, 0.5)
	maximal := mining.Maximal(fi)

	logger, _ := log.NewTestLogger(log.LevelDebug)
	rec := New(maximal, WithLogger(logger)).Suggest("a")
	assert.Equal(t, []string{"b", "c", "d"}, rec.Labels())
	assert.True(t, logger.ContainsField(log.FamilyKey, mining.FamilyMaximal))
}
