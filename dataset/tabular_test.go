package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T, n int) *TabularDataset {
	t.Helper()
	cols := map[string][]float64{
		"target": make([]float64, n),
		"a":      make([]float64, n),
		"b":      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		cols["target"][i] = float64(i)
		cols["a"][i] = float64(i * 2)
		cols["b"][i] = float64(i * 3)
	}
	table, err := NewTabularDataset(cols, "target")
	require.NoError(t, err)
	return table
}

func TestTabularDataset_RaggedColumns(t *testing.T) {
	_, err := NewTabularDataset(map[string][]float64{
		"target": {1, 2, 3},
		"a":      {1, 2},
	}, "target")
	assert.Error(t, err, "columns of unequal length must be rejected")
}

func TestTabularDataset_MissingTarget(t *testing.T) {
	_, err := NewTabularDataset(map[string][]float64{"a": {1, 2}}, "target")
	assert.Error(t, err)
}

func TestSplit_DeterministicAndDisjoint(t *testing.T) {
	table := testTable(t, 50)

	train1, test1, err := table.Split(0.8, 42)
	require.NoError(t, err)
	train2, test2, err := table.Split(0.8, 42)
	require.NoError(t, err)

	assert.Equal(t, 40, train1.Len())
	assert.Equal(t, 10, test1.Len())
	assert.Equal(t, train1.Target(), train2.Target(), "same seed must reproduce the same partition")
	assert.Equal(t, test1.Target(), test2.Target())

	// Target values double as row identities here: together the two
	// partitions must cover every row exactly once.
	seen := make(map[float64]int)
	for _, v := range train1.Target() {
		seen[v]++
	}
	for _, v := range test1.Target() {
		seen[v]++
	}
	require.Len(t, seen, 50)
	for v, count := range seen {
		assert.Equalf(t, 1, count, "row %v appears %d times across partitions", v, count)
	}
}

func TestSplit_SeedChangesPartition(t *testing.T) {
	table := testTable(t, 50)

	_, test1, err := table.Split(0.8, 1)
	require.NoError(t, err)
	_, test2, err := table.Split(0.8, 2)
	require.NoError(t, err)

	assert.NotEqual(t, test1.Target(), test2.Target(), "different seeds should shuffle differently")
}

func TestSplit_InvalidRatio(t *testing.T) {
	table := testTable(t, 10)

	for _, ratio := range []float64{0, 1, -0.5, 1.5} {
		_, _, err := table.Split(ratio, 42)
		assert.Errorf(t, err, "ratio %v should be rejected", ratio)
	}
}

func TestPerturb_ScalesOneColumn(t *testing.T) {
	table := testTable(t, 5)

	perturbed, err := table.Perturb("a", 10)
	require.NoError(t, err)

	orig, err := table.Column("a")
	require.NoError(t, err)
	scaled, err := perturbed.Column("a")
	require.NoError(t, err)

	for i := range orig {
		assert.InDelta(t, orig[i]*1.10, scaled[i], 1e-12)
	}

	// Other columns and the source dataset stay untouched.
	origB, _ := table.Column("b")
	newB, _ := perturbed.Column("b")
	assert.Equal(t, origB, newB)
	again, _ := table.Column("a")
	assert.Equal(t, orig, again, "Perturb must not mutate the source dataset")
}

func TestPerturb_RejectsTargetAndUnknown(t *testing.T) {
	table := testTable(t, 5)

	_, err := table.Perturb("target", 10)
	assert.Error(t, err, "the target column cannot be perturbed")

	_, err = table.Perturb("nope", 10)
	assert.Error(t, err)
}

func TestSelect_RestrictsPredictors(t *testing.T) {
	table := testTable(t, 5)

	reduced, err := table.Select([]string{"b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, reduced.Predictors())
	assert.Equal(t, table.Target(), reduced.Target())

	_, err = reduced.Column("a")
	assert.Error(t, err, "dropped predictors must not be reachable")
}

func TestRows_RowMajorOrder(t *testing.T) {
	table := testTable(t, 3)

	rows, err := table.Rows([]string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []float64{2, 3}, rows[1])
}
