package dataset

import (
	"fmt"
	"math/rand"
	"sort"
)

// TabularDataset is a column-oriented table of equal-length numeric columns
// with one designated target column. Instances are immutable after
// construction: Split, Select and Perturb all return new datasets and
// accessors return copies.
type TabularDataset struct {
	order   []string
	columns map[string][]float64
	target  string
}

// NewTabularDataset builds a dataset from named columns. The target column
// must be present and all columns must share the same length.
func NewTabularDataset(columns map[string][]float64, target string) (*TabularDataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}
	tgt, ok := columns[target]
	if !ok {
		return nil, fmt.Errorf("target column %q not present", target)
	}
	order := make([]string, 0, len(columns))
	for name := range columns {
		order = append(order, name)
	}
	sort.Strings(order)

	copied := make(map[string][]float64, len(columns))
	for name, col := range columns {
		if len(col) != len(tgt) {
			return nil, fmt.Errorf("column %q has %d rows, target has %d", name, len(col), len(tgt))
		}
		c := make([]float64, len(col))
		copy(c, col)
		copied[name] = c
	}
	return &TabularDataset{order: order, columns: copied, target: target}, nil
}

// Len returns the row count.
func (d *TabularDataset) Len() int { return len(d.columns[d.target]) }

// TargetName returns the designated target column name.
func (d *TabularDataset) TargetName() string { return d.target }

// Predictors returns all column names except the target, in stable order.
func (d *TabularDataset) Predictors() []string {
	names := make([]string, 0, len(d.order)-1)
	for _, name := range d.order {
		if name != d.target {
			names = append(names, name)
		}
	}
	return names
}

// Column returns a copy of a column's values.
func (d *TabularDataset) Column(name string) ([]float64, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	c := make([]float64, len(col))
	copy(c, col)
	return c, nil
}

// Target returns a copy of the target column.
func (d *TabularDataset) Target() []float64 {
	t, _ := d.Column(d.target)
	return t
}

// Rows materializes the given predictor columns as row vectors, in the
// order the names are given.
func (d *TabularDataset) Rows(predictors []string) ([][]float64, error) {
	cols := make([][]float64, len(predictors))
	for i, name := range predictors {
		col, ok := d.columns[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		cols[i] = col
	}
	rows := make([][]float64, d.Len())
	for r := range rows {
		row := make([]float64, len(predictors))
		for c := range predictors {
			row[c] = cols[c][r]
		}
		rows[r] = row
	}
	return rows, nil
}

// Split partitions the rows into disjoint train and test datasets. The
// shuffle is driven by the seed alone, so identical inputs always produce
// identical partitions. trainRatio is the train share, e.g. 0.8.
func (d *TabularDataset) Split(trainRatio float64, seed int64) (train, test *TabularDataset, err error) {
	n := d.Len()
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 rows to split, have %d", n)
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, fmt.Errorf("train ratio %v out of (0,1)", trainRatio)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * trainRatio)
	if cut == 0 {
		cut = 1
	}
	if cut == n {
		cut = n - 1
	}
	train = d.subset(perm[:cut])
	test = d.subset(perm[cut:])
	return train, test, nil
}

func (d *TabularDataset) subset(rows []int) *TabularDataset {
	cols := make(map[string][]float64, len(d.columns))
	for name, col := range d.columns {
		sub := make([]float64, len(rows))
		for i, r := range rows {
			sub[i] = col[r]
		}
		cols[name] = sub
	}
	order := make([]string, len(d.order))
	copy(order, d.order)
	return &TabularDataset{order: order, columns: cols, target: d.target}
}

// Select returns a dataset restricted to the given predictors plus the
// target column.
func (d *TabularDataset) Select(predictors []string) (*TabularDataset, error) {
	cols := make(map[string][]float64, len(predictors)+1)
	for _, name := range predictors {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		cols[name] = col
	}
	cols[d.target] = d.Target()
	return NewTabularDataset(cols, d.target)
}

// Perturb returns a dataset with one predictor column scaled by
// (1 + percent/100), every other column untouched.
func (d *TabularDataset) Perturb(predictor string, percent float64) (*TabularDataset, error) {
	if predictor == d.target {
		return nil, fmt.Errorf("cannot perturb the target column %q", predictor)
	}
	if _, ok := d.columns[predictor]; !ok {
		return nil, fmt.Errorf("unknown column %q", predictor)
	}
	factor := 1 + percent/100
	cols := make(map[string][]float64, len(d.columns))
	for name, col := range d.columns {
		c := make([]float64, len(col))
		copy(c, col)
		if name == predictor {
			for i := range c {
				c[i] *= factor
			}
		}
		cols[name] = c
	}
	return NewTabularDataset(cols, d.target)
}
