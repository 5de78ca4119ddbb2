package profiling

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/stat"

	"goeda/domain/dataset"
)

// CorrelationMatrix is the symmetric Pearson matrix over numeric columns.
// Undefined entries (zero variance, too few paired rows) are NaN.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between columns i and j
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// MarshalJSON encodes NaN entries as null so reports stay serializable
func (m *CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				v := row[j]
				values[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{Columns: m.Columns, Values: values})
}

// correlationMatrix computes pairwise Pearson correlations over rows where
// both columns are non-missing. Returns nil when fewer than 2 numeric
// columns exist.
func correlationMatrix(table *dataset.Table) *CorrelationMatrix {
	numeric := table.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	m := &CorrelationMatrix{
		Columns: make([]string, len(numeric)),
		Values:  make([][]float64, len(numeric)),
	}
	for i, col := range numeric {
		m.Columns[i] = col.Name
		m.Values[i] = make([]float64, len(numeric))
		m.Values[i][i] = selfCorrelation(col.Values())
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			corr := pairwiseCorrelation(numeric[i].Numbers, numeric[j].Numbers)
			m.Values[i][j] = corr
			m.Values[j][i] = corr
		}
	}
	return m
}

// selfCorrelation is 1.0 for a column with nonzero variance, NaN otherwise
func selfCorrelation(values []float64) float64 {
	if len(values) > 1 && stat.Variance(values, nil) > 0 {
		return 1.0
	}
	return math.NaN()
}

func pairwiseCorrelation(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if !math.IsNaN(xs[i]) && !math.IsNaN(ys[i]) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	if len(px) < 2 {
		return math.NaN()
	}
	// Zero-variance columns yield NaN here rather than an error
	return stat.Correlation(px, py, nil)
}
