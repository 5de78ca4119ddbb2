// Package profiling computes the full descriptive profile of a loaded
// dataset: shape, types, missingness, duplicates, IQR outliers, Pearson
// correlations and categorical summaries. Profiling is pure and total over
// any well-formed table; degenerate inputs are handled as documented edge
// cases, never as errors.
package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"goeda/domain/dataset"
)

// Report holds the complete profile of one dataset.
// It is recomputed wholly whenever the dataset changes.
type Report struct {
	Rows          int                        `json:"rows"`
	Cols          int                        `json:"cols"`
	ColumnTypes   map[string]string          `json:"column_types"`
	MissingCounts map[string]int             `json:"missing_counts"`
	MissingPct    map[string]float64         `json:"missing_pct"`
	DuplicateRows int                        `json:"duplicate_rows"`
	MemoryMB      float64                    `json:"memory_mb"`
	Outliers      map[string]OutlierBounds   `json:"outliers"`
	Correlation   *CorrelationMatrix         `json:"correlation,omitempty"`
	Categories    map[string]CategorySummary `json:"categories"`
	NumericStats  map[string]NumericSummary  `json:"numeric_stats"`
}

// OutlierBounds holds the IQR fences and outlier count for a numeric column.
// Defined is false when the column had no values to compute bounds from.
type OutlierBounds struct {
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Count   int     `json:"count"`
	Defined bool    `json:"defined"`
}

// CategorySummary describes a categorical column
type CategorySummary struct {
	UniqueCount int    `json:"unique_count"`
	Mode        string `json:"mode"`
}

// NumericSummary holds descriptive statistics for a numeric column
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// TotalMissing returns the total number of missing cells across all columns
func (r *Report) TotalMissing() int {
	total := 0
	for _, count := range r.MissingCounts {
		total += count
	}
	return total
}

// CorrelatedPair names two columns and their Pearson correlation
type CorrelatedPair struct {
	A    string  `json:"a"`
	B    string  `json:"b"`
	Corr float64 `json:"corr"`
}

// StrongCorrelations returns column pairs whose absolute correlation exceeds
// the threshold, in matrix order. Undefined (NaN) entries are skipped.
func (r *Report) StrongCorrelations(threshold float64) []CorrelatedPair {
	if r.Correlation == nil {
		return nil
	}
	var pairs []CorrelatedPair
	m := r.Correlation
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			v := m.Values[i][j]
			if !math.IsNaN(v) && math.Abs(v) > threshold {
				pairs = append(pairs, CorrelatedPair{A: m.Columns[i], B: m.Columns[j], Corr: v})
			}
		}
	}
	return pairs
}

// Profile computes the full report for a table. Pure and deterministic.
func Profile(table *dataset.Table) *Report {
	report := &Report{
		Rows:          table.RowCount(),
		Cols:          table.ColumnCount(),
		ColumnTypes:   make(map[string]string, table.ColumnCount()),
		MissingCounts: make(map[string]int, table.ColumnCount()),
		MissingPct:    make(map[string]float64, table.ColumnCount()),
		Outliers:      make(map[string]OutlierBounds),
		Categories:    make(map[string]CategorySummary),
		NumericStats:  make(map[string]NumericSummary),
	}

	for i := range table.Columns() {
		col := &table.Columns()[i]
		missing := col.MissingCount()
		report.ColumnTypes[col.Name] = string(col.Type)
		report.MissingCounts[col.Name] = missing
		report.MissingPct[col.Name] = missingPercentage(missing, table.RowCount())

		if col.IsNumeric() {
			values := col.Values()
			report.Outliers[col.Name] = detectOutliersIQR(values)
			if len(values) > 0 {
				report.NumericStats[col.Name] = summarizeNumeric(values)
			}
		} else {
			report.Categories[col.Name] = summarizeCategory(col.Cells)
		}
	}

	report.DuplicateRows = countDuplicates(table)
	report.MemoryMB = estimateMemoryMB(table)
	report.Correlation = correlationMatrix(table)
	return report
}

// missingPercentage is rounded half-up to 2 decimals; 0 when rows is 0
func missingPercentage(missing, rows int) float64 {
	if rows == 0 {
		return 0
	}
	pct := float64(missing) / float64(rows) * 100
	return math.Floor(pct*100+0.5) / 100
}

// countDuplicates counts rows that exactly duplicate an earlier row:
// total rows minus distinct rows.
func countDuplicates(table *dataset.Table) int {
	seen := make(map[string]struct{}, table.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		key := ""
		for c, cell := range table.Row(i) {
			if c > 0 {
				key += "\x1f"
			}
			key += cell
		}
		seen[key] = struct{}{}
	}
	return table.RowCount() - len(seen)
}

// estimateMemoryMB estimates the bytes held by the columnar representation,
// reported in megabytes to full floating precision (display only)
func estimateMemoryMB(table *dataset.Table) float64 {
	const stringHeaderBytes = 16
	bytes := 0
	for _, col := range table.Columns() {
		for _, cell := range col.Cells {
			bytes += len(cell) + stringHeaderBytes
		}
		bytes += 8 * len(col.Numbers)
	}
	return float64(bytes) / 1024 / 1024
}

// detectOutliersIQR computes Q1/Q3 fences at 1.5*IQR and counts values
// strictly outside them. Bounds degrade gracefully below 4 values and are
// undefined when no values exist.
func detectOutliersIQR(values []float64) OutlierBounds {
	if len(values) == 0 {
		return OutlierBounds{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quantileLinear(sorted, 0.25)
	q3 := quantileLinear(sorted, 0.75)
	iqr := q3 - q1

	bounds := OutlierBounds{
		Lower:   q1 - 1.5*iqr,
		Upper:   q3 + 1.5*iqr,
		Defined: true,
	}
	for _, v := range values {
		if v < bounds.Lower || v > bounds.Upper {
			bounds.Count++
		}
	}
	return bounds
}

// quantileLinear computes the p-quantile of sorted data by linear
// interpolation between closest ranks (rank = p*(n-1)).
func quantileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// summarizeNumeric mirrors a describe() table for one numeric column
func summarizeNumeric(values []float64) NumericSummary {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	std := 0.0
	if len(values) > 1 {
		std, _ = stats.StandardDeviationSample(values)
	}

	return NumericSummary{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    min,
		Q25:    quantileLinear(sorted, 0.25),
		Median: quantileLinear(sorted, 0.50),
		Q75:    quantileLinear(sorted, 0.75),
		Max:    max,
	}
}

// summarizeCategory computes unique count (excluding missing) and the most
// frequent value, tie-broken by first encounter; "N/A" when all missing.
func summarizeCategory(cells []string) CategorySummary {
	counts := make(map[string]int)
	var order []string
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if _, seen := counts[cell]; !seen {
			order = append(order, cell)
		}
		counts[cell]++
	}

	summary := CategorySummary{UniqueCount: len(counts), Mode: "N/A"}
	best := 0
	for _, value := range order {
		if counts[value] > best {
			best = counts[value]
			summary.Mode = value
		}
	}
	return summary
}
