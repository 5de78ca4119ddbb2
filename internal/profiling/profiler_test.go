package profiling

import (
	"math"
	"testing"

	"goeda/domain/dataset"
	loader "goeda/internal/dataset"
)

func mustLoad(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := loader.Load([]byte(csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProfile_Shape(t *testing.T) {
	table := mustLoad(t, "a,b,c\n1,x,2\n3,y,4\n")
	report := Profile(table)

	if report.Rows != 2 || report.Cols != 3 {
		t.Errorf("Expected shape (2,3), got (%d,%d)", report.Rows, report.Cols)
	}
	if report.ColumnTypes["a"] != "numeric" || report.ColumnTypes["b"] != "categorical" {
		t.Errorf("Unexpected column types: %v", report.ColumnTypes)
	}
}

// TestProfile_EndToEndScenario covers the documented scenario: duplicates,
// categorical summary and outlier bounds over a tiny mixed dataset
func TestProfile_EndToEndScenario(t *testing.T) {
	table := mustLoad(t, "age,city\n25,NY\n30,LA\n25,NY\n")
	report := Profile(table)

	if report.DuplicateRows != 1 {
		t.Errorf("Expected 1 duplicate row, got %d", report.DuplicateRows)
	}

	city := report.Categories["city"]
	if city.UniqueCount != 2 {
		t.Errorf("Expected 2 unique cities, got %d", city.UniqueCount)
	}
	if city.Mode != "NY" {
		t.Errorf("Expected mode NY, got %s", city.Mode)
	}

	// {25, 25, 30}: Q1=25, Q3=27.5 by linear interpolation
	bounds := report.Outliers["age"]
	if !bounds.Defined {
		t.Fatal("age outlier bounds should be defined")
	}
	if !approxEqual(bounds.Lower, 25-1.5*2.5) || !approxEqual(bounds.Upper, 27.5+1.5*2.5) {
		t.Errorf("Unexpected bounds [%v, %v]", bounds.Lower, bounds.Upper)
	}
	if bounds.Count != 0 {
		t.Errorf("Expected 0 outliers, got %d", bounds.Count)
	}
}

func TestProfile_MissingPercentages(t *testing.T) {
	table := mustLoad(t, "a,b\n1,x\n,y\n3,\n")
	report := Profile(table)

	if report.MissingCounts["a"] != 1 || report.MissingCounts["b"] != 1 {
		t.Errorf("Unexpected missing counts: %v", report.MissingCounts)
	}
	// 1/3 * 100 rounded half-up to 2 decimals
	if !approxEqual(report.MissingPct["a"], 33.33) {
		t.Errorf("Expected 33.33, got %v", report.MissingPct["a"])
	}
	if report.TotalMissing() != 2 {
		t.Errorf("Expected 2 total missing, got %d", report.TotalMissing())
	}
}

func TestMissingPercentage_RoundingAndZeroRows(t *testing.T) {
	if got := missingPercentage(1, 0); got != 0 {
		t.Errorf("Zero rows should yield 0, got %v", got)
	}
	// 1/8 = 12.5%, 1/16 = 6.25%: exact two-decimal values survive
	if got := missingPercentage(1, 8); !approxEqual(got, 12.5) {
		t.Errorf("Expected 12.5, got %v", got)
	}
	// 2/3 = 66.666...% rounds half-up to 66.67
	if got := missingPercentage(2, 3); !approxEqual(got, 66.67) {
		t.Errorf("Expected 66.67, got %v", got)
	}
}

func TestCountDuplicates_PermutationInvariant(t *testing.T) {
	original := mustLoad(t, "a,b\n1,x\n2,y\n1,x\n2,y\n3,z\n")
	permuted := mustLoad(t, "a,b\n3,z\n2,y\n1,x\n2,y\n1,x\n")

	if Profile(original).DuplicateRows != 2 {
		t.Errorf("Expected 2 duplicates, got %d", Profile(original).DuplicateRows)
	}
	if Profile(original).DuplicateRows != Profile(permuted).DuplicateRows {
		t.Error("Duplicate count must be invariant under row permutation")
	}
}

func TestDetectOutliersIQR(t *testing.T) {
	// 1..10 plus an extreme value: Q1=3.5, Q3=8.5, fences [-4, 16]
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 100}
	bounds := detectOutliersIQR(values)

	if !bounds.Defined {
		t.Fatal("Bounds should be defined")
	}
	if !approxEqual(bounds.Lower, -4) || !approxEqual(bounds.Upper, 16) {
		t.Errorf("Expected fences [-4, 16], got [%v, %v]", bounds.Lower, bounds.Upper)
	}
	if bounds.Count != 1 {
		t.Errorf("Expected 1 outlier, got %d", bounds.Count)
	}
}

func TestDetectOutliersIQR_EdgeCases(t *testing.T) {
	if bounds := detectOutliersIQR(nil); bounds.Defined {
		t.Error("No values: bounds must be undefined")
	}
	// Fewer than 4 values: bounds still computed from available data
	bounds := detectOutliersIQR([]float64{5, 5})
	if !bounds.Defined || bounds.Count != 0 {
		t.Errorf("Two equal values should give defined bounds and 0 outliers, got %+v", bounds)
	}
	if !approxEqual(bounds.Lower, 5) || !approxEqual(bounds.Upper, 5) {
		t.Errorf("Degenerate IQR should collapse fences to the value, got [%v, %v]", bounds.Lower, bounds.Upper)
	}
}

func TestQuantileLinear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := []struct {
		p, want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, c := range cases {
		if got := quantileLinear(sorted, c.p); !approxEqual(got, c.want) {
			t.Errorf("quantile(%v) = %v, want %v", c.p, got, c.want)
		}
	}
	if got := quantileLinear([]float64{7}, 0.5); got != 7 {
		t.Errorf("Single value quantile should be the value, got %v", got)
	}
}

func TestCorrelation_SymmetryAndDiagonal(t *testing.T) {
	table := mustLoad(t, "x,y,z\n1,2,5\n2,4,5\n3,6,5\n4,8,5\n")
	report := Profile(table)

	m := report.Correlation
	if m == nil {
		t.Fatal("Correlation matrix expected with 3 numeric columns")
	}

	xi, yi, zi := index(m.Columns, "x"), index(m.Columns, "y"), index(m.Columns, "z")

	// y = 2x: perfect correlation, symmetric
	if !approxEqual(m.At(xi, yi), 1.0) {
		t.Errorf("Expected corr(x,y)=1, got %v", m.At(xi, yi))
	}
	if m.At(xi, yi) != m.At(yi, xi) {
		t.Error("Matrix must be symmetric")
	}

	// Diagonal is 1.0 for columns with nonzero variance
	if !approxEqual(m.At(xi, xi), 1.0) {
		t.Errorf("Expected corr(x,x)=1, got %v", m.At(xi, xi))
	}

	// z has zero variance: undefined correlations, represented as NaN
	if !math.IsNaN(m.At(xi, zi)) || !math.IsNaN(m.At(zi, zi)) {
		t.Error("Zero-variance column must yield NaN correlations")
	}
}

func TestCorrelation_PairwiseMissing(t *testing.T) {
	// Row 3 is incomplete for y; correlation uses the complete pairs only
	table := mustLoad(t, "x,y\n1,10\n2,20\n3,\n4,40\n")
	report := Profile(table)

	m := report.Correlation
	if m == nil {
		t.Fatal("Correlation matrix expected")
	}
	if !approxEqual(m.At(0, 1), 1.0) {
		t.Errorf("Expected perfect correlation over complete pairs, got %v", m.At(0, 1))
	}
}

func TestCorrelation_OmittedBelowTwoNumeric(t *testing.T) {
	table := mustLoad(t, "x,name\n1,a\n2,b\n")
	if Profile(table).Correlation != nil {
		t.Error("Correlation must be omitted with fewer than 2 numeric columns")
	}
}

func TestSummarizeCategory_TieBreakAndSentinel(t *testing.T) {
	// b and a both appear twice; b was encountered first
	summary := summarizeCategory([]string{"b", "a", "a", "b"})
	if summary.Mode != "b" {
		t.Errorf("Tie-break should pick first encountered, got %s", summary.Mode)
	}
	if summary.UniqueCount != 2 {
		t.Errorf("Expected 2 unique values, got %d", summary.UniqueCount)
	}

	empty := summarizeCategory([]string{"", ""})
	if empty.Mode != "N/A" || empty.UniqueCount != 0 {
		t.Errorf("All-missing column should give N/A sentinel, got %+v", empty)
	}
}

func TestSummarizeNumeric(t *testing.T) {
	s := summarizeNumeric([]float64{1, 2, 3, 4})
	if s.Count != 4 || !approxEqual(s.Mean, 2.5) || !approxEqual(s.Median, 2.5) {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if !approxEqual(s.Q25, 1.75) || !approxEqual(s.Q75, 3.25) {
		t.Errorf("Unexpected quartiles: %+v", s)
	}

	single := summarizeNumeric([]float64{7})
	if single.StdDev != 0 {
		t.Errorf("Single value std must be 0, got %v", single.StdDev)
	}
}

func TestProfile_ZeroRowsTotal(t *testing.T) {
	// Profiling must be total over any well-formed table, including empty
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "a", Type: dataset.TypeCategorical, Cells: []string{}},
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	report := Profile(table)
	if report.Rows != 0 || report.MissingPct["a"] != 0 {
		t.Errorf("Zero-row profile should be all zeros, got %+v", report)
	}
}

func TestStrongCorrelations(t *testing.T) {
	table := mustLoad(t, "x,y,w\n1,2,9\n2,4,1\n3,6,8\n4,8,2\n5,10,7\n")
	report := Profile(table)

	pairs := report.StrongCorrelations(0.5)
	if len(pairs) != 1 {
		t.Fatalf("Expected exactly one strong pair, got %v", pairs)
	}
	if pairs[0].A != "x" || pairs[0].B != "y" || !approxEqual(pairs[0].Corr, 1.0) {
		t.Errorf("Unexpected strong pair: %+v", pairs[0])
	}
}

func TestEstimateMemoryMB(t *testing.T) {
	table := mustLoad(t, "a\nhello\n")
	report := Profile(table)
	if report.MemoryMB <= 0 {
		t.Errorf("Memory estimate should be positive, got %v", report.MemoryMB)
	}
}

func index(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
