package dataset

import (
	"math"
	"testing"
)

func TestNewTable_Invariants(t *testing.T) {
	_, err := NewTable([]Column{
		{Name: "a", Type: TypeCategorical, Cells: []string{"x"}},
		{Name: "a", Type: TypeCategorical, Cells: []string{"y"}},
	})
	if err == nil {
		t.Error("Duplicate column names must be rejected")
	}

	_, err = NewTable([]Column{
		{Name: "a", Type: TypeCategorical, Cells: []string{"x", "y"}},
		{Name: "b", Type: TypeCategorical, Cells: []string{"z"}},
	})
	if err == nil {
		t.Error("Uneven column lengths must be rejected")
	}
}

func TestColumn_Values(t *testing.T) {
	col := Column{
		Name:    "x",
		Type:    TypeNumeric,
		Cells:   []string{"1", "", "3"},
		Numbers: []float64{1, math.NaN(), 3},
	}

	values := col.Values()
	if len(values) != 2 || values[0] != 1 || values[1] != 3 {
		t.Errorf("Values should skip missing cells, got %v", values)
	}
	if col.MissingCount() != 1 {
		t.Errorf("Expected 1 missing cell, got %d", col.MissingCount())
	}

	categorical := Column{Name: "c", Type: TypeCategorical, Cells: []string{"a"}}
	if categorical.Values() != nil {
		t.Error("Categorical columns carry no numeric values")
	}
}

func TestTable_RowAndHead(t *testing.T) {
	table, err := NewTable([]Column{
		{Name: "a", Type: TypeCategorical, Cells: []string{"1", "2", "3"}},
		{Name: "b", Type: TypeCategorical, Cells: []string{"x", "y", "z"}},
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	row := table.Row(1)
	if row[0] != "2" || row[1] != "y" {
		t.Errorf("Unexpected row: %v", row)
	}

	head := table.Head(2)
	if len(head) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(head))
	}
	if len(table.Head(10)) != 3 {
		t.Error("Head must clamp to the row count")
	}
}

func TestTable_TypedColumnViews(t *testing.T) {
	table, err := NewTable([]Column{
		{Name: "n", Type: TypeNumeric, Cells: []string{"1"}, Numbers: []float64{1}},
		{Name: "c", Type: TypeCategorical, Cells: []string{"x"}},
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	if len(table.NumericColumns()) != 1 || table.NumericColumns()[0].Name != "n" {
		t.Error("Numeric view should hold exactly the numeric column")
	}
	if len(table.CategoricalColumns()) != 1 || table.CategoricalColumns()[0].Name != "c" {
		t.Error("Categorical view should hold exactly the categorical column")
	}

	if _, ok := table.Column("missing"); ok {
		t.Error("Lookup of an unknown column must fail")
	}
}
