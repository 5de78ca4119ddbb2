package dataset

import (
	"fmt"
	"math"
)

// ColumnType classifies a column by the values it holds
type ColumnType string

const (
	// TypeNumeric means every non-missing cell parses as a number
	TypeNumeric ColumnType = "numeric"
	// TypeCategorical covers everything else (text, mixed, identifiers)
	TypeCategorical ColumnType = "categorical"
)

// Column is a single typed column of a loaded dataset.
// Cells always holds the raw string values; an empty string marks a missing
// cell. For numeric columns, Numbers holds the parsed values with NaN in
// missing positions.
type Column struct {
	Name    string     `json:"name"`
	Type    ColumnType `json:"type"`
	Cells   []string   `json:"-"`
	Numbers []float64  `json:"-"`
}

// IsNumeric reports whether the column parsed as numeric
func (c *Column) IsNumeric() bool {
	return c.Type == TypeNumeric
}

// MissingCount returns the number of missing cells
func (c *Column) MissingCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell == "" {
			count++
		}
	}
	return count
}

// Values returns the non-missing numeric values in row order.
// Returns nil for categorical columns.
func (c *Column) Values() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Table is the in-memory columnar representation of a loaded dataset.
// It is immutable after construction; all analyses are read-only views.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable builds a table from columns, validating the invariants:
// unique names and identical column lengths.
func NewTable(columns []Column) (*Table, error) {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		t.index[col.Name] = i
		if i == 0 {
			t.rows = len(col.Cells)
		} else if len(col.Cells) != t.rows {
			return nil, fmt.Errorf("column %q has %d cells, expected %d", col.Name, len(col.Cells), t.rows)
		}
	}
	return t, nil
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the columns in original file order
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the column names in original file order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.columns[i], true
}

// NumericColumns returns the numeric columns in original order
func (t *Table) NumericColumns() []Column {
	var out []Column
	for _, col := range t.columns {
		if col.IsNumeric() {
			out = append(out, col)
		}
	}
	return out
}

// CategoricalColumns returns the categorical columns in original order
func (t *Table) CategoricalColumns() []Column {
	var out []Column
	for _, col := range t.columns {
		if !col.IsNumeric() {
			out = append(out, col)
		}
	}
	return out
}

// Row materializes row i as raw cell values in column order
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.columns))
	for c := range t.columns {
		row[c] = t.columns[c].Cells[i]
	}
	return row
}

// Head returns up to n rows as raw cell values, for samples and previews
func (t *Table) Head(n int) [][]string {
	if n > t.rows {
		n = t.rows
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}
