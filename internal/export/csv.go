package export

import (
	"bytes"
	"encoding/csv"

	"goeda/domain/dataset"
	"goeda/internal/errors"
)

// DatasetCSV re-exports the raw dataset as comma-delimited text with a
// header row, in original column and row order.
func DatasetCSV(table *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.ColumnNames()); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}
	for i := 0; i < table.RowCount(); i++ {
		if err := w.Write(table.Row(i)); err != nil {
			return nil, errors.Wrapf(err, "failed to write CSV row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV")
	}
	return buf.Bytes(), nil
}
