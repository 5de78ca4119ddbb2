package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"goeda/domain/dataset"
	"goeda/internal/errors"
	"goeda/internal/profiling"
)

// WorkbookReport renders the profile into an xlsx workbook with Overview,
// Columns and Sample sheets, mirroring the HTML report's content.
func WorkbookReport(table *dataset.Table, report *profiling.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeOverviewSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeColumnsSheet(f, table, report); err != nil {
		return nil, err
	}
	if err := writeSampleSheet(f, table); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

func writeOverviewSheet(f *excelize.File, report *profiling.Report) error {
	const sheet = "Overview"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "failed to create overview sheet")
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Rows", report.Rows},
		{"Total Columns", report.Cols},
		{"Missing Values", report.TotalMissing()},
		{"Duplicate Rows", report.DuplicateRows},
		{"Memory Usage (MB)", fmt.Sprintf("%.2f", report.MemoryMB)},
	}
	return writeRows(f, sheet, rows)
}

func writeColumnsSheet(f *excelize.File, table *dataset.Table, report *profiling.Report) error {
	const sheet = "Columns"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create columns sheet")
	}

	rows := [][]interface{}{
		{"Column", "Data Type", "Non-Null Count", "Missing Values", "Missing %", "Outliers", "Unique Values", "Most Common"},
	}
	for _, name := range table.ColumnNames() {
		row := []interface{}{
			name,
			report.ColumnTypes[name],
			report.Rows - report.MissingCounts[name],
			report.MissingCounts[name],
			report.MissingPct[name],
		}
		if bounds, ok := report.Outliers[name]; ok && bounds.Defined {
			row = append(row, bounds.Count, "", "")
		} else if summary, ok := report.Categories[name]; ok {
			row = append(row, "", summary.UniqueCount, summary.Mode)
		} else {
			row = append(row, "", "", "")
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeSampleSheet(f *excelize.File, table *dataset.Table) error {
	const sheet = "Sample"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to create sample sheet")
	}

	rows := [][]interface{}{}
	header := make([]interface{}, table.ColumnCount())
	for i, name := range table.ColumnNames() {
		header[i] = name
	}
	rows = append(rows, header)
	for _, sample := range table.Head(sampleSize) {
		row := make([]interface{}, len(sample))
		for i, cell := range sample {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.Wrap(err, "invalid cell coordinates")
			}
			if v, ok := value.(float64); ok && math.IsNaN(v) {
				value = ""
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(err, "failed to write %s!%s", sheet, cell)
			}
		}
	}
	return nil
}
