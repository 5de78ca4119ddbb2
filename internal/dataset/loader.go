// Package dataset turns raw uploaded bytes into the in-memory columnar
// Table used by every downstream analysis. Loading is a pure function of
// the input bytes: on any failure no partial dataset is retained.
package dataset

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	domain "goeda/domain/dataset"
	"goeda/internal/errors"
)

// DefaultMaxBytes is the upload size cap enforced before any decode attempt
const DefaultMaxBytes int64 = 50 * 1024 * 1024 // 50MB

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load parses raw delimited text into a Table using the default size cap
func Load(raw []byte) (*domain.Table, error) {
	return LoadWithLimit(raw, DefaultMaxBytes)
}

// LoadWithLimit parses raw delimited text into a Table.
// Fails with a coded AppError: DATASET_OVERSIZE before any decode attempt,
// UNSUPPORTED_ENCODING when no encoding in the ladder succeeds,
// EMPTY_DATASET / NO_COLUMNS on degenerate content.
func LoadWithLimit(raw []byte, maxBytes int64) (*domain.Table, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if int64(len(raw)) > maxBytes {
		return nil, errors.Oversize(int64(len(raw)), maxBytes)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeInvalidInput, Message: "malformed CSV content", Cause: err}
	}
	if len(records) == 0 {
		return nil, errors.EmptyDataset()
	}

	header := records[0]
	if !hasColumns(header) {
		return nil, errors.NoColumns()
	}
	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.EmptyDataset()
	}

	columns := make([]domain.Column, len(header))
	for c, name := range header {
		cells := make([]string, len(rows))
		for r, row := range rows {
			cells[r] = strings.TrimSpace(row[c])
		}
		columns[c] = inferColumn(strings.TrimSpace(name), cells)
	}

	table, err := domain.NewTable(columns)
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeInvalidInput, Message: "invalid dataset structure", Cause: err}
	}
	return table, nil
}

// LoadFile reads a CSV file from disk and loads it with the default cap
func LoadFile(path string) (*domain.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Load(raw)
}

// decode attempts the encoding ladder in priority order: UTF-8, Latin-1,
// ISO-8859-1, CP1252. The first encoding that decodes cleanly wins.
func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if utf8.Valid(raw) {
		return string(raw), nil
	}
	// Latin-1 and ISO-8859-1 reject bytes in the C1 control range: those are
	// never legitimate text in either charset and are the signature of CP1252
	// content, which must reach the fourth rung.
	if !containsC1(raw) {
		if out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw); err == nil {
			return string(out), nil
		}
	}
	if out, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		// Bytes undefined in CP1252 (0x81, 0x8D, ...) pass through as C1
		// control runes; a strict decoder would reject them, so we do too.
		text := string(out)
		if !strings.ContainsRune(text, utf8.RuneError) && !containsC1Runes(text) {
			return text, nil
		}
	}
	return "", errors.UnsupportedEncoding()
}

func containsC1Runes(text string) bool {
	for _, r := range text {
		if r >= 0x80 && r <= 0x9F {
			return true
		}
	}
	return false
}

func containsC1(raw []byte) bool {
	for _, b := range raw {
		if b >= 0x80 && b <= 0x9F {
			return true
		}
	}
	return false
}

func hasColumns(header []string) bool {
	for _, name := range header {
		if strings.TrimSpace(name) != "" {
			return true
		}
	}
	return false
}

// inferColumn classifies a column as numeric when every non-missing cell
// parses as a number, categorical otherwise. Empty cells are missing.
func inferColumn(name string, cells []string) domain.Column {
	col := domain.Column{
		Name:  name,
		Type:  domain.TypeNumeric,
		Cells: cells,
	}

	numbers := make([]float64, len(cells))
	sawValue := false
	for i, cell := range cells {
		if cell == "" {
			numbers[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			col.Type = domain.TypeCategorical
			break
		}
		numbers[i] = v
		sawValue = true
	}

	// A column with no values at all carries no numeric evidence
	if col.Type == domain.TypeNumeric && !sawValue {
		col.Type = domain.TypeCategorical
	}
	if col.Type == domain.TypeNumeric {
		col.Numbers = numbers
	}
	return col
}
