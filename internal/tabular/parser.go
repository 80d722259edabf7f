// Package tabular parses CSV and XLSX uploads into ordered row records while
// preserving the original, free-form header names.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/procurelens/procurelens/internal/common"
	"github.com/procurelens/procurelens/internal/model"
)

// Table is one parsed sheet: the headers in file order plus the data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    []model.RawRow
}

// Parse decodes file content by extension. A parse failure rejects the whole
// file; it never yields a partial table.
func Parse(filename string, content []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(content)
	case ".xlsx", ".xls":
		return ParseXLSX(content)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filename)
	}
}

// ParseCSV decodes CSV content. The first record is the header row; blank
// lines are skipped and cells are typed (number, else string).
func ParseCSV(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return &Table{Name: "Sheet1"}, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrParseFailed, err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Name: "Sheet1", Headers: headers}

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrParseFailed, readErr)
		}

		if isBlankRecord(record) {
			continue
		}

		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				row[h] = nil
				continue
			}
			row[h] = typeCell(record[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ParseXLSX decodes an Excel workbook. The first sheet with data wins; cells
// keep their raw values so serial dates survive into coercion.
func ParseXLSX(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParseFailed, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrParseFailed)
	}

	for _, sheet := range sheets {
		rows, rowsErr := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if rowsErr != nil {
			continue
		}
		if table := tableFromMatrix(sheet, rows); len(table.Rows) > 0 {
			return table, nil
		}
	}

	// All sheets empty: keep the first sheet's headers (possibly none)
	rows, rowsErr := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if rowsErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParseFailed, rowsErr)
	}
	return tableFromMatrix(sheets[0], rows), nil
}

func tableFromMatrix(name string, rows [][]string) *Table {
	table := &Table{Name: name}
	if len(rows) == 0 {
		return table
	}

	for _, h := range rows[0] {
		table.Headers = append(table.Headers, strings.TrimSpace(h))
	}

	for _, record := range rows[1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make(model.RawRow, len(table.Headers))
		for i, h := range table.Headers {
			if h == "" {
				continue
			}
			if i >= len(record) {
				row[h] = nil
				continue
			}
			row[h] = typeCell(record[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// typeCell converts a raw cell string to a typed value: numbers become
// float64, everything else stays a trimmed string, empty becomes nil.
func typeCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
