// Package export renders a view model as a downloadable CSV document and
// parses it back. The CSV mirrors the on-screen table exactly: same rows,
// same columns, same display mode, so what you see is what you save.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/futi-app/phase-explorer/internal/explorer"
	"github.com/futi-app/phase-explorer/internal/phases"
)

// Filename is the suggested download name for exported tables.
const Filename = "futi_phases.csv"

// Missing is the placeholder written for cells without a value.
const Missing = "-"

// Marshal renders the view model as CSV. The header row is "Team" followed
// by one "{phase} {metric}" column per visible column, in table order. Raw
// values carry one decimal place, percentiles are whole numbers, and missing
// cells are written as "-".
func Marshal(vm *explorer.ViewModel) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	cols := vm.Columns()
	header := make([]string, 0, len(cols)+1)
	header = append(header, "Team")
	for _, col := range cols {
		header = append(header, phases.DisplayName(col.Phase)+" "+col.Label)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range vm.Rows {
		record := make([]string, 0, len(cols)+1)
		record = append(record, row.TeamName)
		for _, cell := range row.Cells {
			record = append(record, formatCell(cell, vm.Request.Mode))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row for %s: %w", row.TeamName, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCell(cell explorer.Cell, mode explorer.DisplayMode) string {
	if !cell.Valid {
		return Missing
	}
	if mode == explorer.ModePercentile {
		return strconv.FormatFloat(cell.Value, 'f', 0, 64)
	}
	return strconv.FormatFloat(cell.Value, 'f', 1, 64)
}

// Table is the parsed form of an exported document.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse reads an exported CSV back into header and data rows.
func Parse(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}
