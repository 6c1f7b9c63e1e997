package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/enroldash/engine"
)

// ============================================================================
// EXPORT — Panel output → Sheets/Excel-ready files
// ============================================================================
// CSV carries one panel: the label column plus one column per series.
// XLSX carries every panel, one sheet each, with raw numbers so the cells
// stay summable in a spreadsheet.
// ============================================================================

// WriteCSV writes one panel's chart data as CSV.
func WriteCSV(w io.Writer, out *engine.Output) error {
	cw := csv.NewWriter(w)

	for _, row := range panelRows(out) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func panelRows(out *engine.Output) [][]string {
	if out == nil || out.Chart == nil || len(out.Chart.Series) == 0 {
		return [][]string{{"Result", "No data"}}
	}
	chart := out.Chart

	xLabel := chart.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	headers := []string{xLabel}
	for _, s := range chart.Series {
		name := s.Name
		if name == "" {
			name = s.Key
		}
		headers = append(headers, name)
	}

	rows := [][]string{headers}
	for i, label := range chart.Labels {
		row := []string{label}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i]))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteXLSX writes every panel to its own sheet of a new workbook.
func WriteXLSX(w io.Writer, outputs []*engine.Output) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	used := map[string]int{}

	first := true
	for _, out := range outputs {
		if out == nil {
			continue
		}
		name := sheetName(string(out.Panel.Kind), used)

		if first {
			first = false
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, out); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, out *engine.Output) error {
	rows := 0
	put := func(values []interface{}) error {
		rows++
		cell, err := excelize.CoordinatesToCellName(1, rows)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", rows, sheet, err)
		}
		return nil
	}

	if out.Chart != nil && out.Chart.Title != "" {
		if err := put([]interface{}{out.Chart.Title}); err != nil {
			return err
		}
	}

	header := []interface{}{string(out.Result.GroupBy)}
	if out.Table != nil && len(out.Table.Columns) > 0 {
		header = header[:0]
		for _, c := range out.Table.Columns {
			header = append(header, c.Label)
		}
	} else {
		for _, k := range out.Result.Keys {
			header = append(header, string(k))
		}
	}
	if err := put(header); err != nil {
		return err
	}

	for _, e := range out.Result.Entries {
		row := []interface{}{e.Label}
		for _, v := range e.Values {
			row = append(row, v)
		}
		if err := put(row); err != nil {
			return err
		}
	}

	if out.Table != nil && out.Table.Summary != nil && len(out.Result.Entries) > 0 {
		row := []interface{}{out.Table.Summary.Label}
		for k := range out.Result.Keys {
			row = append(row, sumValues(out.Result.Column(k)))
		}
		if err := put(row); err != nil {
			return err
		}
	}
	return nil
}

func sumValues(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// sheetName derives a unique, Excel-safe sheet name.
func sheetName(base string, used map[string]int) string {
	if base == "" {
		base = "panel"
	}
	if len(base) > 28 {
		base = base[:28]
	}
	used[base]++
	if n := used[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
