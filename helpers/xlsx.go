package helpers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/enroldash/engine"
)

// ErrNoSheet is returned when a workbook has no sheet with the requested name.
var ErrNoSheet = errors.New("helpers: sheet not found in workbook")

// LoadWorkbook reads an XLSX workbook and normalizes its rows exactly like
// LoadBytes. The first row of the sheet is the header. An empty sheet name
// selects the first sheet.
func LoadWorkbook(r io.Reader, sheet string, requireYear bool, opts ...Option) (*engine.Table, error) {
	cfg := applyOptions(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return engine.NewTable(nil), nil
		}
		sheet = sheets[0]
	} else if !containsString(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	cfg.logger.Debug("workbook sheet read",
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)))

	if len(rows) == 0 {
		return engine.NewTable(nil), nil
	}
	return buildTable(rows[0], rows[1:], requireYear, 0, cfg), nil
}

func workbookHeader(r io.Reader, sheet string) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Error()
	}
	return rows.Columns()
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
