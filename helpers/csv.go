package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spektr-org/enroldash/engine"
	"github.com/spektr-org/enroldash/schema"
)

// ============================================================================
// CSV HELPER — Parses enrolment CSV into an immutable engine.Table
// ============================================================================
// Consumer obtains the source however it likes (file, embed, upload).
// Loading is total: malformed rows are skipped, bad numbers become 0,
// blank provinces become "Unknown". Only reading the source can fail.
// ============================================================================

// Option configures a loader.
type Option func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives load statistics at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func applyOptions(opts []Option) *loadConfig {
	cfg := &loadConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load parses CSV text into a Table. It never fails: empty input or a
// header-only file yields an empty Table.
func Load(source string, requireYear bool, opts ...Option) *engine.Table {
	return LoadBytes([]byte(source), requireYear, opts...)
}

// LoadBytes parses CSV bytes into a Table.
func LoadBytes(data []byte, requireYear bool, opts ...Option) *engine.Table {
	cfg := applyOptions(opts)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if err != nil {
		cfg.logger.Debug("no header row", slog.String("error", err.Error()))
		return engine.NewTable(nil)
	}

	var rows [][]string
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue // skip malformed rows
			}
			break
		}
		rows = append(rows, row)
	}

	return buildTable(headers, rows, requireYear, skipped, cfg)
}

// LoadReader reads r fully and parses it as CSV.
func LoadReader(r io.Reader, requireYear bool, opts ...Option) (*engine.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV source: %w", err)
	}
	return LoadBytes(data, requireYear, opts...), nil
}

// LoadFile loads a CSV or XLSX file, chosen by extension.
func LoadFile(path string, requireYear bool, opts ...Option) (*engine.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadWorkbook(f, "", requireYear, opts...)
	default:
		return LoadReader(f, requireYear, opts...)
	}
}

// ============================================================================
// ROW NORMALIZATION — shared by CSV and workbook loaders
// ============================================================================

// buildTable maps raw rows to Records through the header table and keeps
// only rows with a university (and a year when required).
func buildTable(headers []string, rows [][]string, requireYear bool, skipped int, cfg *loadConfig) *engine.Table {
	mapping := schema.Resolve(headers)

	records := make([]engine.Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, ok := normalizeRow(mapping, row, requireYear)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	attrs := []any{
		slog.Int("rows", len(rows)),
		slog.Int("kept", len(records)),
		slog.Int("dropped", dropped),
		slog.Int("malformed", skipped),
	}
	if len(mapping.Skipped) > 0 {
		names := make([]string, len(mapping.Skipped))
		for i, s := range mapping.Skipped {
			names[i] = s.Column
		}
		attrs = append(attrs, slog.Any("skipped_headers", names))
	}
	if missing := mapping.Missing(requireYear); len(missing) > 0 {
		attrs = append(attrs, slog.Any("missing_headers", missing))
	}
	cfg.logger.Debug("enrolment table loaded", attrs...)

	return engine.NewTable(records)
}

func normalizeRow(m schema.Mapping, row []string, requireYear bool) (engine.Record, bool) {
	university := strings.TrimSpace(m.Cell(row, schema.KeyUniversity))
	if university == "" {
		return engine.Record{}, false
	}
	year := strings.TrimSpace(m.Cell(row, schema.KeyYear))
	if requireYear && year == "" {
		return engine.Record{}, false
	}

	return engine.Record{
		University:   university,
		Year:         year,
		Province:     NormalizeProvince(m.Cell(row, schema.KeyProvince)),
		FullTimeUG:   ParseNumber(m.Cell(row, schema.KeyFullTimeUG)),
		FullTimeGrad: ParseNumber(m.Cell(row, schema.KeyFullTimeGrad)),
		PartTimeUG:   ParseNumber(m.Cell(row, schema.KeyPartTimeUG)),
		PartTimeGrad: ParseNumber(m.Cell(row, schema.KeyPartTimeGrad)),
	}, true
}

// ParseNumber normalizes an enrolment count. Commas are thousands
// separators. Empty, unparsable, non-finite and negative input yield 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	return f
}

// NormalizeProvince trims a province cell, defaulting blanks to "Unknown".
func NormalizeProvince(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return engine.UnknownProvince
	}
	return p
}

// ReadHeader returns the header row of a CSV or XLSX file without loading
// its records. An empty file yields no headers.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return workbookHeader(f, "")
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return headers, nil
}
