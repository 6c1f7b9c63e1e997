package schema

import (
	"strings"
)

// ============================================================================
// SCHEMA — The fixed header table of the enrolment dataset
// ============================================================================
// Source files carry human-readable headers ("Full-time Undergrad"). The
// loader maps them to record keys through this table. Matching is exact or
// case-insensitive after trimming whitespace, quotes and a UTF-8 BOM.
// ============================================================================

// Record keys. Measure keys are spelled like engine.Field values.
const (
	KeyUniversity   = "university"
	KeyYear         = "year"
	KeyProvince     = "province"
	KeyFullTimeUG   = "fullTimeUG"
	KeyFullTimeGrad = "fullTimeGrad"
	KeyPartTimeUG   = "partTimeUG"
	KeyPartTimeGrad = "partTimeGrad"
)

// Kind classifies a column.
type Kind string

const (
	KindDimension Kind = "dimension"
	KindMeasure   Kind = "measure"
)

// ColumnMeta describes one recognized source column.
type ColumnMeta struct {
	Header      string `json:"header"`
	Key         string `json:"key"`
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"displayName"`
}

// Columns is the hardcoded header → key table.
var Columns = []ColumnMeta{
	{Header: "University", Key: KeyUniversity, Kind: KindDimension, DisplayName: "University"},
	{Header: "Year", Key: KeyYear, Kind: KindDimension, DisplayName: "Year"},
	{Header: "Province", Key: KeyProvince, Kind: KindDimension, DisplayName: "Province"},
	{Header: "Full-time Undergrad", Key: KeyFullTimeUG, Kind: KindMeasure, DisplayName: "Full-time Undergraduate"},
	{Header: "Full-time Graduate", Key: KeyFullTimeGrad, Kind: KindMeasure, DisplayName: "Full-time Graduate"},
	{Header: "Part-time Undergrad", Key: KeyPartTimeUG, Kind: KindMeasure, DisplayName: "Part-time Undergraduate"},
	{Header: "Part-time Graduate", Key: KeyPartTimeGrad, Kind: KindMeasure, DisplayName: "Part-time Graduate"},
}

// SkippedColumn records a header the table does not recognize.
type SkippedColumn struct {
	Column string `json:"column"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Mapping is the result of resolving a header row.
type Mapping struct {
	index   map[string]int
	Skipped []SkippedColumn `json:"skippedColumns,omitempty"`
}

// Resolve maps a header row to column indices. Unrecognized headers are
// reported in Skipped; for duplicated headers the first occurrence wins.
func Resolve(headers []string) Mapping {
	byHeader := make(map[string]string, len(Columns))
	for _, c := range Columns {
		byHeader[NormalizeHeader(c.Header)] = c.Key
	}

	m := Mapping{index: make(map[string]int, len(Columns))}
	for i, h := range headers {
		key, ok := byHeader[NormalizeHeader(h)]
		if !ok {
			m.Skipped = append(m.Skipped, SkippedColumn{Column: h, Index: i, Reason: "unrecognized header"})
			continue
		}
		if _, dup := m.index[key]; dup {
			m.Skipped = append(m.Skipped, SkippedColumn{Column: h, Index: i, Reason: "duplicate header"})
			continue
		}
		m.index[key] = i
	}
	return m
}

// Inspect resolves headers and lists the columns a load would need but
// cannot find.
func Inspect(headers []string, requireYear bool) (Mapping, []string) {
	m := Resolve(headers)
	return m, m.Missing(requireYear)
}

// Index returns the column position of key, or -1 when absent.
func (m Mapping) Index(key string) int {
	if i, ok := m.index[key]; ok {
		return i
	}
	return -1
}

// Has reports whether key was found in the header row.
func (m Mapping) Has(key string) bool {
	return m.Index(key) >= 0
}

// Cell returns the value of key in row, or "" when the column is absent or
// the row is short.
func (m Mapping) Cell(row []string, key string) string {
	i := m.Index(key)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Missing lists the keys the loader needs but the header row lacks.
// Year is only required when requireYear is set.
func (m Mapping) Missing(requireYear bool) []string {
	var missing []string
	for _, c := range Columns {
		if c.Key == KeyYear && !requireYear {
			continue
		}
		if !m.Has(c.Key) {
			missing = append(missing, c.Header)
		}
	}
	return missing
}

// NormalizeHeader lowercases a header after stripping a UTF-8 BOM,
// surrounding whitespace and quotes.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	h = strings.Trim(h, `"'`)
	return strings.ToLower(strings.TrimSpace(h))
}

// MeasureKeys returns the measure keys in table order.
func MeasureKeys() []string {
	var keys []string
	for _, c := range Columns {
		if c.Kind == KindMeasure {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// DimensionKeys returns the dimension keys in table order.
func DimensionKeys() []string {
	var keys []string
	for _, c := range Columns {
		if c.Kind == KindDimension {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
