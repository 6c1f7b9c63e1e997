package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ENROLDASH ENGINE TYPES — Enrolment Records, Queries and Results
// ============================================================================
// Record holds one normalized row. Table is the immutable collection a loader
// produces. Query selects grouping, filtering and value fields. Result is the
// ordered label/values list a chart renderer consumes directly.
//
// Dependency: engine has ZERO external dependencies.
// ============================================================================

var (
	ErrUnknownField = errors.New("engine: unknown enrolment field")
	ErrUnknownMode  = errors.New("engine: unknown study mode")
	ErrUnknownLevel = errors.New("engine: unknown study level")
	ErrUnknownPanel = errors.New("engine: unknown panel kind")
)

// ============================================================================
// FIELDS — enrolment counts, spelled exactly as composed keys
// ============================================================================

// Field names one of the four numeric enrolment counts.
type Field string

const (
	FullTimeUG   Field = "fullTimeUG"
	FullTimeGrad Field = "fullTimeGrad"
	PartTimeUG   Field = "partTimeUG"
	PartTimeGrad Field = "partTimeGrad"
)

// Fields lists every enrolment field in canonical order.
var Fields = []Field{FullTimeUG, FullTimeGrad, PartTimeUG, PartTimeGrad}

// ParseField validates a user-supplied field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// StudyMode is the first half of a composed key.
type StudyMode string

// StudyLevel is the second half of a composed key.
type StudyLevel string

const (
	FullTime StudyMode = "fullTime"
	PartTime StudyMode = "partTime"

	Undergrad StudyLevel = "UG"
	Graduate  StudyLevel = "Grad"
)

// ParseStudyMode validates a user-supplied study mode.
func ParseStudyMode(s string) (StudyMode, error) {
	switch StudyMode(s) {
	case FullTime, PartTime:
		return StudyMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ParseStudyLevel validates a user-supplied study level.
func ParseStudyLevel(s string) (StudyLevel, error) {
	switch StudyLevel(s) {
	case Undergrad, Graduate:
		return StudyLevel(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// ComposeField joins a study mode and level into a field name.
// Combinations outside {fullTime,partTime} × {UG,Grad} produce a field that
// resolves to 0 on every record.
func ComposeField(mode StudyMode, level StudyLevel) Field {
	return Field(string(mode) + string(level))
}

// ============================================================================
// DIMENSIONS
// ============================================================================

// Dimension names a categorical column used for grouping and filtering.
type Dimension string

const (
	DimUniversity Dimension = "university"
	DimProvince   Dimension = "province"
	DimYear       Dimension = "year"
)

// UnknownProvince replaces blank province cells.
const UnknownProvince = "Unknown"

// ============================================================================
// RECORD
// ============================================================================

// Record is one normalized row of enrolment data. Every numeric field is
// populated, so aggregation never branches on absence.
type Record struct {
	University   string  `json:"university"`
	Year         string  `json:"year,omitempty"`
	Province     string  `json:"province"`
	FullTimeUG   float64 `json:"fullTimeUG"`
	FullTimeGrad float64 `json:"fullTimeGrad"`
	PartTimeUG   float64 `json:"partTimeUG"`
	PartTimeGrad float64 `json:"partTimeGrad"`
}

// Value returns the named enrolment count, or 0 for an unknown field.
func (r Record) Value(f Field) float64 {
	switch f {
	case FullTimeUG:
		return r.FullTimeUG
	case FullTimeGrad:
		return r.FullTimeGrad
	case PartTimeUG:
		return r.PartTimeUG
	case PartTimeGrad:
		return r.PartTimeGrad
	default:
		return 0
	}
}

// Dimension returns the named categorical value.
func (r Record) Dimension(d Dimension) string {
	switch d {
	case DimUniversity:
		return r.University
	case DimProvince:
		return r.Province
	case DimYear:
		return r.Year
	default:
		return ""
	}
}

// Total sums all four enrolment counts.
func (r Record) Total() float64 {
	return r.FullTimeUG + r.FullTimeGrad + r.PartTimeUG + r.PartTimeGrad
}

// ============================================================================
// QUERY
// ============================================================================

// Query parameterizes one Aggregate call.
//
// GroupBy province or year sums ValueKeys per label. GroupBy university emits
// one entry per filtered record carrying its raw values.
type Query struct {
	GroupBy   Dimension `json:"groupBy"`
	Filter    Filter    `json:"-"`
	ValueKeys []Field   `json:"valueKeys"`
}

// ComposedQuery builds a single-key query from a study mode and level.
func ComposedQuery(groupBy Dimension, mode StudyMode, level StudyLevel, filter Filter) Query {
	return Query{
		GroupBy:   groupBy,
		Filter:    filter,
		ValueKeys: []Field{ComposeField(mode, level)},
	}
}

// ============================================================================
// RESULT
// ============================================================================

// Entry is one label with one value per query key.
type Entry struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Result is the ordered output of Aggregate.
type Result struct {
	GroupBy Dimension `json:"groupBy"`
	Keys    []Field   `json:"keys"`
	Entries []Entry   `json:"entries"`
}

// Labels returns entry labels in order.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Column returns the values for the key at index k across all entries.
func (r Result) Column(k int) []float64 {
	col := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		if k >= 0 && k < len(e.Values) {
			col[i] = e.Values[k]
		}
	}
	return col
}

// Total sums every value in the result.
func (r Result) Total() float64 {
	var total float64
	for _, e := range r.Entries {
		for _, v := range e.Values {
			total += v
		}
	}
	return total
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Labels     []string      `json:"labels"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Key   string    `json:"key"`
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// SummaryData describes a panel in one sentence plus headline figures.
type SummaryData struct {
	Total       float64     `json:"total"`
	Value       string      `json:"value"`
	Period      string      `json:"period,omitempty"`
	Count       int         `json:"count"`
	Description string      `json:"description"`
	Growth      *GrowthData `json:"growth,omitempty"`
}

// GrowthData contains change-over-time metrics for year-grouped results.
type GrowthData struct {
	EarliestValue  float64 `json:"earliestValue"`
	LatestValue    float64 `json:"latestValue"`
	EarliestPeriod string  `json:"earliestPeriod"`
	LatestPeriod   string  `json:"latestPeriod"`
	ChangeAmount   float64 `json:"changeAmount"`
	ChangePercent  float64 `json:"changePercent"`
	Direction      string  `json:"direction"` // "increased", "decreased", "unchanged"
}

// ============================================================================
// OUTPUT — everything a renderer needs for one panel
// ============================================================================

// Output bundles the aggregation result with its render-ready forms.
type Output struct {
	Panel   Panel        `json:"panel"`
	Result  Result       `json:"result"`
	Chart   *ChartConfig `json:"chart"`
	Table   *TableData   `json:"table"`
	Summary *SummaryData `json:"summary"`
}
