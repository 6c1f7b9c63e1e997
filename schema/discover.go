package schema

import (
	"github.com/spektr-org/enroldash/engine"
)

// ============================================================================
// DATASET PROFILE — What a loaded table contains
// ============================================================================
// Describe inspects a Table and reports its dimensions with sample values
// and its measures with totals. The CLI prints this in discover mode so a
// user can see which provinces and years are available before querying.
// ============================================================================

// DefaultSampleSize caps the sample values listed per dimension.
const DefaultSampleSize = 10

// Profile describes the shape of a loaded table.
type Profile struct {
	Rows       int             `json:"rows"`
	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a categorical field used for grouping/filtering.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	Cardinality     int      `json:"cardinality"`
	CardinalityHint string   `json:"cardinalityHint"` // "low", "medium", "high"
	SampleValues    []string `json:"sampleValues"`
	IsTemporal      bool     `json:"isTemporal,omitempty"`
}

// MeasureMeta describes a numeric enrolment field.
type MeasureMeta struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	Total       float64 `json:"total"`
	Max         float64 `json:"max"`
	ZeroRows    int     `json:"zeroRows"`
}

// DescribeOptions controls profiling.
type DescribeOptions struct {
	SampleSize int // Max sample values per dimension (0 = DefaultSampleSize)
}

// Describe profiles a table. A nil or empty table yields a profile with
// zero rows and empty sample lists.
func Describe(view engine.RecordView, opts ...DescribeOptions) Profile {
	opt := DescribeOptions{SampleSize: DefaultSampleSize}
	if len(opts) > 0 && opts[0].SampleSize > 0 {
		opt = opts[0]
	}

	rows := 0
	if view != nil {
		rows = view.Len()
	}
	p := Profile{Rows: rows}

	for _, c := range Columns {
		switch c.Kind {
		case KindDimension:
			if rows == 0 {
				p.Dimensions = append(p.Dimensions, DimensionMeta{
					Key: c.Key, DisplayName: c.DisplayName, SampleValues: []string{},
					CardinalityHint: "low", IsTemporal: c.Key == KeyYear,
				})
				continue
			}
			p.Dimensions = append(p.Dimensions, describeDimension(view, c, opt.SampleSize))
		case KindMeasure:
			p.Measures = append(p.Measures, describeMeasure(view, rows, c))
		}
	}
	return p
}

func describeDimension(view engine.RecordView, c ColumnMeta, sampleSize int) DimensionMeta {
	values := engine.LabelUniverse(view, engine.Dimension(c.Key))
	samples := values
	if len(samples) > sampleSize {
		samples = samples[:sampleSize]
	}
	return DimensionMeta{
		Key:             c.Key,
		DisplayName:     c.DisplayName,
		Cardinality:     len(values),
		CardinalityHint: cardinalityHint(len(values), view.Len()),
		SampleValues:    append([]string{}, samples...),
		IsTemporal:      c.Key == KeyYear,
	}
}

func describeMeasure(view engine.RecordView, rows int, c ColumnMeta) MeasureMeta {
	m := MeasureMeta{Key: c.Key, DisplayName: c.DisplayName}
	f := engine.Field(c.Key)
	for i := 0; i < rows; i++ {
		v := view.At(i).Value(f)
		m.Total += v
		if v > m.Max {
			m.Max = v
		}
		if v == 0 {
			m.ZeroRows++
		}
	}
	return m
}

// cardinalityHint buckets distinct counts relative to the row count.
func cardinalityHint(distinct, rows int) string {
	switch {
	case distinct <= 15:
		return "low"
	case rows > 0 && float64(distinct)/float64(rows) > 0.8:
		return "high"
	default:
		return "medium"
	}
}
