package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// PANELS — Dashboard chart settings mapped to Queries
// ============================================================================
// A Panel is the state behind one dashboard chart: which province is
// selected, which enrolment type(s), which study mode and level. Every UI
// interaction builds a new Panel and calls Render again against the same
// Table; nothing is observed or cached.
// ============================================================================

// PanelKind selects one of the dashboard charts.
type PanelKind string

const (
	// PanelTrend sums one enrolment type per year for a province.
	PanelTrend PanelKind = "trend"
	// PanelProvinces sums a mode+level key per province.
	PanelProvinces PanelKind = "provinces"
	// PanelUniversities lists raw values per university for a province.
	PanelUniversities PanelKind = "universities"
)

// PanelKinds lists every panel in dashboard order.
var PanelKinds = []PanelKind{PanelTrend, PanelProvinces, PanelUniversities}

// DefaultProvince is the province selected when a dashboard opens.
const DefaultProvince = "Nova Scotia"

// ParsePanelKind validates a user-supplied panel name.
func ParsePanelKind(s string) (PanelKind, error) {
	k := PanelKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PanelKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPanel, s)
}

// Panel holds the settings of one dashboard chart.
type Panel struct {
	Kind      PanelKind  `json:"kind" yaml:"kind"`
	Province  string     `json:"province,omitempty" yaml:"province"`
	Type      Field      `json:"type,omitempty" yaml:"type"`
	Types     []Field    `json:"types,omitempty" yaml:"types"`
	Mode      StudyMode  `json:"mode,omitempty" yaml:"mode"`
	Level     StudyLevel `json:"level,omitempty" yaml:"level"`
	ChartType string     `json:"chartType,omitempty" yaml:"chartType"`
}

// DefaultPanel returns the settings a freshly opened dashboard shows.
func DefaultPanel(kind PanelKind) Panel {
	p := Panel{Kind: kind}
	switch kind {
	case PanelTrend:
		p.Province = DefaultProvince
		p.Type = FullTimeUG
	case PanelProvinces:
		p.Mode = FullTime
		p.Level = Undergrad
	case PanelUniversities:
		p.Province = DefaultProvince
		p.Types = append([]Field(nil), Fields...)
	}
	return p
}

// Query validates the panel settings and maps them to an engine Query.
// An empty province means no province restriction.
func (p Panel) Query() (Query, error) {
	var filter Filter
	if p.Province != "" {
		filter = ByProvince(p.Province)
	}

	switch p.Kind {
	case PanelTrend:
		f, err := ParseField(string(p.Type))
		if err != nil {
			return Query{}, err
		}
		return Query{GroupBy: DimYear, Filter: filter, ValueKeys: []Field{f}}, nil

	case PanelProvinces:
		mode, err := ParseStudyMode(string(p.Mode))
		if err != nil {
			return Query{}, err
		}
		level, err := ParseStudyLevel(string(p.Level))
		if err != nil {
			return Query{}, err
		}
		return ComposedQuery(DimProvince, mode, level, nil), nil

	case PanelUniversities:
		keys := make([]Field, 0, len(p.Types))
		for _, t := range p.Types {
			f, err := ParseField(string(t))
			if err != nil {
				return Query{}, err
			}
			keys = append(keys, f)
		}
		return Query{GroupBy: DimUniversity, Filter: filter, ValueKeys: keys}, nil
	}

	return Query{}, fmt.Errorf("%w: %q", ErrUnknownPanel, p.Kind)
}

// titleKey and descriptionKey name the catalog entries for a panel.
func (p Panel) titleKey() string {
	switch p.Kind {
	case PanelTrend:
		return "chart1Title"
	case PanelProvinces:
		return "chart2Title"
	default:
		return "chart3Title"
	}
}

func (p Panel) descriptionKey() string {
	switch p.Kind {
	case PanelTrend:
		return "chart1Description"
	case PanelProvinces:
		return "chart2Description"
	default:
		return "chart3Description"
	}
}
