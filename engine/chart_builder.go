package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a Panel + Result
// ============================================================================

// Default color palette for chart series and category bars.
var defaultColors = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#C9CBCF", "#36A2EB", "#FF6384", "#4BC0C0",
}

// trendColor is the single line colour of the trend chart.
const trendColor = "#36A2EB"

// BuildChart produces a ChartConfig from a panel and its aggregation result.
// An empty result yields a chart with no labels rather than nil.
func BuildChart(p Panel, result Result, t Translator, palette []string) *ChartConfig {
	if t == nil {
		t = identityTranslator
	}
	if len(palette) == 0 {
		palette = defaultColors
	}

	config := &ChartConfig{
		ChartType: p.ChartType,
		Title:     t.T(p.titleKey()),
		XAxis:     t.T(string(result.GroupBy)),
		YAxis:     t.T("enrolment"),
		Labels:    result.Labels(),
		ShowGrid:  true,
	}

	switch p.Kind {
	case PanelTrend:
		if config.ChartType == "" {
			config.ChartType = "line"
		}
		config.Series = buildKeySeries(result, t, []string{trendColor})
		config.Colors = []string{trendColor}

	case PanelProvinces:
		if config.ChartType == "" {
			config.ChartType = "bar"
		}
		config.Series = buildTotalSeries(result, t)
		config.Colors = assignColors(palette, len(config.Labels))

	default:
		if config.ChartType == "" {
			config.ChartType = "line"
		}
		config.Series = buildKeySeries(result, t, palette)
		config.Colors = assignColors(palette, len(config.Series))
		config.ShowLegend = true
	}

	if config.ChartType == "doughnut" || config.ChartType == "pie" {
		config.ShowGrid = false
		config.ShowLegend = true
	}

	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

// buildKeySeries emits one series per query key, named by its translation.
func buildKeySeries(result Result, t Translator, palette []string) []ChartSeries {
	series := make([]ChartSeries, 0, len(result.Keys))
	for k, key := range result.Keys {
		series = append(series, ChartSeries{
			Key:   string(key),
			Name:  t.T(string(key)),
			Data:  roundAll(result.Column(k)),
			Color: palette[k%len(palette)],
		})
	}
	return series
}

// buildTotalSeries emits the single summed series of the province chart.
func buildTotalSeries(result Result, t Translator) []ChartSeries {
	key := ""
	if len(result.Keys) > 0 {
		key = string(result.Keys[0])
	}
	return []ChartSeries{{
		Key:  key,
		Name: t.T("totalEnrollment"),
		Data: roundAll(result.Column(0)),
	}}
}

func roundAll(values []float64) []float64 {
	for i, v := range values {
		values[i] = RoundTo2(v)
	}
	return values
}

func assignColors(palette []string, count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
