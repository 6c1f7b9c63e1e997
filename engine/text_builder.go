package engine

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Produces SummaryData for a Panel + Result
// ============================================================================
// The description comes from the panel's catalog entry with placeholders
// resolved: {period}, {province}, {type}, {mode}, {level}, {total}.
// ============================================================================

// BuildSummary produces headline figures and a description for a panel.
func BuildSummary(p Panel, result Result, t Translator) *SummaryData {
	if t == nil {
		t = identityTranslator
	}

	total := result.Total()
	summary := &SummaryData{
		Total: total,
		Value: formatNumber(t, total),
		Count: len(result.Entries),
	}

	if result.GroupBy == DimYear {
		summary.Period = derivePeriod(result.Labels(), t)
		summary.Growth = BuildGrowth(result)
	}

	province := p.Province
	if province == "" {
		province = t.T("allProvinces")
	}

	replacements := map[string]string{
		"{period}":   summary.Period,
		"{province}": province,
		"{type}":     t.T(string(p.Type)),
		"{mode}":     t.T(string(p.Mode)),
		"{level}":    t.T(levelKey(p.Level)),
		"{total}":    summary.Value,
	}
	summary.Description = ResolvePlaceholders(t.T(p.descriptionKey()), replacements)

	return summary
}

// ============================================================================
// GROWTH BUILDER
// ============================================================================

// BuildGrowth compares the first and last labels of a year-grouped result
// using its first key. Fewer than two labels yields nil.
func BuildGrowth(result Result) *GrowthData {
	if len(result.Entries) < 2 || len(result.Keys) == 0 {
		return nil
	}

	values := result.Column(0)
	earliest := result.Entries[0].Label
	latest := result.Entries[len(result.Entries)-1].Label
	first := values[0]
	last := values[len(values)-1]

	changeAmount := last - first
	var changePercent float64
	if first != 0 {
		changePercent = (changeAmount / first) * 100
	}

	direction := "unchanged"
	switch {
	case changePercent > 0.5, first == 0 && last > 0:
		direction = "increased"
	case changePercent < -0.5:
		direction = "decreased"
	}

	return &GrowthData{
		EarliestValue:  first,
		LatestValue:    last,
		EarliestPeriod: earliest,
		LatestPeriod:   latest,
		ChangeAmount:   changeAmount,
		ChangePercent:  RoundTo2(changePercent),
		Direction:      direction,
	}
}

// FormatGrowth renders a growth percentage with an arrow.
func FormatGrowth(g *GrowthData) string {
	if g == nil {
		return ""
	}
	abs := math.Abs(g.ChangePercent)
	switch g.Direction {
	case "increased":
		return fmt.Sprintf("↑ %.1f%%", abs)
	case "decreased":
		return fmt.Sprintf("↓ %.1f%%", abs)
	default:
		return "→ 0%"
	}
}

// ============================================================================
// PERIOD + PLACEHOLDER HELPERS
// ============================================================================

// derivePeriod builds "first – last" from sorted year labels.
func derivePeriod(labels []string, t Translator) string {
	switch len(labels) {
	case 0:
		return t.T("noData")
	case 1:
		return labels[0]
	default:
		return fmt.Sprintf("%s – %s", labels[0], labels[len(labels)-1])
	}
}

func levelKey(l StudyLevel) string {
	switch l {
	case Undergrad:
		return "undergrad"
	case Graduate:
		return "grad"
	default:
		return string(l)
	}
}

// ResolvePlaceholders substitutes values into a template and strips any
// placeholder left unresolved.
func ResolvePlaceholders(template string, replacements map[string]string) string {
	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return stripUnresolvedPlaceholders(result)
}

var placeholderRegex = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

func stripUnresolvedPlaceholders(text string) string {
	cleaned := placeholderRegex.ReplaceAllString(text, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return text
	}
	return cleaned
}
