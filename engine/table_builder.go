package engine

// ============================================================================
// TABLE BUILDER — Produces TableData from a Panel + Result
// ============================================================================
// One text column for the label, one numeric column per query key, and a
// summary row of per-key totals. Numbers are formatted for the translator's
// locale when it can format them.
// ============================================================================

// BuildTable produces a TableData from a panel and its aggregation result.
func BuildTable(p Panel, result Result, t Translator) *TableData {
	if t == nil {
		t = identityTranslator
	}

	columns := make([]Column, 0, len(result.Keys)+1)
	columns = append(columns, Column{
		Key:   string(result.GroupBy),
		Label: t.T(string(result.GroupBy)),
		Type:  "text",
		Align: "left",
	})
	for _, key := range result.Keys {
		columns = append(columns, Column{
			Key:   string(key),
			Label: t.T(string(key)),
			Type:  "number",
			Align: "right",
		})
	}

	rows := make([][]string, 0, len(result.Entries))
	totals := make([]float64, len(result.Keys))
	for _, e := range result.Entries {
		row := make([]string, 0, len(columns))
		row = append(row, e.Label)
		for k := range result.Keys {
			var v float64
			if k < len(e.Values) {
				v = e.Values[k]
			}
			row = append(row, formatNumber(t, v))
			totals[k] += v
		}
		rows = append(rows, row)
	}

	values := make(map[string]string, len(result.Keys))
	for k, key := range result.Keys {
		values[string(key)] = formatNumber(t, totals[k])
	}

	return &TableData{
		Title:   t.T(p.titleKey()),
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  t.T("total"),
			Values: values,
		},
	}
}
