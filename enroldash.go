// Package enroldash turns university enrolment spreadsheets into the data a
// bilingual dashboard draws.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/enroldash/engine"
//	    "github.com/spektr-org/enroldash/helpers"
//	    "github.com/spektr-org/enroldash/translator"
//	)
//
//	table := helpers.Load(csvText, false)
//	catalog, _ := translator.New()
//
//	out, err := engine.Render(table, engine.DefaultPanel(engine.PanelTrend),
//	    engine.WithTranslator(catalog.For(translator.French)),
//	)
//
// Loading never fails on bad cells: rows without a university are dropped,
// unparsable counts become 0 and blank provinces become "Unknown".
// Aggregation always emits every label of the unfiltered table, so a
// filtered-out province or year shows up as 0 rather than disappearing.
//
// The engine never touches the network or the filesystem. Switching the
// language or a dashboard filter is just another Render call against the
// same immutable Table.
package enroldash
