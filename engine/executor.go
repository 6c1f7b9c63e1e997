package engine

import (
	"fmt"
	"log/slog"
)

// ============================================================================
// EXECUTOR — Panel → Query → Result → render-ready Output
// ============================================================================
// Entry point: Render(view, panel, opts...)
//
// Pipeline:
//   1. Validate the panel and map it to a Query
//   2. Aggregate against the unfiltered view
//   3. Build chart, table and summary
//
// Render never mutates the view and keeps no state between calls.
// ============================================================================

// Render runs one dashboard panel against view.
// Options:
//   - WithTranslator(t) — localizes titles, axis and series names
//   - WithPalette(colors) — overrides chart colours
//   - WithLogger(l) — structured logging
func Render(view RecordView, p Panel, opts ...Option) (*Output, error) {
	cfg := applyOptions(opts)

	q, err := p.Query()
	if err != nil {
		return nil, fmt.Errorf("invalid %s panel: %w", p.Kind, err)
	}

	result := Aggregate(view, q)

	cfg.Logger.Debug("panel aggregated",
		slog.String("panel", string(p.Kind)),
		slog.String("group_by", string(q.GroupBy)),
		slog.Any("keys", q.ValueKeys),
		slog.Int("records", lenOf(view)),
		slog.Int("entries", len(result.Entries)),
	)

	return &Output{
		Panel:   p,
		Result:  result,
		Chart:   BuildChart(p, result, cfg.Translator, cfg.Palette),
		Table:   BuildTable(p, result, cfg.Translator),
		Summary: BuildSummary(p, result, cfg.Translator),
	}, nil
}

// RenderAll renders panels in order, stopping at the first invalid one.
func RenderAll(view RecordView, panels []Panel, opts ...Option) ([]*Output, error) {
	outputs := make([]*Output, 0, len(panels))
	for _, p := range panels {
		out, err := Render(view, p, opts...)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func lenOf(view RecordView) int {
	if view == nil {
		return 0
	}
	return view.Len()
}
