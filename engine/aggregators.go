package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ============================================================================
// AGGREGATORS — Label Universes, Grouped Sums and Per-Record Series
// ============================================================================
// Label universes are always discovered on the unfiltered view so every
// label appears in the result, even when its filtered group is empty.
// All ordering is explicit — no map iteration order reaches the output.
// ============================================================================

// Aggregate runs q against view and returns an ordered Result.
//
// GroupBy province or year: one entry per label in the unfiltered label
// universe, each value the sum of its key over records passing q.Filter.
// GroupBy university: one entry per filtered record in table order,
// each value the record's raw field.
func Aggregate(view RecordView, q Query) Result {
	keys := make([]Field, len(q.ValueKeys))
	copy(keys, q.ValueKeys)

	result := Result{
		GroupBy: q.GroupBy,
		Keys:    keys,
		Entries: []Entry{},
	}
	if view == nil || view.Len() == 0 {
		return result
	}

	if q.GroupBy == DimUniversity {
		result.Entries = seriesByRecord(ApplyFilter(view, q.Filter), DimUniversity, keys)
		return result
	}

	result.Entries = sumByLabel(view, q.GroupBy, q.Filter, keys)
	return result
}

// ============================================================================
// LABEL UNIVERSE
// ============================================================================

// LabelUniverse returns the distinct values of dim across view.
// Province and university keep first-seen order. Year is sorted ascending
// and skips records without a year.
func LabelUniverse(view RecordView, dim Dimension) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		val := view.At(i).Dimension(dim)
		if dim == DimYear && val == "" {
			continue
		}
		if !seen[val] {
			seen[val] = true
			labels = append(labels, val)
		}
	}

	if dim == DimYear {
		SortLabels(labels)
	}
	return labels
}

// SortLabels sorts labels ascending. Two integer labels compare numerically,
// anything else compares as strings.
func SortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return labelLess(labels[i], labels[j])
	})
}

func labelLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}

// ============================================================================
// GROUPED SUMS
// ============================================================================

func sumByLabel(view RecordView, dim Dimension, filter Filter, keys []Field) []Entry {
	labels := LabelUniverse(view, dim)

	position := make(map[string]int, len(labels))
	entries := make([]Entry, len(labels))
	for i, label := range labels {
		position[label] = i
		entries[i] = Entry{Label: label, Values: make([]float64, len(keys))}
	}

	for i := 0; i < view.Len(); i++ {
		rec := view.At(i)
		if !filter.Match(rec) {
			continue
		}
		pos, ok := position[rec.Dimension(dim)]
		if !ok {
			continue
		}
		for k, key := range keys {
			entries[pos].Values[k] += rec.Value(key)
		}
	}
	return entries
}

// SumField sums a field across a view.
func SumField(view RecordView, f Field) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.At(i).Value(f)
	}
	return total
}

// ============================================================================
// PER-RECORD SERIES
// ============================================================================

func seriesByRecord(view RecordView, dim Dimension, keys []Field) []Entry {
	entries := make([]Entry, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		rec := view.At(i)
		values := make([]float64, len(keys))
		for k, key := range keys {
			values[k] = rec.Value(key)
		}
		entries = append(entries, Entry{Label: rec.Dimension(dim), Values: values})
	}
	return entries
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatCount formats an enrolment figure: whole numbers with separators,
// fractions with two decimals.
func FormatCount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return FormatInt(int64(v))
	}
	return strconv.FormatFloat(RoundTo2(v), 'f', 2, 64)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
