package engine

// ============================================================================
// FILTERS — Record Predicates
// ============================================================================
// Filter is a record predicate. Matching is exact: province, year and
// university values are already trimmed by the loader.
// ApplyFilter returns a SubView (index list into parent) — zero data copy.
// ============================================================================

// Filter reports whether a record is included. A nil Filter includes all.
type Filter func(Record) bool

// ByProvince matches records whose province equals p exactly.
func ByProvince(p string) Filter {
	return func(r Record) bool { return r.Province == p }
}

// ByYear matches records whose year equals y exactly.
func ByYear(y string) Filter {
	return func(r Record) bool { return r.Year == y }
}

// ByUniversity matches records whose university equals u exactly.
func ByUniversity(u string) Filter {
	return func(r Record) bool { return r.University == u }
}

// And matches records passing every non-nil filter.
func And(filters ...Filter) Filter {
	return func(r Record) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// Match applies f to r, treating nil as "include".
func (f Filter) Match(r Record) bool {
	return f == nil || f(r)
}

// ApplyFilter returns a view of records passing f.
// A nil filter returns the original view.
func ApplyFilter(view RecordView, f Filter) RecordView {
	if f == nil {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if f(view.At(i)) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}
