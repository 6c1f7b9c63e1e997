package engine

// ============================================================================
// RECORD VIEW — Read-Only Data Access Interface
// ============================================================================
// The engine never mutates loaded data. It reads through this interface.
//
// Implementations:
//   Table   — the immutable collection built by a loader
//   SubView — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed read access to enrolment records.
type RecordView interface {
	Len() int
	At(index int) Record
}

// ============================================================================
// TABLE — immutable, ordered, built once per source
// ============================================================================

// Table is an ordered, immutable sequence of Records.
// It is safe for concurrent readers.
type Table struct {
	records []Record
}

// NewTable copies records into a new Table.
func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of records. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at index i, or the zero Record when out of range.
func (t *Table) At(i int) Record {
	if t == nil || i < 0 || i >= len(t.records) {
		return Record{}
	}
	return t.records[i]
}

// Records returns a copy of the table's records.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	cp := make([]Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) At(i int) Record {
	if i < 0 || i >= len(v.indices) {
		return Record{}
	}
	return v.parent.At(v.indices[i])
}
