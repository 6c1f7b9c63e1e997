package schema

import (
	"testing"

	"github.com/spektr-org/enroldash/engine"
)

// ============================================================================
// PROFILE TESTS
// ============================================================================

var sampleTable = engine.NewTable([]engine.Record{
	{University: "Dalhousie", Year: "2022", Province: "Nova Scotia", FullTimeUG: 100, PartTimeGrad: 5},
	{University: "Acadia", Year: "2020", Province: "Nova Scotia", FullTimeUG: 50},
	{University: "Toronto", Year: "2021", Province: "Ontario", FullTimeUG: 10, FullTimeGrad: 7},
	{University: "Dalhousie", Year: "2020", Province: "Nova Scotia", FullTimeUG: 90},
})

func TestDescribe(t *testing.T) {
	p := Describe(sampleTable)

	if p.Rows != 4 {
		t.Errorf("Rows = %d, want 4", p.Rows)
	}
	if len(p.Dimensions) != 3 || len(p.Measures) != 4 {
		t.Fatalf("expected 3 dimensions and 4 measures, got %d/%d", len(p.Dimensions), len(p.Measures))
	}

	for _, d := range p.Dimensions {
		switch d.Key {
		case KeyUniversity:
			if d.Cardinality != 3 {
				t.Errorf("university cardinality = %d, want 3", d.Cardinality)
			}
			if d.SampleValues[0] != "Dalhousie" {
				t.Errorf("university samples should keep first-seen order, got %v", d.SampleValues)
			}
		case KeyProvince:
			if d.Cardinality != 2 || d.SampleValues[0] != "Nova Scotia" || d.SampleValues[1] != "Ontario" {
				t.Errorf("unexpected province meta %+v", d)
			}
			if d.CardinalityHint != "low" {
				t.Errorf("province hint = %q, want low", d.CardinalityHint)
			}
		case KeyYear:
			if !d.IsTemporal {
				t.Error("year should be temporal")
			}
			want := []string{"2020", "2021", "2022"}
			for i, y := range want {
				if d.SampleValues[i] != y {
					t.Errorf("years should be sorted, got %v", d.SampleValues)
					break
				}
			}
		}
	}

	for _, m := range p.Measures {
		switch m.Key {
		case KeyFullTimeUG:
			if m.Total != 250 || m.Max != 100 || m.ZeroRows != 0 {
				t.Errorf("unexpected fullTimeUG meta %+v", m)
			}
		case KeyPartTimeUG:
			if m.Total != 0 || m.ZeroRows != 4 {
				t.Errorf("unexpected partTimeUG meta %+v", m)
			}
		}
	}
}

func TestDescribeSampleSize(t *testing.T) {
	p := Describe(sampleTable, DescribeOptions{SampleSize: 1})
	for _, d := range p.Dimensions {
		if len(d.SampleValues) > 1 {
			t.Errorf("%s: expected at most 1 sample, got %v", d.Key, d.SampleValues)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	for _, view := range []engine.RecordView{nil, engine.NewTable(nil)} {
		p := Describe(view)
		if p.Rows != 0 {
			t.Errorf("Rows = %d, want 0", p.Rows)
		}
		for _, d := range p.Dimensions {
			if d.SampleValues == nil || len(d.SampleValues) != 0 {
				t.Errorf("%s: expected empty non-nil samples", d.Key)
			}
		}
		for _, m := range p.Measures {
			if m.Total != 0 {
				t.Errorf("%s: expected zero total", m.Key)
			}
		}
	}
}

func TestCardinalityHint(t *testing.T) {
	tests := []struct {
		distinct, rows int
		want           string
	}{
		{3, 100, "low"},
		{15, 15, "low"},
		{90, 100, "high"},
		{40, 100, "medium"},
	}
	for _, tt := range tests {
		if got := cardinalityHint(tt.distinct, tt.rows); got != tt.want {
			t.Errorf("cardinalityHint(%d, %d) = %q, want %q", tt.distinct, tt.rows, got, tt.want)
		}
	}
}
