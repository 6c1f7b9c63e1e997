package helpers

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/enroldash/engine"
)

const enrolmentCSV = `University,Year,Province,Full-time Undergrad,Full-time Graduate,Part-time Undergrad,Part-time Graduate
Dalhousie,2020,Nova Scotia,"1,234",200,abc,
Acadia,2020,  Nova Scotia  ,500,20,5,1
,2020,Ontario,999,9,9,9
Toronto,,Ontario,"2,000",400,80,20
McGill,2021,,300,30,3,0
`

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"1,234", 1234},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12.5", 12.5},
		{" 42 ", 42},
		{"1,234,567", 1234567},
		{"-5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestNormalizeProvince(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ontario", NormalizeProvince("  Ontario  "))
	assert.Equal(t, engine.UnknownProvince, NormalizeProvince(""))
	assert.Equal(t, engine.UnknownProvince, NormalizeProvince(" \t"))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	table := Load(enrolmentCSV, false)
	recs := table.Records()

	require.Len(t, recs, 4, "row without University is dropped")
	assert.Equal(t, engine.Record{
		University: "Dalhousie", Year: "2020", Province: "Nova Scotia",
		FullTimeUG: 1234, FullTimeGrad: 200,
	}, recs[0])
	assert.Equal(t, "Nova Scotia", recs[1].Province)
	assert.Equal(t, "Toronto", recs[2].University)
	assert.Equal(t, "", recs[2].Year)
	assert.Equal(t, engine.UnknownProvince, recs[3].Province)
}

func TestLoadRequireYear(t *testing.T) {
	t.Parallel()

	recs := Load(enrolmentCSV, true).Records()
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.NotEmpty(t, r.Year)
		assert.NotEqual(t, "Toronto", r.University)
	}
}

func TestLoadMissingColumns(t *testing.T) {
	t.Parallel()

	recs := Load("University,Province\nDal,NS\nUNB,\n", true).Records()
	assert.Empty(t, recs, "no Year column drops every row when a year is required")

	recs = Load("University,Province\nDal,NS\nUNB,\n", false).Records()
	require.Len(t, recs, 2)
	assert.Equal(t, engine.Record{University: "Dal", Province: "NS"}, recs[0])
	assert.Equal(t, engine.UnknownProvince, recs[1].Province)
}

func TestLoadTolerantInput(t *testing.T) {
	t.Parallel()

	t.Run("BOM and header casing", func(t *testing.T) {
		recs := Load("\ufeffuniversity,PROVINCE,full-time undergrad\nDal,NS,7\n", false).Records()
		require.Len(t, recs, 1)
		assert.Equal(t, "Dal", recs[0].University)
		assert.Equal(t, 7.0, recs[0].FullTimeUG)
	})

	t.Run("short and long rows", func(t *testing.T) {
		recs := Load("University,Province,Full-time Undergrad\nDal\nUNB,NB,3,extra,cells\n", false).Records()
		require.Len(t, recs, 2)
		assert.Equal(t, engine.UnknownProvince, recs[0].Province)
		assert.Equal(t, 3.0, recs[1].FullTimeUG)
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		recs := Load("University,Province\r\nDal,NS\r\n", false).Records()
		require.Len(t, recs, 1)
		assert.Equal(t, "NS", recs[0].Province)
	})

	t.Run("whitespace-only university is dropped", func(t *testing.T) {
		assert.Equal(t, 0, Load("University,Province\n   ,NS\n", false).Len())
	})
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"empty":       "",
		"header only": "University,Year,Province\n",
		"all blank":   "University,Full-time Undergrad\nDal,\nUNB,\n",
	} {
		t.Run(name, func(t *testing.T) {
			table := Load(src, false)
			require.NotNil(t, table)
			assert.Equal(t, 0.0, engine.SumField(table, engine.FullTimeUG))
		})
	}
}

func TestLoadLogsStatistics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Load("University,Notes\nDal,x\n,y\n", true, WithLogger(logger))

	out := buf.String()
	assert.Contains(t, out, "enrolment table loaded")
	assert.Contains(t, out, "kept=0")
	assert.Contains(t, out, "dropped=2")
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "missing_headers")
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	table, err := LoadReader(strings.NewReader(enrolmentCSV), false)
	require.NoError(t, err)
	assert.Equal(t, Load(enrolmentCSV, false), table)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "enrolment.csv")
	require.NoError(t, os.WriteFile(path, []byte(enrolmentCSV), 0o600))

	table, err := LoadFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	headers, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, "University", headers[0])
	assert.Len(t, headers, 7)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
