package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/enroldash/engine"
	"github.com/spektr-org/enroldash/helpers"
	"github.com/spektr-org/enroldash/translator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enroldash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
lang: fr
format: pretty
province: Ontario
require_year: true
log:
  level: debug
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "fr", cfg.Lang)
		assert.Equal(t, "pretty", cfg.Format)
		assert.Equal(t, "Ontario", cfg.Province)
		assert.True(t, cfg.RequireYear)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format, "keys absent from the file keep their default")
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("ENROLDASH_LANG", "en")
		t.Setenv("ENROLDASH_REQUIRE_YEAR", "false")
		t.Setenv("ENROLDASH_LOG_FORMAT", "json")
		t.Setenv("ENROLDASH_SENTRY_DSN", "https://key@example.com/1")

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Lang)
		assert.False(t, cfg.RequireYear)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "https://key@example.com/1", cfg.Sentry.DSN)
		assert.Equal(t, "pretty", cfg.Format)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("ENROLDASH_FORMAT", "csv")

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.Format)

		applyFlags(&cfg, map[string]bool{"format": true, "province": true}, flagValues{
			format:   "text",
			province: "",
		})
		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, "", cfg.Province)
		assert.Equal(t, "fr", cfg.Lang, "unset flags leave config alone")
	})
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = loadConfig(writeConfig(t, "lang: [unclosed"))
	require.Error(t, err)
}

func TestLoadConfigPanels(t *testing.T) {
	path := writeConfig(t, `
panels:
  - kind: trend
    province: Quebec
    type: partTimeGrad
  - kind: provinces
    mode: partTime
    level: Grad
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	panels, err := buildPanels(cfg, panelOverrides{})
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.Equal(t, engine.Panel{Kind: engine.PanelTrend, Province: "Quebec", Type: engine.PartTimeGrad}, panels[0])
	assert.Equal(t, engine.Panel{Kind: engine.PanelProvinces, Mode: engine.PartTime, Level: engine.Graduate}, panels[1])
}

func TestBuildPanels(t *testing.T) {
	t.Parallel()

	t.Run("all panels with defaults", func(t *testing.T) {
		panels, err := buildPanels(defaultConfig(), panelOverrides{})
		require.NoError(t, err)
		require.Len(t, panels, 3)
		for i, k := range engine.PanelKinds {
			assert.Equal(t, engine.DefaultPanel(k), panels[i])
		}
	})

	t.Run("overrides reach the panels they concern", func(t *testing.T) {
		panels, err := buildPanels(defaultConfig(), panelOverrides{
			Province:    "Ontario",
			ProvinceSet: true,
			Type:        "partTimeUG",
			Types:       "fullTimeGrad, partTimeGrad",
			Mode:        "partTime",
			Level:       "Grad",
		})
		require.NoError(t, err)
		require.Len(t, panels, 3)

		assert.Equal(t, "Ontario", panels[0].Province)
		assert.Equal(t, engine.PartTimeUG, panels[0].Type)
		assert.Equal(t, "", panels[1].Province)
		assert.Equal(t, engine.PartTime, panels[1].Mode)
		assert.Equal(t, engine.Graduate, panels[1].Level)
		assert.Equal(t, "Ontario", panels[2].Province)
		assert.Equal(t, []engine.Field{engine.FullTimeGrad, engine.PartTimeGrad}, panels[2].Types)
	})

	t.Run("explicit empty province means every province", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Panel = "trend"
		panels, err := buildPanels(cfg, panelOverrides{ProvinceSet: true})
		require.NoError(t, err)
		require.Len(t, panels, 1)
		assert.Equal(t, "", panels[0].Province)
	})

	t.Run("invalid selections", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Panel = "pie"
		_, err := buildPanels(cfg, panelOverrides{})
		require.ErrorIs(t, err, engine.ErrUnknownPanel)

		_, err = buildPanels(defaultConfig(), panelOverrides{Type: "bogus"})
		require.ErrorIs(t, err, engine.ErrUnknownField)

		_, err = buildPanels(defaultConfig(), panelOverrides{Mode: "sometimes"})
		require.ErrorIs(t, err, engine.ErrUnknownMode)

		_, err = buildPanels(defaultConfig(), panelOverrides{Level: "PhD"})
		require.ErrorIs(t, err, engine.ErrUnknownLevel)
	})
}

const cliCSV = `University,Year,Province,Full-time Undergrad,Full-time Graduate,Part-time Undergrad,Part-time Graduate
Dalhousie,2020,Nova Scotia,"1,000",200,50,10
Dalhousie,2021,Nova Scotia,"1,100",210,55,12
Toronto,2020,Ontario,"2,000",400,80,20
`

func renderAll(t *testing.T, locale translator.Locale) []*engine.Output {
	t.Helper()
	c, err := translator.New()
	require.NoError(t, err)

	panels, err := buildPanels(defaultConfig(), panelOverrides{})
	require.NoError(t, err)

	outputs, err := engine.RenderAll(helpers.Load(cliCSV, false), panels, engine.WithTranslator(c.For(locale)))
	require.NoError(t, err)
	return outputs
}

func TestWriteOutputs(t *testing.T) {
	t.Parallel()

	outputs := renderAll(t, translator.English)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutputs(&buf, "json", translator.English, outputs))

		var decoded struct {
			Lang   string `json:"lang"`
			Panels []struct {
				Result engine.Result `json:"result"`
			} `json:"panels"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "en", decoded.Lang)
		require.Len(t, decoded.Panels, 3)
		assert.Equal(t, []string{"2020", "2021"}, decoded.Panels[0].Result.Labels())
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutputs(&buf, "text", translator.English, outputs))
		assert.Contains(t, buf.String(), "Enrolment Trends")
		assert.Contains(t, buf.String(), "2,100 (2)")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutputs(&buf, "csv", translator.English, outputs))
		assert.Contains(t, buf.String(), "Year,Full-time Undergraduate\n2020,1000\n2021,1100\n")
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutputs(&buf, "xlsx", translator.English, outputs))
		assert.NotZero(t, buf.Len())
	})

	t.Run("unknown format", func(t *testing.T) {
		require.Error(t, writeOutputs(&bytes.Buffer{}, "yaml", translator.English, outputs))
	})

	t.Run("empty text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeText(&buf, nil))
		assert.Equal(t, "No result.\n", buf.String())
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, flush := newLogger(&buf, LogConfig{Level: "info", Format: "json"}, SentryConfig{})
	defer flush()

	logger.Debug("hidden")
	logger.Info("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.NotEmpty(t, rec["run_id"])
}
