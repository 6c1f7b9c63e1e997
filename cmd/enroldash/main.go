package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/enroldash/engine"
	"github.com/spektr-org/enroldash/helpers"
	"github.com/spektr-org/enroldash/schema"
	"github.com/spektr-org/enroldash/translator"
)

// ============================================================================
// ENROLDASH CLI — Bilingual enrolment dashboard data from the command line
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to CSV or XLSX enrolment file (required)")
	panelStr := flag.String("panel", "all", "Panel: trend, provinces, universities, all")
	province := flag.String("province", "", "Province for trend and universities panels (default: Nova Scotia)")
	typeStr := flag.String("type", "", "Enrolment type for the trend panel (e.g. fullTimeUG)")
	typesStr := flag.String("types", "", "Comma-separated enrolment types for the universities panel")
	mode := flag.String("mode", "", "Study mode for the provinces panel: fullTime, partTime")
	level := flag.String("level", "", "Study level for the provinces panel: UG, Grad")
	requireYear := flag.Bool("require-year", false, "Drop rows without a Year")
	lang := flag.String("lang", "en", "Display language: en, fr (or any BCP 47 tag)")
	format := flag.String("format", "json", "Output format: json, pretty, csv, xlsx, text")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	discover := flag.Bool("discover", false, "Print a profile of the loaded data and exit")
	configPath := flag.String("config", "", "Path to YAML config file")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `enroldash — Bilingual university enrolment dashboard data

Usage:
  enroldash --file enrolment.csv --panel trend --province Ontario --type partTimeGrad
  enroldash --file enrolment.csv --panel provinces --mode partTime --level Grad --lang fr
  enroldash --file enrolment.xlsx --format xlsx --out dashboard.xlsx
  enroldash --file enrolment.csv --discover --format pretty

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  ENROLDASH_LANG, ENROLDASH_FORMAT, ENROLDASH_PANEL, ENROLDASH_PROVINCE,
  ENROLDASH_REQUIRE_YEAR, ENROLDASH_SHEET, ENROLDASH_PALETTE,
  ENROLDASH_LOG_LEVEL, ENROLDASH_LOG_FORMAT,
  ENROLDASH_SENTRY_DSN, ENROLDASH_SENTRY_ENVIRONMENT

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Titles, descriptions and totals
  csv       Chart data as CSV (ready for Sheets/Excel)
  xlsx      One worksheet per panel
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("enroldash %s\n", version)
		os.Exit(0)
	}

	// ── Config ────────────────────────────────────────────────────────────
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatalf("%v", err)
	}
	set := setFlags()
	applyFlags(&cfg, set, flagValues{
		panel:       *panelStr,
		province:    *province,
		requireYear: *requireYear,
		lang:        *lang,
		format:      *format,
	})

	logger, flush := newLogger(os.Stderr, cfg.Log, cfg.Sentry)
	defer flush()
	die := func(format string, args ...interface{}) {
		flush()
		fatalf(format, args...)
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			die("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Load ──────────────────────────────────────────────────────────────
	table, err := loadTable(*filePath, cfg, logger)
	if err != nil {
		logger.Error("load failed", slog.String("file", *filePath), slog.String("error", err.Error()))
		die("%v", err)
	}
	logger.Info("data loaded", slog.String("file", *filePath), slog.Int("records", table.Len()))

	// ── Discover mode ─────────────────────────────────────────────────────
	if *discover {
		out := discoverOutput{Profile: schema.Describe(table)}
		if headers, err := helpers.ReadHeader(*filePath); err == nil {
			_, out.MissingColumns = schema.Inspect(headers, cfg.RequireYear)
		}
		if err := writeJSON(writer, out, cfg.Format); err != nil {
			die("%v", err)
		}
		return
	}

	// ── Panels ────────────────────────────────────────────────────────────
	panels, err := buildPanels(cfg, panelOverrides{
		Province:    cfg.Province,
		ProvinceSet: set["province"] || cfg.Province != "",
		Type:        *typeStr,
		Types:       *typesStr,
		Mode:        *mode,
		Level:       *level,
	})
	if err != nil {
		die("%v", err)
	}

	catalog, err := translator.New(translator.WithMissingKeyHandler(func(l translator.Locale, key string) {
		logger.Warn("missing translation", slog.String("lang", string(l)), slog.String("key", key))
	}))
	if err != nil {
		die("Failed to load translations: %v", err)
	}
	locale := translator.ParseLocale(cfg.Lang)

	outputs, err := engine.RenderAll(table, panels,
		engine.WithTranslator(catalog.For(locale)),
		engine.WithPalette(cfg.Palette),
		engine.WithLogger(logger),
	)
	if err != nil {
		logger.Error("render failed", slog.String("error", err.Error()))
		die("%v", err)
	}

	// ── Render output ─────────────────────────────────────────────────────
	if err := writeOutputs(writer, cfg.Format, locale, outputs); err != nil {
		logger.Error("write failed", slog.String("error", err.Error()))
		die("%v", err)
	}
	if *outFile != "" {
		logger.Info("output written", slog.String("file", *outFile), slog.String("format", cfg.Format))
	}
}

// ============================================================================
// FLAG LAYER — explicitly set flags override config and environment
// ============================================================================

type flagValues struct {
	panel       string
	province    string
	requireYear bool
	lang        string
	format      string
}

func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func applyFlags(cfg *Config, set map[string]bool, v flagValues) {
	if set["panel"] {
		cfg.Panel = v.panel
		cfg.Panels = nil
	}
	if set["province"] {
		cfg.Province = v.province
	}
	if set["require-year"] {
		cfg.RequireYear = v.requireYear
	}
	if set["lang"] {
		cfg.Lang = v.lang
	}
	if set["format"] {
		cfg.Format = v.format
	}
}

func loadTable(path string, cfg Config, logger *slog.Logger) (*engine.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if cfg.Sheet != "" && (ext == ".xlsx" || ext == ".xlsm") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		return helpers.LoadWorkbook(f, cfg.Sheet, cfg.RequireYear, helpers.WithLogger(logger))
	}
	return helpers.LoadFile(path, cfg.RequireYear, helpers.WithLogger(logger))
}

// ============================================================================
// PANELS
// ============================================================================

type panelOverrides struct {
	Province    string
	ProvinceSet bool // an explicit empty province selects every province
	Type        string
	Types       string
	Mode        string
	Level       string
}

// buildPanels picks the configured panels, or the defaults for --panel,
// and applies the selection flags to the panels they concern.
func buildPanels(cfg Config, o panelOverrides) ([]engine.Panel, error) {
	var panels []engine.Panel
	switch {
	case len(cfg.Panels) > 0:
		panels = append(panels, cfg.Panels...)
	case cfg.Panel == "" || strings.EqualFold(cfg.Panel, "all"):
		for _, k := range engine.PanelKinds {
			panels = append(panels, engine.DefaultPanel(k))
		}
	default:
		kind, err := engine.ParsePanelKind(cfg.Panel)
		if err != nil {
			return nil, err
		}
		panels = append(panels, engine.DefaultPanel(kind))
	}

	for i := range panels {
		p := &panels[i]
		switch p.Kind {
		case engine.PanelTrend:
			if o.ProvinceSet {
				p.Province = o.Province
			}
			if o.Type != "" {
				f, err := engine.ParseField(o.Type)
				if err != nil {
					return nil, err
				}
				p.Type = f
			}
		case engine.PanelProvinces:
			if o.Mode != "" {
				m, err := engine.ParseStudyMode(o.Mode)
				if err != nil {
					return nil, err
				}
				p.Mode = m
			}
			if o.Level != "" {
				l, err := engine.ParseStudyLevel(o.Level)
				if err != nil {
					return nil, err
				}
				p.Level = l
			}
		case engine.PanelUniversities:
			if o.ProvinceSet {
				p.Province = o.Province
			}
			if o.Types != "" {
				p.Types = nil
				for _, s := range strings.Split(o.Types, ",") {
					f, err := engine.ParseField(strings.TrimSpace(s))
					if err != nil {
						return nil, err
					}
					p.Types = append(p.Types, f)
				}
			}
		}
	}
	return panels, nil
}

// ============================================================================
// OUTPUT
// ============================================================================

type cliOutput struct {
	Lang   translator.Locale `json:"lang"`
	Panels []*engine.Output  `json:"panels"`
}

type discoverOutput struct {
	schema.Profile
	MissingColumns []string `json:"missingColumns,omitempty"`
}

func writeOutputs(w io.Writer, format string, locale translator.Locale, outputs []*engine.Output) error {
	switch format {
	case "csv":
		for i, out := range outputs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := helpers.WriteCSV(w, out); err != nil {
				return err
			}
		}
		return nil
	case "xlsx":
		return helpers.WriteXLSX(w, outputs)
	case "text":
		return writeText(w, outputs)
	case "json", "pretty":
		return writeJSON(w, cliOutput{Lang: locale, Panels: outputs}, format)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, outputs []*engine.Output) error {
	var b strings.Builder
	for i, out := range outputs {
		if i > 0 {
			b.WriteString("\n")
		}
		if out.Chart != nil && out.Chart.Title != "" {
			b.WriteString(out.Chart.Title + "\n")
		}
		if out.Summary == nil {
			continue
		}
		if out.Summary.Description != "" {
			b.WriteString(out.Summary.Description + "\n")
		}
		fmt.Fprintf(&b, "%s (%d)\n", out.Summary.Value, out.Summary.Count)
		if g := engine.FormatGrowth(out.Summary.Growth); g != "" {
			b.WriteString(g + "\n")
		}
	}
	if b.Len() == 0 {
		b.WriteString("No result.\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
