package assemble

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		OutputDir:  t.TempDir(),
		Seed:       42,
		Workers:    4,
		UIElements: 40,
		Macros:     15,
		Modules:    25,
		TargetSize: -1,
		Clock:      fixedClock,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	sum, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !sum.Passed {
		t.Fatalf("run failed validation: %v", sum.Findings)
	}
	if len(sum.Omitted) != 0 {
		t.Fatalf("omitted sections: %v", sum.Omitted)
	}
	if sum.Stats.UIElements != 40 || sum.Stats.Macros != 15 || sum.Stats.Modules != 25 {
		t.Fatalf("counters = %+v", sum.Stats)
	}
	if sum.Stats.Blocks != 26 {
		t.Fatalf("blocks = %d, want 26", sum.Stats.Blocks)
	}

	if filepath.Base(sum.OutputPath) != "HDGRACE-BAS-Final-20260115-120000.xml" {
		t.Fatalf("output name = %s", filepath.Base(sum.OutputPath))
	}
	if filepath.Base(sum.StatsPath) != "HDGRACE-BAS-Stats-20260115-120000.json" {
		t.Fatalf("stats name = %s", filepath.Base(sum.StatsPath))
	}
	if filepath.Base(sum.CSVPath) != "HDGRACE-BAS-Report-20260115-120000.csv" {
		t.Fatalf("csv name = %s", filepath.Base(sum.CSVPath))
	}

	data, err := os.ReadFile(sum.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if int64(len(data)) != sum.Size {
		t.Fatalf("summary size %d, file has %d bytes", sum.Size, len(data))
	}
	doc := string(data)
	for _, marker := range []string{
		"<BrowserAutomationStudioProject",
		"<EngineVersion>29.3.1</EngineVersion>",
		"<StructureVersion>3.1</StructureVersion>",
		"<UIElements",
		"<Macros",
		"<OutputConfiguration>",
	} {
		if !strings.Contains(doc, marker) {
			t.Fatalf("document missing %q", marker)
		}
	}
	var parsed struct{}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("document is not well formed: %v", err)
	}

	if _, err := os.Stat(sum.StatsPath); err != nil {
		t.Fatalf("stats report missing: %v", err)
	}
	if _, err := os.Stat(sum.CSVPath); err != nil {
		t.Fatalf("csv report missing: %v", err)
	}
}

func TestGenerateDeterministicOutput(t *testing.T) {
	read := func() string {
		cfg := testConfig(t)
		sum, err := Generate(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		data, err := os.ReadFile(sum.OutputPath)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		return string(data)
	}
	if read() != read() {
		t.Fatalf("two runs with the same seed and clock produced different documents")
	}
}

func TestGeneratePadsToTarget(t *testing.T) {
	cfg := testConfig(t)
	cfg.TargetSize = 2 << 20
	sum, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sum.Size < cfg.TargetSize {
		t.Fatalf("size = %d, want >= %d", sum.Size, cfg.TargetSize)
	}
	if !sum.Passed {
		t.Fatalf("padded run failed validation: %v", sum.Findings)
	}
	data, err := os.ReadFile(sum.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "<!-- PADDING_CHUNK_0: ") {
		t.Fatalf("padding blocks missing")
	}
	var parsed struct{}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("padded document is not well formed: %v", err)
	}
}

func TestGenerateFindingsReachStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.WallBudget = 1 * time.Nanosecond
	sum, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sum.WithinBudget {
		t.Fatalf("run reported within a 1ns budget")
	}
	if len(sum.Findings) == 0 {
		t.Fatalf("no findings despite exceeded budget")
	}
	if len(sum.Stats.Findings) != len(sum.Findings) {
		t.Fatalf("stats carry %d findings, summary carries %d",
			len(sum.Stats.Findings), len(sum.Findings))
	}
	found := false
	for _, f := range sum.Stats.Findings {
		if strings.Contains(f, "budget") {
			found = true
		}
	}
	if !found {
		t.Fatalf("budget finding missing from stats: %v", sum.Stats.Findings)
	}
}

func TestGenerateCorrectsAttributeValues(t *testing.T) {
	cfg := testConfig(t)
	sum, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(sum.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	doc := string(data)
	// The factory emits canonical values already, so the corrected
	// document must still carry them and never a known misspelling.
	if strings.Contains(doc, "visiable") || strings.Contains(doc, "enchanced") {
		t.Fatalf("document contains uncorrected tokens")
	}
	if !strings.Contains(doc, `visible="true"`) {
		t.Fatalf("document missing canonical visibility attribute")
	}
}

func TestGenerateFallsBackOnBadRules(t *testing.T) {
	cfg := testConfig(t)
	bad := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg.RulesPath = bad
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sum, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	found := false
	for _, w := range sum.RuleWarnings {
		if strings.Contains(w, "built-in rules") {
			found = true
		}
	}
	if !found {
		t.Fatalf("rule warnings = %v, want built-in fallback warning", sum.RuleWarnings)
	}
	if !sum.Passed {
		t.Fatalf("fallback run failed: %v", sum.Findings)
	}
}
