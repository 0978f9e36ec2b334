package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"basgen/internal/observ"
	"basgen/internal/stats"
)

func sampleInput() Input {
	return Input{
		Timestamp:  time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		OutputFile: "HDGRACE-BAS-Final-20260115-120000.xml",
		OutputSize: 800 << 20,
		Elapsed:    90 * time.Second,
		Seed:       42,
		Workers:    8,
		Counters: stats.Counters{
			UIElements:         3065,
			Macros:             3065,
			Actions:            122000,
			Blocks:             26,
			Modules:            3065,
			CorrectionsApplied: 59000,
		},
		Passed:       true,
		PeakMemMB:    512.5,
		AvgMemMB:     300.25,
		Timings:      observ.Report{TotalMS: 90000, Phases: []observ.PhaseReport{{Name: "generate", DurationMS: 45000}}},
		WithinBudget: true,
		SizeTarget:   700 << 20,
	}
}

func TestBuildCompliance(t *testing.T) {
	r := Build(sampleInput())
	cc := r.ComplianceCheck
	if !cc.UIElementTargetMet || !cc.MacroTargetMet || !cc.SizeTargetMet || !cc.WithinTimeBudget {
		t.Fatalf("compliance = %+v, want all targets met", cc)
	}
	if r.GenerationInfo.Timestamp != "2026-01-15T12:00:00Z" {
		t.Fatalf("timestamp = %q", r.GenerationInfo.Timestamp)
	}
	if r.GenerationInfo.OutputSizeMB != 800 {
		t.Fatalf("size mb = %v, want 800", r.GenerationInfo.OutputSizeMB)
	}
}

func TestBuildBelowTargets(t *testing.T) {
	in := sampleInput()
	in.Counters.UIElements = 100
	in.OutputSize = 1 << 20
	r := Build(in)
	if r.ComplianceCheck.UIElementTargetMet {
		t.Fatalf("ui element target reported met for 100 elements")
	}
	if r.ComplianceCheck.SizeTargetMet {
		t.Fatalf("size target reported met for 1MB output")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	r := Build(sampleInput())
	if err := r.WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ElementCounts.UIElements != 3065 {
		t.Fatalf("ui elements after round trip = %d", back.ElementCounts.UIElements)
	}
	if back.QualityMetrics.CorrectionsApplied != 59000 {
		t.Fatalf("corrections after round trip = %d", back.QualityMetrics.CorrectionsApplied)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	r := Build(sampleInput())
	if err := r.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) < 20 {
		t.Fatalf("csv has %d rows, want a full flattened report", len(rows))
	}
	if rows[0][0] != "metric" || rows[0][1] != "value" {
		t.Fatalf("header = %v", rows[0])
	}
	got := map[string]string{}
	for _, row := range rows[1:] {
		if len(row) != 2 {
			t.Fatalf("row %v has %d fields", row, len(row))
		}
		got[row[0]] = row[1]
	}
	if got["element_counts.ui_elements_created"] != "3065" {
		t.Fatalf("ui elements row = %q", got["element_counts.ui_elements_created"])
	}
	if got["performance_metrics.phase.generate"] != "45000.00" {
		t.Fatalf("generate phase row = %q", got["performance_metrics.phase.generate"])
	}
}
