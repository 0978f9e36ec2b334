// Package report builds and writes the post-run statistics artifacts: a
// JSON stats document and a flattened CSV view of the same numbers.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"basgen/internal/entity"
	"basgen/internal/observ"
	"basgen/internal/stats"
)

// GenerationInfo describes the run that produced the document.
type GenerationInfo struct {
	Timestamp            string  `json:"timestamp"`
	EngineVersion        string  `json:"engine_version"`
	StructureVersion     string  `json:"structure_version"`
	OutputFile           string  `json:"output_file"`
	OutputSizeMB         float64 `json:"output_size_mb"`
	ExecutionTimeSeconds float64 `json:"execution_time_seconds"`
	Seed                 int64   `json:"seed"`
	Workers              int     `json:"workers"`
}

// ElementCounts holds how many of each entity kind were generated.
type ElementCounts struct {
	UIElements int64 `json:"ui_elements_created"`
	Macros     int64 `json:"macros_created"`
	Actions    int64 `json:"actions_created"`
	Blocks     int64 `json:"blocks_created"`
	Modules    int64 `json:"modules_created"`
}

// QualityMetrics covers the correction engine and validation outcomes.
type QualityMetrics struct {
	CorrectionsApplied int64    `json:"grammar_corrections_applied"`
	CorrectionFailures int64    `json:"correction_failures"`
	ValidationPassed   bool     `json:"validation_passed"`
	Findings           []string `json:"findings,omitempty"`
}

// PerformanceMetrics covers resource usage and phase timings.
type PerformanceMetrics struct {
	PeakMemoryMB    float64       `json:"peak_memory_mb"`
	AverageMemoryMB float64       `json:"average_memory_mb"`
	Timings         observ.Report `json:"timings"`
}

// ComplianceCheck records whether the run met the production targets.
type ComplianceCheck struct {
	UIElementTargetMet  bool `json:"ui_element_target_met"`
	MacroTargetMet      bool `json:"macro_target_met"`
	SizeTargetMet       bool `json:"size_target_met"`
	WithinTimeBudget    bool `json:"within_time_budget"`
	EngineCompatible    bool `json:"engine_compatible"`
	StructureCompatible bool `json:"structure_compatible"`
}

// Report is the complete stats document written after a run.
type Report struct {
	GenerationInfo     GenerationInfo     `json:"generation_info"`
	ElementCounts      ElementCounts      `json:"element_counts"`
	QualityMetrics     QualityMetrics     `json:"quality_metrics"`
	PerformanceMetrics PerformanceMetrics `json:"performance_metrics"`
	ComplianceCheck    ComplianceCheck    `json:"compliance_check"`
}

// Input bundles everything Build needs from a finished run.
type Input struct {
	Timestamp    time.Time
	OutputFile   string
	OutputSize   int64
	Elapsed      time.Duration
	Seed         int64
	Workers      int
	Counters     stats.Counters
	Passed       bool
	Findings     []string
	PeakMemMB    float64
	AvgMemMB     float64
	Timings      observ.Report
	WithinBudget bool
	SizeTarget   int64
}

// Build assembles the report from a run's measurements.
func Build(in Input) Report {
	return Report{
		GenerationInfo: GenerationInfo{
			Timestamp:            in.Timestamp.UTC().Format(time.RFC3339),
			EngineVersion:        entity.EngineVersion,
			StructureVersion:     entity.StructureVersion,
			OutputFile:           in.OutputFile,
			OutputSizeMB:         float64(in.OutputSize) / (1 << 20),
			ExecutionTimeSeconds: in.Elapsed.Seconds(),
			Seed:                 in.Seed,
			Workers:              in.Workers,
		},
		ElementCounts: ElementCounts{
			UIElements: in.Counters.UIElements,
			Macros:     in.Counters.Macros,
			Actions:    in.Counters.Actions,
			Blocks:     in.Counters.Blocks,
			Modules:    in.Counters.Modules,
		},
		QualityMetrics: QualityMetrics{
			CorrectionsApplied: in.Counters.CorrectionsApplied,
			CorrectionFailures: in.Counters.CorrectionFailures,
			ValidationPassed:   in.Passed,
			Findings:           in.Findings,
		},
		PerformanceMetrics: PerformanceMetrics{
			PeakMemoryMB:    in.PeakMemMB,
			AverageMemoryMB: in.AvgMemMB,
			Timings:         in.Timings,
		},
		ComplianceCheck: ComplianceCheck{
			UIElementTargetMet:  in.Counters.UIElements >= int64(entity.ProductionScaleThreshold),
			MacroTargetMet:      in.Counters.Macros >= int64(entity.ProductionScaleThreshold),
			SizeTargetMet:       in.SizeTarget <= 0 || in.OutputSize >= in.SizeTarget,
			WithinTimeBudget:    in.WithinBudget,
			EngineCompatible:    true,
			StructureCompatible: true,
		},
	}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write stats report %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes a flattened metric,value view of the report.
func (r Report) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"metric", "value"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range r.rows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv report %s: %w", path, err)
	}
	return nil
}

// rows flattens the report in a fixed order so CSV output is stable.
func (r Report) rows() [][]string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	count := func(v int64) string { return strconv.FormatInt(v, 10) }
	flag := func(v bool) string { return strconv.FormatBool(v) }

	rows := [][]string{
		{"generation_info.timestamp", r.GenerationInfo.Timestamp},
		{"generation_info.engine_version", r.GenerationInfo.EngineVersion},
		{"generation_info.structure_version", r.GenerationInfo.StructureVersion},
		{"generation_info.output_file", r.GenerationInfo.OutputFile},
		{"generation_info.output_size_mb", num(r.GenerationInfo.OutputSizeMB)},
		{"generation_info.execution_time_seconds", num(r.GenerationInfo.ExecutionTimeSeconds)},
		{"generation_info.seed", count(r.GenerationInfo.Seed)},
		{"generation_info.workers", strconv.Itoa(r.GenerationInfo.Workers)},
		{"element_counts.ui_elements_created", count(r.ElementCounts.UIElements)},
		{"element_counts.macros_created", count(r.ElementCounts.Macros)},
		{"element_counts.actions_created", count(r.ElementCounts.Actions)},
		{"element_counts.blocks_created", count(r.ElementCounts.Blocks)},
		{"element_counts.modules_created", count(r.ElementCounts.Modules)},
		{"quality_metrics.grammar_corrections_applied", count(r.QualityMetrics.CorrectionsApplied)},
		{"quality_metrics.correction_failures", count(r.QualityMetrics.CorrectionFailures)},
		{"quality_metrics.validation_passed", flag(r.QualityMetrics.ValidationPassed)},
		{"quality_metrics.finding_count", strconv.Itoa(len(r.QualityMetrics.Findings))},
		{"performance_metrics.peak_memory_mb", num(r.PerformanceMetrics.PeakMemoryMB)},
		{"performance_metrics.average_memory_mb", num(r.PerformanceMetrics.AverageMemoryMB)},
		{"performance_metrics.total_ms", num(r.PerformanceMetrics.Timings.TotalMS)},
	}
	for _, p := range r.PerformanceMetrics.Timings.Phases {
		rows = append(rows, []string{"performance_metrics.phase." + p.Name, num(p.DurationMS)})
	}
	rows = append(rows,
		[]string{"compliance_check.ui_element_target_met", flag(r.ComplianceCheck.UIElementTargetMet)},
		[]string{"compliance_check.macro_target_met", flag(r.ComplianceCheck.MacroTargetMet)},
		[]string{"compliance_check.size_target_met", flag(r.ComplianceCheck.SizeTargetMet)},
		[]string{"compliance_check.within_time_budget", flag(r.ComplianceCheck.WithinTimeBudget)},
		[]string{"compliance_check.engine_compatible", flag(r.ComplianceCheck.EngineCompatible)},
		[]string{"compliance_check.structure_compatible", flag(r.ComplianceCheck.StructureCompatible)},
	)
	return rows
}
