package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"basgen/internal/correct"
	"basgen/internal/entity"
	"basgen/internal/observ"
	"basgen/internal/pad"
	"basgen/internal/report"
	"basgen/internal/stats"
	"basgen/internal/validate"
	"basgen/internal/xmltree"
)

// DefaultWallBudget is the wall-clock budget for a full production run.
// Exceeding it is recorded as a finding, never an error.
const DefaultWallBudget = 600 * time.Second

const (
	outputPrefix = "HDGRACE-BAS-Final-"
	statsPrefix  = "HDGRACE-BAS-Stats-"
	csvPrefix    = "HDGRACE-BAS-Report-"

	stampLayout = "20060102-150405"
)

// Config holds everything a generation run needs.
type Config struct {
	// OutputDir receives the document and both report artifacts.
	// Empty means the current directory.
	OutputDir string

	// RulesPath optionally names a JSON correction-rule file. When empty,
	// or when the file cannot be loaded, the built-in rules are used and
	// the fallback is recorded as a rule warning.
	RulesPath string

	Seed    int64
	Workers int

	// Entity quotas; <= 0 selects the production defaults.
	UIElements int
	Macros     int
	Modules    int

	// TargetSize is the minimum artifact size in bytes. Zero selects the
	// production floor at production scale and no padding below it; a
	// negative value disables padding outright.
	TargetSize int64

	// FailFast aborts on the first section failure instead of omitting
	// the section.
	FailFast bool

	// WallBudget overrides DefaultWallBudget when positive.
	WallBudget time.Duration

	// Clock stamps document metadata and artifact names. Injected for
	// reproducible output; nil means time.Now.
	Clock func() time.Time

	// Progress receives pipeline events. May be nil.
	Progress ProgressSink
}

func (c Config) uiElements() int {
	if c.UIElements > 0 {
		return c.UIElements
	}
	return entity.DefaultUIElementCount
}

func (c Config) macros() int {
	if c.Macros > 0 {
		return c.Macros
	}
	return entity.DefaultMacroCount
}

func (c Config) modules() int {
	if c.Modules > 0 {
		return c.Modules
	}
	return entity.DefaultModuleCount
}

func (c Config) targetSize() int64 {
	switch {
	case c.TargetSize > 0:
		return c.TargetSize
	case c.TargetSize < 0:
		return 0
	case c.uiElements() >= entity.ProductionScaleThreshold:
		return entity.TargetMinSize
	default:
		return 0
	}
}

func (c Config) wallBudget() time.Duration {
	if c.WallBudget > 0 {
		return c.WallBudget
	}
	return DefaultWallBudget
}

func (c Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Summary is the result of a completed pipeline run.
type Summary struct {
	OutputPath string
	StatsPath  string
	CSVPath    string

	Size         int64
	Passed       bool
	Findings     []string
	Stats        stats.Counters
	Timings      observ.Report
	PeakMemMB    float64
	AvgMemMB     float64
	RuleWarnings []string
	Omitted      []string
	Elapsed      time.Duration
	WithinBudget bool
}

// Generate runs the whole pipeline: rule loading, concurrent section
// generation, ordered merge, streaming serialization, size padding,
// validation and report emission. A panic anywhere in the pipeline is
// converted into an error so a single bad section can never take the
// process down.
func Generate(ctx context.Context, cfg Config) (sum Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation pipeline panicked: %v", r)
		}
	}()

	startWall := time.Now()
	stamp := cfg.now()
	timer := observ.NewTimer()
	mem := &observ.MemSampler{}
	mem.Sample()

	// Rule loading. A broken external rule file degrades to the built-in
	// set rather than aborting the run.
	phase := timer.Begin("rules")
	rs, ruleWarnings := loadRuleSet(cfg.RulesPath)
	engine, engineWarnings := correct.NewEngine(rs)
	ruleWarnings = append(ruleWarnings, engineWarnings...)
	timer.End(phase, fmt.Sprintf("%d rules", engine.TotalRules()))

	counts := SectionCounts{
		UIElements: cfg.uiElements(),
		Macros:     cfg.macros(),
		Modules:    cfg.modules(),
	}
	factory := entity.NewFactory(counts.UIElements)
	if cfg.Clock != nil {
		factory.Clock = cfg.Clock
	}

	root := entity.NewProject(entity.ProjectMeta{
		Name:    "HDGRACE-BAS-Final",
		Version: entity.EngineVersion,
		Created: stamp,
		Workers: cfg.Workers,
	})

	phase = timer.Begin("generate")
	tasks := BuildTasks(factory, counts, mem)
	counters, omitted, err := Assemble(ctx, root, tasks, Options{
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		FailFast: cfg.FailFast,
		Progress: cfg.Progress,
	})
	if err != nil {
		return Summary{}, err
	}
	timer.End(phase, fmt.Sprintf("%d sections, %d omitted", len(tasks), len(omitted)))
	mem.Sample()

	entity.AppendOutputConfig(root)

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	ts := stamp.Format(stampLayout)
	outPath := filepath.Join(outDir, outputPrefix+ts+".xml")
	statsPath := filepath.Join(outDir, statsPrefix+ts+".json")
	csvPath := filepath.Join(outDir, csvPrefix+ts+".csv")

	phase = timer.Begin("serialize")
	size, err := writeDocument(root, outPath, engine, cfg.Progress)
	if err != nil {
		return Summary{}, err
	}
	timer.End(phase, fmt.Sprintf("%.1fMB", float64(size)/(1<<20)))
	mem.Sample()

	// The engine counts corrections globally; fold them into the merged
	// section counters for reporting.
	counters.CorrectionsApplied = engine.Applied()
	counters.CorrectionFailures = engine.Failures()

	target := cfg.targetSize()
	phase = timer.Begin("pad")
	if target > 0 && size < target {
		emit(cfg.Progress, Event{Stage: StagePad, Status: StatusWorking})
		padder := &pad.Padder{Progress: func(done, total int64) {
			emit(cfg.Progress, Event{Stage: StagePad, Status: StatusWorking, Percent: float64(done) / float64(total)})
		}}
		size, err = padder.PadFile(outPath, target)
		if err != nil {
			return Summary{}, err
		}
		emit(cfg.Progress, Event{Stage: StagePad, Status: StatusDone})
	}
	timer.End(phase, fmt.Sprintf("%.1fMB", float64(size)/(1<<20)))

	phase = timer.Begin("validate")
	emit(cfg.Progress, Event{Stage: StageValidate, Status: StatusWorking})
	validator := validate.ForScale(counts.UIElements)
	if target > 0 {
		validator.MinSize = target
	}
	passed, findings := validator.Validate(outPath)
	emit(cfg.Progress, Event{Stage: StageValidate, Status: StatusDone})
	timer.End(phase, fmt.Sprintf("%d findings", len(findings)))

	elapsed := time.Since(startWall)
	withinBudget := elapsed <= cfg.wallBudget()
	if !withinBudget {
		findings = append(findings, fmt.Sprintf(
			"execution time %.1fs exceeded the %.0fs budget",
			elapsed.Seconds(), cfg.wallBudget().Seconds()))
	}
	findings = append(counters.Findings, findings...)
	counters.Findings = findings
	mem.Sample()

	phase = timer.Begin("report")
	rep := report.Build(report.Input{
		Timestamp:    stamp,
		OutputFile:   filepath.Base(outPath),
		OutputSize:   size,
		Elapsed:      elapsed,
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		Counters:     counters,
		Passed:       passed,
		Findings:     findings,
		PeakMemMB:    mem.PeakMB(),
		AvgMemMB:     mem.AverageMB(),
		Timings:      timer.Report(),
		WithinBudget: withinBudget,
		SizeTarget:   target,
	})
	if err := rep.WriteJSON(statsPath); err != nil {
		return Summary{}, err
	}
	if err := rep.WriteCSV(csvPath); err != nil {
		return Summary{}, err
	}
	timer.End(phase, "")

	return Summary{
		OutputPath:   outPath,
		StatsPath:    statsPath,
		CSVPath:      csvPath,
		Size:         size,
		Passed:       passed,
		Findings:     findings,
		Stats:        counters,
		Timings:      timer.Report(),
		PeakMemMB:    mem.PeakMB(),
		AvgMemMB:     mem.AverageMB(),
		RuleWarnings: ruleWarnings,
		Omitted:      omitted,
		Elapsed:      elapsed,
		WithinBudget: withinBudget,
	}, nil
}

// loadRuleSet resolves the active rule set. External rules load through
// the disk cache; any failure falls back to the built-in rules with a
// warning instead of aborting.
func loadRuleSet(path string) (*correct.RuleSet, []string) {
	if path == "" {
		return correct.DefaultRules(), nil
	}
	var warnings []string
	cache, err := correct.OpenCache("basgen")
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("rule cache unavailable: %v", err))
		cache = nil
	}
	rs, err := correct.LoadRulesCached(path, cache)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("rules %s unusable, using built-in rules: %v", path, err))
		return correct.DefaultRules(), warnings
	}
	return rs, warnings
}

// writeDocument streams the assembled tree to disk in fixed-size chunks,
// correcting attribute values on the way out and reporting exact progress
// from a counting pre-pass.
func writeDocument(root *xmltree.Element, path string, engine *correct.Engine, sink ProgressSink) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output %s: %w", path, err)
	}

	s := &xmltree.Serializer{
		ValueFilter: engine.CorrectValue,
		Progress: func(written, total int64) {
			pct := 1.0
			if total > 0 {
				pct = float64(written) / float64(total)
			}
			emit(sink, Event{Stage: StageSerialize, Status: StatusWorking, Percent: pct})
		},
	}
	emit(sink, Event{Stage: StageSerialize, Status: StatusWorking})
	size, err := s.WriteDocument(root, f)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("serialize document: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output %s: %w", path, err)
	}
	emit(sink, Event{Stage: StageSerialize, Status: StatusDone})
	return size, nil
}
