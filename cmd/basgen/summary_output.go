package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"basgen/internal/assemble"
	"basgen/internal/observ"
)

var (
	okColor      = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	sectionColor = color.New(color.FgCyan)
)

func printGenerateSummary(out io.Writer, sum assemble.Summary, quiet bool) {
	if out == nil {
		return
	}
	verdict := okColor.Sprint("passed")
	if !sum.Passed {
		verdict = failColor.Sprint("FAILED")
	}
	fmt.Fprintf(out, "%s %s (%.1fMB in %.1fs)\n",
		sectionColor.Sprint(sum.OutputPath), verdict,
		float64(sum.Size)/(1<<20), sum.Elapsed.Seconds())

	if quiet {
		return
	}

	c := sum.Stats
	fmt.Fprintf(out, "generated %d ui elements, %d macros (%d actions), %d blocks, %d modules\n",
		c.UIElements, c.Macros, c.Actions, c.Blocks, c.Modules)
	fmt.Fprintf(out, "corrections applied: %d (failures: %d)\n",
		c.CorrectionsApplied, c.CorrectionFailures)
	fmt.Fprintf(out, "reports: %s, %s\n", sum.StatsPath, sum.CSVPath)
	if sum.PeakMemMB > 0 {
		fmt.Fprintf(out, "memory: peak %.0fMB, average %.0fMB\n", sum.PeakMemMB, sum.AvgMemMB)
	}

	for _, w := range sum.RuleWarnings {
		fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("warning:"), w)
	}
	for _, name := range sum.Omitted {
		fmt.Fprintf(out, "%s section %s omitted\n", warnColor.Sprint("warning:"), name)
	}
	for _, f := range sum.Findings {
		fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("finding:"), f)
	}
	if !sum.WithinBudget {
		fmt.Fprintf(out, "%s run exceeded the wall-clock budget\n", warnColor.Sprint("warning:"))
	}
}

func printPhaseTimings(out io.Writer, timings observ.Report) {
	if out == nil {
		return
	}
	for _, p := range timings.Phases {
		if p.Note != "" {
			fmt.Fprintf(out, "%-10s %9.1f ms  %s\n", p.Name, p.DurationMS, p.Note)
			continue
		}
		fmt.Fprintf(out, "%-10s %9.1f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "%-10s %9.1f ms\n", "total", timings.TotalMS)
}
