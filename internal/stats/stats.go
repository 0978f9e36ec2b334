// Package stats accumulates generation counters.
//
// Each generation task owns its own Counters value; the coordinator merges
// them in a single-threaded reduction after all tasks finish, so no locks
// or atomics are needed on the hot path.
package stats

// Counters holds per-run generation totals and validation findings.
type Counters struct {
	UIElements int64
	Macros     int64
	Actions    int64
	Blocks     int64
	Modules    int64

	CorrectionsApplied int64
	CorrectionFailures int64

	Findings []string
}

// Merge folds other into c. Findings keep their relative order.
func (c *Counters) Merge(other Counters) {
	c.UIElements += other.UIElements
	c.Macros += other.Macros
	c.Actions += other.Actions
	c.Blocks += other.Blocks
	c.Modules += other.Modules
	c.CorrectionsApplied += other.CorrectionsApplied
	c.CorrectionFailures += other.CorrectionFailures
	c.Findings = append(c.Findings, other.Findings...)
}

// AddFinding records a human-readable validation finding.
func (c *Counters) AddFinding(finding string) {
	c.Findings = append(c.Findings, finding)
}
