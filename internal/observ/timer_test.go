package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("generate")
	time.Sleep(2 * time.Millisecond)
	timer.End(idx, "6 sections")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "generate" {
		t.Errorf("name = %q, want generate", p.Name)
	}
	if p.DurationMS <= 0 {
		t.Errorf("duration = %v, want > 0", p.DurationMS)
	}
	if p.Note != "6 sections" {
		t.Errorf("note = %q", p.Note)
	}
	if report.TotalMS < p.DurationMS {
		t.Errorf("total %v < phase %v", report.TotalMS, p.DurationMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(5, "ignored") // must not panic
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("phases = %d, want 0", len(got.Phases))
	}
}

func TestTimerSummaryContainsPhases(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("serialize")
	timer.End(idx, "")
	s := timer.Summary()
	if !strings.Contains(s, "serialize") || !strings.Contains(s, "total") {
		t.Fatalf("summary missing entries: %q", s)
	}
}

func TestMemSamplerNilSafe(t *testing.T) {
	var m *MemSampler
	m.Sample() // must not panic
	if m.PeakMB() != 0 || m.AverageMB() != 0 {
		t.Fatalf("nil sampler reported nonzero memory")
	}
}

func TestMemSamplerTracksPeak(t *testing.T) {
	m := &MemSampler{}
	m.Sample()
	m.Sample()
	if m.PeakMB() <= 0 {
		t.Fatalf("peak = %v, want > 0 after sampling", m.PeakMB())
	}
	if m.AverageMB() <= 0 || m.AverageMB() > m.PeakMB() {
		t.Fatalf("average %v out of range (peak %v)", m.AverageMB(), m.PeakMB())
	}
}
