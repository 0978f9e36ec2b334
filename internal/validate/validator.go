// Package validate performs post-generation checks on emitted documents:
// minimum size, root element, and fixed engine markers.
package validate

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"

	"basgen/internal/entity"
)

// headProbeSize bounds how much of the file is read when checking markers.
// All mandated markers sit in the document head.
const headProbeSize = 4096

// Validator checks a generated document. In production mode any finding
// fails validation; otherwise findings are advisory and the document
// passes.
type Validator struct {
	// MinSize is the minimum acceptable file size in bytes. <= 0 disables
	// the size check.
	MinSize int64

	// Production makes findings fatal.
	Production bool
}

// ForScale returns the validator matching a generation run: production
// strictness and the full size floor at production scale, advisory checks
// below it.
func ForScale(uiElements int) Validator {
	if uiElements >= entity.ProductionScaleThreshold {
		return Validator{MinSize: entity.TargetMinSize, Production: true}
	}
	return Validator{}
}

// Validate checks the document at path and returns whether it passed along
// with every finding. Findings are collected rather than returned on first
// failure so a report can show all of them.
func (v Validator) Validate(path string) (bool, []string) {
	var findings []string

	info, err := os.Stat(path)
	if err != nil {
		findings = append(findings, fmt.Sprintf("output file not accessible: %v", err))
		return !v.Production, findings
	}

	if v.MinSize > 0 && info.Size() < v.MinSize {
		findings = append(findings, fmt.Sprintf(
			"file size %.1fMB below required %.1fMB",
			float64(info.Size())/(1<<20), float64(v.MinSize)/(1<<20)))
	}

	head, err := readHead(path, info.Size())
	if err != nil {
		findings = append(findings, fmt.Sprintf("read output file: %v", err))
		return !v.Production, findings
	}

	if !strings.Contains(head, "<"+entity.RootElement) {
		findings = append(findings, fmt.Sprintf("root element <%s> missing", entity.RootElement))
	}
	for _, marker := range []string{
		"<EngineVersion>" + entity.EngineVersion + "</EngineVersion>",
		"<StructureVersion>" + entity.StructureVersion + "</StructureVersion>",
	} {
		if !strings.Contains(head, marker) {
			findings = append(findings, fmt.Sprintf("required marker %s missing", marker))
		}
	}

	if v.Production && len(findings) > 0 {
		return false, findings
	}
	return true, findings
}

func readHead(path string, size int64) (string, error) {
	probe := size
	if probe > headProbeSize {
		probe = headProbeSize
	}
	n, err := safecast.Conv[int](probe)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return "", err
	}
	return string(buf), nil
}
