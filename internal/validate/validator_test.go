package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"basgen/internal/entity"
)

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func validHead() string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<" + entity.RootElement + " xmlns=\"" + entity.Namespace + "\">\n" +
		"  <EngineVersion>" + entity.EngineVersion + "</EngineVersion>\n" +
		"  <StructureVersion>" + entity.StructureVersion + "</StructureVersion>\n" +
		"</" + entity.RootElement + ">\n"
}

func TestValidatePasses(t *testing.T) {
	path := writeDoc(t, validHead())
	v := Validator{}
	ok, findings := v.Validate(path)
	if !ok {
		t.Fatalf("Validate failed: %v", findings)
	}
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
}

func TestValidateMissingMarkers(t *testing.T) {
	path := writeDoc(t, "<"+entity.RootElement+"></"+entity.RootElement+">")
	v := Validator{Production: true}
	ok, findings := v.Validate(path)
	if ok {
		t.Fatalf("production validation passed despite missing markers")
	}
	if len(findings) != 2 {
		t.Fatalf("findings = %v, want engine and structure marker findings", findings)
	}
	for _, f := range findings {
		if !strings.Contains(f, "required marker") {
			t.Errorf("unexpected finding %q", f)
		}
	}
}

func TestValidateAdvisoryBelowProduction(t *testing.T) {
	path := writeDoc(t, "<wrong/>")
	v := Validator{}
	ok, findings := v.Validate(path)
	if !ok {
		t.Fatalf("non-production validation should pass with findings, got fail: %v", findings)
	}
	if len(findings) == 0 {
		t.Fatalf("expected findings for missing root element")
	}
}

func TestValidateSizeFloor(t *testing.T) {
	path := writeDoc(t, validHead())
	v := Validator{MinSize: 1 << 20, Production: true}
	ok, findings := v.Validate(path)
	if ok {
		t.Fatalf("validation passed despite undersized file")
	}
	found := false
	for _, f := range findings {
		if strings.Contains(f, "file size") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no size finding in %v", findings)
	}
}

func TestValidateMissingFile(t *testing.T) {
	v := Validator{Production: true}
	ok, findings := v.Validate(filepath.Join(t.TempDir(), "absent.xml"))
	if ok {
		t.Fatalf("validation passed for a missing file")
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %v", findings)
	}
}

func TestForScale(t *testing.T) {
	prod := ForScale(entity.ProductionScaleThreshold)
	if !prod.Production || prod.MinSize != entity.TargetMinSize {
		t.Fatalf("ForScale at threshold = %+v, want production with full size floor", prod)
	}
	dev := ForScale(10)
	if dev.Production || dev.MinSize != 0 {
		t.Fatalf("ForScale(10) = %+v, want advisory validator", dev)
	}
}
