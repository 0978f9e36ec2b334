package entity

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
}

func newTestFactory(uiCount int) *Factory {
	f := NewFactory(uiCount)
	f.Clock = fixedClock
	return f
}

func TestUIElementTripleVisibility(t *testing.T) {
	f := newTestFactory(10)
	var c stats.Counters
	el := f.UIElement(rand.New(rand.NewSource(1)), 7, "youtube", &c)

	for _, attr := range []string{"visible", "data-visible", "aria-visible"} {
		v, ok := el.Attr(attr)
		if !ok || v != "true" {
			t.Fatalf("attribute %s = %q, %v; all three visibility flags must be \"true\"", attr, v, ok)
		}
	}
	if v, _ := el.Attr("enabled"); v != "true" {
		t.Fatalf("enabled = %q", v)
	}
	if v, _ := el.Attr("version"); v != EngineVersion {
		t.Fatalf("version = %q, want %q", v, EngineVersion)
	}
	if c.UIElements != 1 {
		t.Fatalf("UIElements counter = %d", c.UIElements)
	}
}

func TestUIElementDeterministicMandatoryAttrs(t *testing.T) {
	f := newTestFactory(10)
	var c stats.Counters
	a := f.UIElement(rand.New(rand.NewSource(1)), 3, "proxy", &c)
	b := f.UIElement(rand.New(rand.NewSource(99)), 3, "proxy", &c)

	for _, attr := range []string{"id", "name", "category", "version"} {
		av, _ := a.Attr(attr)
		bv, _ := b.Attr(attr)
		if av != bv {
			t.Fatalf("mandatory attribute %s differs across seeds: %q vs %q", attr, av, bv)
		}
	}
	if name, _ := a.Attr("name"); name != "proxy_Element_3" {
		t.Fatalf("name = %q", name)
	}
}

func TestActionReferenceInRange(t *testing.T) {
	const uiCount = 25
	f := newTestFactory(uiCount)
	rng := rand.New(rand.NewSource(42))
	var c stats.Counters

	for i := 0; i < 500; i++ {
		a := f.Action(rng, "1_"+strconv.Itoa(i), "browser", &c)
		var link *xmltree.Element
		for _, child := range a.Children {
			if child.Name == "UILink" {
				link = child
			}
		}
		if link == nil {
			t.Fatal("action has no UILink child")
		}
		raw, _ := link.Attr("element_id")
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 || id > uiCount {
			t.Fatalf("element_id %q outside [1, %d]", raw, uiCount)
		}
	}
	if c.Actions != 500 {
		t.Fatalf("Actions counter = %d", c.Actions)
	}
}

func TestMacroActionCountBounded(t *testing.T) {
	f := newTestFactory(100)
	rng := rand.New(rand.NewSource(7))
	var c stats.Counters

	for i := 0; i < 20; i++ {
		m := f.Macro(rng, i, "monitoring", &c)
		var actions *xmltree.Element
		for _, child := range m.Children {
			if child.Name == "Actions" {
				actions = child
			}
		}
		if actions == nil {
			t.Fatal("macro has no Actions child")
		}
		n := len(actions.Children)
		if n < MinActionsPerMacro || n > MaxActionsPerMacro {
			t.Fatalf("macro %d has %d actions, want [%d, %d]", i, n, MinActionsPerMacro, MaxActionsPerMacro)
		}
	}
	if c.Macros != 20 {
		t.Fatalf("Macros counter = %d", c.Macros)
	}
}

func TestMacroEmbedsScript(t *testing.T) {
	f := newTestFactory(10)
	var c stats.Counters
	m := f.Macro(rand.New(rand.NewSource(3)), 5, "youtube", &c)

	var script *xmltree.Element
	for _, child := range m.Children {
		if child.Name == "Script" {
			script = child
		}
	}
	if script == nil || script.CDATA == "" {
		t.Fatal("macro has no embedded script")
	}
	if !strings.Contains(script.CDATA, "macro 5") {
		t.Fatalf("script does not reference its macro id: %q", script.CDATA)
	}
}

func TestCoreBlocksCount(t *testing.T) {
	var c stats.Counters
	section := CoreBlocks(&c)
	if len(section.Children) != 26 {
		t.Fatalf("CoreBlocks has %d blocks, want 26", len(section.Children))
	}
	if c.Blocks != 26 {
		t.Fatalf("Blocks counter = %d", c.Blocks)
	}
	for _, b := range section.Children {
		if v, _ := b.Attr("visible"); v != "true" {
			name, _ := b.Attr("name")
			t.Fatalf("block %s not visible", name)
		}
	}
}

func TestModulesPartitioned(t *testing.T) {
	var c stats.Counters
	section, err := Modules(103, &c)
	if err != nil {
		t.Fatalf("Modules failed: %v", err)
	}
	if len(section.Children) != 103 {
		t.Fatalf("Modules has %d children, want 103", len(section.Children))
	}
	if c.Modules != 103 {
		t.Fatalf("Modules counter = %d", c.Modules)
	}
	// Ids must be dense and ordered.
	for i, m := range section.Children {
		id, _ := m.Attr("id")
		if id != strconv.Itoa(i) {
			t.Fatalf("module %d has id %q", i, id)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"youtube_Element_1", "youtube_Element_1"},
		{"has space-and.dots", "has_space_and_dots"},
		{"emoji🎥name", "emoji_name"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	long := strings.Repeat("x", 300)
	if got := SanitizeName(long); len(got) != 100 {
		t.Fatalf("SanitizeName long input length = %d, want 100", len(got))
	}
}

func TestNewProjectSkeleton(t *testing.T) {
	root := NewProject(ProjectMeta{Name: "p", Version: "1.0.0", Created: fixedClock(), Workers: 8})
	AppendOutputConfig(root)

	if root.Name != RootElement {
		t.Fatalf("root element = %q", root.Name)
	}
	if root.Children[0].Name != "EngineVersion" || root.Children[0].Text != EngineVersion {
		t.Fatalf("first child = %+v, want EngineVersion", root.Children[0])
	}
	if root.Children[1].Name != "StructureVersion" || root.Children[1].Text != StructureVersion {
		t.Fatalf("second child = %+v, want StructureVersion", root.Children[1])
	}
	last := root.Children[len(root.Children)-1]
	if last.Name != "ModelList" {
		t.Fatalf("last child = %q, want ModelList", last.Name)
	}
}
