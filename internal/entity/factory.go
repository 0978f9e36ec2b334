package entity

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

var interactionTypes = []string{"click", "type", "hover", "scroll"}

// Factory produces single entity subtrees. Mandatory attributes (ids,
// names, visibility and enabled flags, version tags) are deterministic;
// cosmetic attributes (positions, sizes, timeouts) are drawn from the
// caller-supplied random source, so each generation task stays independent.
type Factory struct {
	// UIElementCount is the final number of UI elements for the run.
	// It is fixed before any Action is generated so that every UILink
	// reference falls inside [1, UIElementCount].
	UIElementCount int

	// Clock supplies "created" timestamps. Injected so a fixed seed plus
	// a fixed clock yields byte-identical documents.
	Clock func() time.Time
}

// NewFactory returns a Factory for a run with the given final UI element
// count.
func NewFactory(uiElementCount int) *Factory {
	if uiElementCount < 1 {
		uiElementCount = 1
	}
	return &Factory{UIElementCount: uiElementCount, Clock: time.Now}
}

func (f *Factory) now() time.Time {
	if f.Clock == nil {
		return time.Now()
	}
	return f.Clock()
}

// UIElement builds one UI element with triple visibility enforcement:
// visible, data-visible and aria-visible are all fixed to "true".
func (f *Factory) UIElement(rng *rand.Rand, id int, category string, c *stats.Counters) *xmltree.Element {
	el := xmltree.New("UIElement")
	el.SetAttr("id", strconv.Itoa(id))
	el.SetAttr("name", SanitizeName(fmt.Sprintf("%s_Element_%d", category, id)))
	el.SetAttr("visible", "true")
	el.SetAttr("data-visible", "true")
	el.SetAttr("aria-visible", "true")
	el.SetAttr("enabled", "true")
	el.SetAttr("category", category)
	el.SetAttr("version", EngineVersion)

	props := el.Child("Properties")
	props.TextChild("Visibility", "true")
	props.TextChild("InteractionEnabled", "true")
	props.TextChild("AccessibilityEnabled", "true")

	styling := el.Child("Styling")
	styling.SetAttr("theme", "enterprise")
	styling.SetAttr("responsive", "true")
	pos := styling.Child("Position")
	pos.SetAttr("x", strconv.Itoa(rng.Intn(1921)))
	pos.SetAttr("y", strconv.Itoa(rng.Intn(1081)))
	pos.SetAttr("width", strconv.Itoa(100+rng.Intn(201)))
	pos.SetAttr("height", strconv.Itoa(30+rng.Intn(71)))

	if rng.Intn(2) == 0 {
		button := el.Child("Button")
		button.SetAttr("visible", "true")
		button.SetAttr("enabled", "true")
		button.SetAttr("clickable", "true")
		button.Text = fmt.Sprintf("Button_%d", id)
	}

	c.UIElements++
	return el
}

// Macro builds one macro with metadata, an embedded script and a bounded
// random number of linked actions.
func (f *Factory) Macro(rng *rand.Rand, id int, category string, c *stats.Counters) *xmltree.Element {
	m := xmltree.New("Macro")
	m.SetAttr("id", strconv.Itoa(id))
	m.SetAttr("name", SanitizeName(fmt.Sprintf("%s_Macro_%d", category, id)))
	m.SetAttr("enabled", "true")
	m.SetAttr("active", "true")
	m.SetAttr("version", EngineVersion)
	m.SetAttr("category", category)

	meta := m.Child("Metadata")
	meta.TextChild("Description", fmt.Sprintf("Enterprise %s automation macro for BAS %s", category, EngineVersion))
	meta.TextChild("Author", "HDGRACE Enterprise System")
	meta.TextChild("Created", f.now().UTC().Format(time.RFC3339))

	script := m.Child("Script")
	script.CDATA = ScriptFor(id, category)

	actions := m.Child("Actions")
	count := MinActionsPerMacro + rng.Intn(MaxActionsPerMacro-MinActionsPerMacro+1)
	for i := 0; i < count; i++ {
		actions.Append(f.Action(rng, fmt.Sprintf("%d_%d", id, i), category, c))
	}

	c.Macros++
	return m
}

// Action builds one action referencing a UI element. The reference is drawn
// from [1, UIElementCount] and therefore always resolves: entities are never
// deleted after creation.
func (f *Factory) Action(rng *rand.Rand, id, category string, c *stats.Counters) *xmltree.Element {
	a := xmltree.New("Action")
	a.SetAttr("id", id)
	a.SetAttr("type", category)
	a.SetAttr("enabled", "true")
	a.SetAttr("version", EngineVersion)

	link := a.Child("UILink")
	link.SetAttr("element_id", strconv.Itoa(1+rng.Intn(f.UIElementCount)))
	link.SetAttr("interaction_type", interactionTypes[rng.Intn(len(interactionTypes))])

	params := a.Child("Parameters")
	switch category {
	case "youtube":
		addParam(params, "video_quality", "1080p")
		addParam(params, "autoplay", "true")
	case "proxy":
		addParam(params, "rotation_interval", "300")
		addParam(params, "retry_count", "3")
	default:
		addParam(params, "timeout", strconv.Itoa(5000+rng.Intn(25001)))
	}

	c.Actions++
	return a
}

func addParam(params *xmltree.Element, name, value string) {
	p := params.Child("Parameter")
	p.SetAttr("name", name)
	p.SetAttr("value", value)
}
