// Package entity builds the BAS 29.3.1 project schema: UI elements, macros,
// actions, core blocks, modules and the fixed configuration sections.
package entity

// Fixed schema markers. Validation checks these verbatim, so they are
// constants rather than configuration.
const (
	EngineVersion    = "29.3.1"
	StructureVersion = "3.1"
	Namespace        = "http://bablosoft.com/BAS"
	RootElement      = "BrowserAutomationStudioProject"
)

// ClosingMarker is the terminal tag of every generated document. The size
// padder inserts filler immediately before it.
const ClosingMarker = "</" + RootElement + ">"

// Production-scale defaults.
const (
	DefaultUIElementCount = 3065
	DefaultMacroCount     = 3065
	DefaultModuleCount    = 3065

	MinActionsPerMacro = 30
	MaxActionsPerMacro = 50

	// ProductionScaleThreshold separates test-scale runs (relaxed size
	// validation) from production runs (fixed 700 MiB floor).
	ProductionScaleThreshold = 3000

	// TargetMinSize is the production minimum artifact size in bytes.
	TargetMinSize = 700 << 20
)

// UICategories is the fixed category order for UI elements and macros.
// Partitioning and merge order both depend on this order, never on map
// iteration.
var UICategories = []string{
	"youtube", "proxy", "browser", "security", "monitoring",
	"logging", "navigation", "authentication", "reporting", "validation",
}

// ModuleCategories is the fixed category order for generated modules.
var ModuleCategories = []string{
	"youtube_automation", "proxy_management", "browser_control",
	"security_management", "network_optimization", "error_recovery",
	"scheduling", "monitoring", "logging", "threading",
	"memory_management", "ui_automation", "data_extraction",
	"form_filling", "navigation", "authentication", "reporting",
	"validation", "backup", "restoration",
}
