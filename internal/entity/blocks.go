package entity

import (
	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

type blockGroup struct {
	kind      string
	names     []string
	configure func(*xmltree.Element)
}

// coreBlockGroups are the 26 fixed system blocks every project carries,
// in their required order.
var coreBlockGroups = []blockGroup{
	{
		kind: "system",
		names: []string{
			"DatBlock", "UpdaterBlock", "DependencyLoaderBlock",
			"CompatibilityLayerBlock", "CoreModuleBlock",
		},
		configure: func(b *xmltree.Element) {
			cfg := b.Child("Configuration")
			cfg.SetAttr("auto_start", "true")
			cfg.SetAttr("critical", "true")
		},
	},
	{
		kind: "ui",
		names: []string{
			"MainDashBlock", "SubDashBlock", "SystemDashBlock",
			"PrimaryUIComponentBlock", "SecondaryUIComponentBlock",
		},
		configure: func(b *xmltree.Element) {
			cfg := b.Child("UIConfiguration")
			cfg.SetAttr("responsive", "true")
			cfg.SetAttr("theme", "enterprise")
		},
	},
	{
		kind: "resource",
		names: []string{
			"PrimaryResourceBlock", "SecondaryResourceBlock", "SystemResourceBlock",
			"CoreScriptBlock", "UtilityScriptBlock",
		},
		configure: func(b *xmltree.Element) {
			cfg := b.Child("ResourceConfiguration")
			cfg.SetAttr("memory_limit", "512MB")
			cfg.SetAttr("cpu_limit", "25%")
		},
	},
	{
		kind: "navigation",
		names: []string{
			"PrimaryNavigatorBlock", "SecondaryNavigatorBlock", "CoreActionBlock",
		},
	},
	{
		kind: "security",
		names: []string{
			"PrimarySecurityBlock", "NetworkSecurityBlock", "AuthenticationNetworkBlock",
		},
		configure: func(b *xmltree.Element) {
			cfg := b.Child("SecurityConfiguration")
			cfg.SetAttr("encryption", "AES256")
			cfg.SetAttr("authentication", "required")
		},
	},
	{
		kind: "enterprise",
		names: []string{
			"LoggingBlock", "MonitoringBlock", "SchedulerBlock",
			"ThreadManagerBlock", "MemoryGuardBlock",
		},
	},
}

// CoreBlocks builds the fixed CoreBlocks section.
func CoreBlocks(c *stats.Counters) *xmltree.Element {
	section := xmltree.New("CoreBlocks")
	section.SetAttr("version", EngineVersion)

	for _, group := range coreBlockGroups {
		for _, name := range group.names {
			b := section.Child("Block")
			b.SetAttr("name", name)
			b.SetAttr("type", group.kind)
			b.SetAttr("visible", "true")
			b.SetAttr("enabled", "true")
			b.SetAttr("version", EngineVersion)
			if group.configure != nil {
				group.configure(b)
			}
			c.Blocks++
		}
	}
	return section
}
