package entity

import (
	"fmt"
	"strconv"
	"time"

	"basgen/internal/xmltree"
)

// ProjectMeta carries the document-level settings for one generation run.
type ProjectMeta struct {
	Name    string
	Version string
	Created time.Time
	Workers int
}

// NewProject builds the document root with the fixed schema prelude:
// engine and structure version markers, project metadata and settings.
// Generated sections are appended between this prelude and the output
// configuration added by AppendOutputConfig.
func NewProject(meta ProjectMeta) *xmltree.Element {
	root := xmltree.New(RootElement)
	root.SetAttr("xmlns", Namespace)
	root.SetAttr("version", EngineVersion)

	root.TextChild("EngineVersion", EngineVersion)
	root.TextChild("StructureVersion", StructureVersion)

	pm := root.Child("ProjectMetadata")
	pm.SetAttr("name", meta.Name)
	pm.SetAttr("version", meta.Version)
	pm.SetAttr("created", meta.Created.UTC().Format(time.RFC3339))
	pm.SetAttr("generator", fmt.Sprintf("basgen %s", EngineVersion))

	settings := root.Child("Settings")
	settings.SetAttr("threads", strconv.Itoa(meta.Workers))
	settings.SetAttr("timeout", "60000")
	settings.SetAttr("memory", "high")
	settings.SetAttr("windowwidth", "1920")
	settings.SetAttr("windowheight", "1080")
	settings.SetAttr("headless", "false")

	return root
}

// AppendOutputConfig appends the trailing output configuration and model
// list, closing out the fixed document skeleton.
func AppendOutputConfig(root *xmltree.Element) {
	cfg := root.Child("OutputConfiguration")
	for i := 1; i <= 9; i++ {
		title := cfg.Child(fmt.Sprintf("OutputTitle%d", i))
		title.SetAttr("en", fmt.Sprintf("Output %d", i))
		title.SetAttr("ru", fmt.Sprintf("Output %d", i))

		visible := "0"
		if i <= 3 {
			visible = "1"
		}
		cfg.TextChild(fmt.Sprintf("OutputVisible%d", i), visible)
	}
	root.Child("ModelList")
}
