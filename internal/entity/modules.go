package entity

import (
	"fmt"
	"strconv"

	"basgen/internal/partition"
	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

// Modules builds the Modules section: count modules partitioned across the
// fixed module categories, each carrying a manifest, code and an interface
// description.
func Modules(count int, c *stats.Counters) (*xmltree.Element, error) {
	categories, err := partition.Split(count, ModuleCategories)
	if err != nil {
		return nil, err
	}

	section := xmltree.New("Modules")
	section.SetAttr("version", EngineVersion)
	section.SetAttr("count", strconv.Itoa(count))

	id := 0
	for _, cat := range categories {
		for j := 0; j < cat.Count; j++ {
			name := fmt.Sprintf("%s_%d", cat.Name, j)

			m := section.Child("Module")
			m.SetAttr("id", strconv.Itoa(id))
			m.SetAttr("name", name)
			m.SetAttr("version", EngineVersion)
			m.SetAttr("enabled", "true")
			m.SetAttr("category", cat.Name)

			manifest := m.Child("Manifest")
			manifest.SetAttr("name", name)
			manifest.SetAttr("version", EngineVersion)
			manifest.SetAttr("description", fmt.Sprintf("Enterprise %s module", cat.Name))
			manifest.SetAttr("entry", "code.js")
			manifest.SetAttr("interface", "interface.js")

			m.TextChild("Code", moduleCode(cat.Name, j))
			m.TextChild("Interface", moduleInterface(name))

			id++
			c.Modules++
		}
	}
	return section, nil
}

func moduleCode(category string, ordinal int) string {
	return fmt.Sprintf(`// BAS %s Module: %s_%d
function initialize() {
    log("Initializing %s module %d");
    return true;
}

function execute() {
    log("Executing %s operations");
    return performOperation();
}

function performOperation() {
    try {
        return "%s operation completed successfully";
    } catch(error) {
        log("Module error: " + error.message);
        return false;
    }
}`, EngineVersion, category, ordinal, category, ordinal, category, category)
}

func moduleInterface(name string) string {
	return fmt.Sprintf(`{
    "name": "%s",
    "controls": [
        {"type": "button", "text": "Start", "action": "execute"},
        {"type": "toggle", "text": "Auto Mode", "default": true},
        {"type": "input", "placeholder": "Configuration"}
    ]
}`, name)
}
