package assemble

import (
	"context"
	"math/rand"
	"strconv"

	"basgen/internal/entity"
	"basgen/internal/observ"
	"basgen/internal/partition"
	"basgen/internal/stats"
	"basgen/internal/xmltree"
)

// SectionCounts sets the entity quota for each generated section.
type SectionCounts struct {
	UIElements int
	Macros     int
	Modules    int
}

// BuildTasks returns the section tasks in the fixed merge order:
// UI elements, macros, core blocks, modules, chrome configuration,
// enterprise features. mem may be nil.
func BuildTasks(f *entity.Factory, counts SectionCounts, mem *observ.MemSampler) []Task {
	return []Task{
		NewTask("ui_elements", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			categories, err := partition.Split(counts.UIElements, entity.UICategories)
			if err != nil {
				return nil, err
			}
			section := xmltree.New("UIElements")
			section.SetAttr("count", strconv.Itoa(counts.UIElements))
			section.SetAttr("version", entity.EngineVersion)

			id := 0
			for _, cat := range categories {
				for j := 0; j < cat.Count; j++ {
					id++
					section.Append(f.UIElement(rng, id, cat.Name, c))
					if id%100 == 0 {
						mem.Sample()
						if err := ctx.Err(); err != nil {
							return nil, err
						}
					}
				}
			}
			return section, nil
		}),
		NewTask("macros", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			categories, err := partition.Split(counts.Macros, entity.UICategories)
			if err != nil {
				return nil, err
			}
			section := xmltree.New("Macros")
			section.SetAttr("count", strconv.Itoa(counts.Macros))
			section.SetAttr("version", entity.EngineVersion)

			id := 0
			for _, cat := range categories {
				for j := 0; j < cat.Count; j++ {
					id++
					section.Append(f.Macro(rng, id, cat.Name, c))
					if id%50 == 0 {
						mem.Sample()
						if err := ctx.Err(); err != nil {
							return nil, err
						}
					}
				}
			}
			return section, nil
		}),
		NewTask("core_blocks", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			return entity.CoreBlocks(c), nil
		}),
		NewTask("modules", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			return entity.Modules(counts.Modules, c)
		}),
		NewTask("chrome_config", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			return entity.ChromeConfiguration(), nil
		}),
		NewTask("enterprise", func(ctx context.Context, rng *rand.Rand, c *stats.Counters) (*xmltree.Element, error) {
			return entity.EnterpriseFeatures(), nil
		}),
	}
}

// SectionNames returns the declared section order, used by progress UIs.
func SectionNames(tasks []Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	return names
}
