// Package correct normalizes attribute-value text in generated markup.
//
// The engine applies two kinds of rules: fixed-pattern rewrites that quote
// bare attribute values, and token substitutions applied only inside quoted
// attribute-value spans. It never repairs structure; the generator emits
// well-formed trees and the engine only touches cosmetic value text.
package correct

import (
	"encoding/json"
	"fmt"
	"os"
)

// PatternRule is a regular-expression rewrite applied to the full text.
// Pattern is RE2 syntax; Replacement may use ${n} group references.
type PatternRule struct {
	Pattern     string `json:"pattern" msgpack:"pattern"`
	Replacement string `json:"replacement" msgpack:"replacement"`
	Description string `json:"description,omitempty" msgpack:"description"`
}

// RuleSet is the on-disk correction rule format.
type RuleSet struct {
	Version       string            `json:"version" msgpack:"version"`
	TotalRules    int               `json:"total_rules" msgpack:"total_rules"`
	Substitutions map[string]string `json:"substitutions" msgpack:"substitutions"`
	Patterns      []PatternRule     `json:"patterns" msgpack:"patterns"`
}

// LoadRules reads a JSON rule set from path.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return &rs, nil
}

// DefaultRules returns the built-in rule set used when no external rule
// file is available.
func DefaultRules() *RuleSet {
	subs := map[string]string{
		// Attribute-name typos
		"visiable":  "visible",
		"visibile":  "visible",
		"visable":   "visible",
		"invisable": "invisible",
		"hiden":     "hidden",
		"hideen":    "hidden",
		"dissable":  "disabled",
		"disible":   "disabled",
		"enabeld":   "enabled",
		"buton":     "button",
		"botton":    "button",
		"imput":     "input",
		"heigth":    "height",
		"widht":     "width",
		"colr":      "color",
		"styl":      "style",
		"classs":    "class",
		"methd":     "method",

		// Value canonicalization
		"Yes":    "true",
		"No":     "false",
		"On":     "true",
		"Off":    "false",
		"TRUE":   "true",
		"FALSE":  "false",
		"enable": "enabled",
		"show":   "visible",
		"hide":   "hidden",
	}
	// The trailing ($|[^"]) group declines values that already sit at the
	// end of a quoted span, and re-scanning corrected text sees =" after
	// the name, so both patterns stay idempotent.
	patterns := []PatternRule{
		{
			Pattern:     `\b(visible|enabled|active)=(true|false)($|[^"])`,
			Replacement: `${1}="${2}"${3}`,
			Description: "quote bare boolean attribute values",
		},
		{
			Pattern:     `\b(version)=(29\.3\.1)($|[^"])`,
			Replacement: `${1}="${2}"${3}`,
			Description: "quote bare version attribute values",
		},
	}
	return &RuleSet{
		Version:       "29.3.1",
		TotalRules:    len(subs) + len(patterns),
		Substitutions: subs,
		Patterns:      patterns,
	}
}
