package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"basgen/internal/correct"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] [path]",
	Short: "Show the active correction rule set",
	Long:  "Print the correction rules a generation run would use: token substitutions, attribute patterns and any rules the engine rejects at compile time. Loading an external file refreshes its compiled cache entry.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  rulesExecution,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func rulesExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	rs := correct.DefaultRules()
	source := "built-in"
	if len(args) == 1 {
		cache, cacheErr := correct.OpenCache("basgen")
		if cacheErr != nil {
			cache = nil
		}
		rs, err = correct.LoadRulesCached(args[0], cache)
		if err != nil {
			return err
		}
		source = args[0]
	}
	engine, warnings := correct.NewEngine(rs)

	out := cmd.OutOrStdout()
	if format == "json" {
		payload := struct {
			Source      string           `json:"source"`
			Version     string           `json:"version"`
			Rules       int              `json:"declared_rules"`
			RuleSet     *correct.RuleSet `json:"rule_set"`
			Warnings    []string         `json:"warnings,omitempty"`
		}{source, engine.Version(), engine.TotalRules(), rs, warnings}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintf(out, "rule set %s (%s), %d declared rules\n", engine.Version(), source, engine.TotalRules())

	tokens := make([]string, 0, len(rs.Substitutions))
	for token := range rs.Substitutions {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		fmt.Fprintf(out, "  %-24s -> %s\n", token, rs.Substitutions[token])
	}
	for _, p := range rs.Patterns {
		fmt.Fprintf(out, "  pattern %-40s -> %s\n", p.Pattern, p.Replacement)
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("warning:"), w)
	}
	return nil
}
