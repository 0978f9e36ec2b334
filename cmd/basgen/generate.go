package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"basgen/internal/assemble"
	"basgen/internal/entity"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "Generate a BrowserAutomationStudio project document",
	Long:  "Generate a complete project document with UI elements, macros, core blocks, modules and enterprise configuration, padded to the target size and validated.",
	Args:  cobra.NoArgs,
	RunE:  generateExecution,
}

func init() {
	generateCmd.Flags().String("out", "", "output directory (default: current directory)")
	generateCmd.Flags().Int64("seed", 42, "random seed; the same seed always yields the same document")
	generateCmd.Flags().Int("workers", 0, "generation worker count (0 = auto)")
	generateCmd.Flags().Int("ui-elements", 0, fmt.Sprintf("UI element count (0 = %d)", entity.DefaultUIElementCount))
	generateCmd.Flags().Int("macros", 0, fmt.Sprintf("macro count (0 = %d)", entity.DefaultMacroCount))
	generateCmd.Flags().Int("modules", 0, fmt.Sprintf("module count (0 = %d)", entity.DefaultModuleCount))
	generateCmd.Flags().Int("target-size-mb", 0, "minimum output size in MiB (0 = auto, negative disables padding)")
	generateCmd.Flags().String("rules", "", "JSON correction-rule file (default: built-in rules)")
	generateCmd.Flags().Bool("fail-fast", false, "abort on the first section failure instead of omitting the section")
	generateCmd.Flags().Duration("wall-budget", 0, "wall-clock budget before a timing finding is recorded (0 = default)")
	generateCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func generateExecution(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	cfg, err := resolveGenerateConfig(cmd)
	if err != nil {
		return err
	}

	var sum assemble.Summary
	if shouldUseTUI(uiModeValue) && !quiet {
		sum, err = runGenerateWithUI(cmd.Context(), "basgen generate", cfg)
	} else {
		if !quiet {
			cfg.Progress = plainSink{out: cmd.ErrOrStderr()}
		}
		sum, err = assemble.Generate(cmd.Context(), cfg)
	}
	if err != nil {
		return err
	}

	printGenerateSummary(cmd.OutOrStdout(), sum, quiet)
	if timings {
		printPhaseTimings(cmd.OutOrStdout(), sum.Timings)
	}
	if !sum.Passed {
		return fmt.Errorf("validation failed with %d findings", len(sum.Findings))
	}
	return nil
}

// resolveGenerateConfig layers flags over an optional basgen.toml: the
// manifest supplies defaults, explicitly set flags win.
func resolveGenerateConfig(cmd *cobra.Command) (assemble.Config, error) {
	var cfg assemble.Config

	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return assemble.Config{}, err
	}
	if found {
		gen := manifest.Config.Generate
		cfg.OutputDir = gen.Out
		cfg.Seed = gen.Seed
		cfg.Workers = gen.Workers
		cfg.UIElements = gen.UIElements
		cfg.Macros = gen.Macros
		cfg.Modules = gen.Modules
		cfg.TargetSize = int64(gen.TargetSizeMB) << 20
		cfg.RulesPath = gen.Rules
		cfg.FailFast = gen.FailFast
	}

	flags := cmd.Flags()
	if out, err := flags.GetString("out"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("out") {
		cfg.OutputDir = out
	}
	if seed, err := flags.GetInt64("seed"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("seed") || !found {
		cfg.Seed = seed
	}
	if workers, err := flags.GetInt("workers"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if n, err := flags.GetInt("ui-elements"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("ui-elements") {
		cfg.UIElements = n
	}
	if n, err := flags.GetInt("macros"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("macros") {
		cfg.Macros = n
	}
	if n, err := flags.GetInt("modules"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("modules") {
		cfg.Modules = n
	}
	if mb, err := flags.GetInt("target-size-mb"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("target-size-mb") {
		if mb < 0 {
			cfg.TargetSize = -1
		} else {
			cfg.TargetSize = int64(mb) << 20
		}
	}
	if rules, err := flags.GetString("rules"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("rules") {
		cfg.RulesPath = rules
	}
	if failFast, err := flags.GetBool("fail-fast"); err != nil {
		return assemble.Config{}, err
	} else if flags.Changed("fail-fast") {
		cfg.FailFast = failFast
	}
	if budget, err := flags.GetDuration("wall-budget"); err != nil {
		return assemble.Config{}, err
	} else if budget > 0 {
		cfg.WallBudget = budget
	}

	return cfg, nil
}
