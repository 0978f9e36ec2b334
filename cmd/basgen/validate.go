package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"basgen/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file>",
	Short: "Validate a generated project document",
	Long:  "Check a generated document for the required root element, engine markers and minimum size.",
	Args:  cobra.ExactArgs(1),
	RunE:  validateExecution,
}

func init() {
	validateCmd.Flags().Int("min-size-mb", 0, "minimum file size in MiB (0 = no size check)")
	validateCmd.Flags().Bool("production", false, "fail on any finding instead of reporting them")
}

func validateExecution(cmd *cobra.Command, args []string) error {
	minSizeMB, err := cmd.Flags().GetInt("min-size-mb")
	if err != nil {
		return err
	}
	production, err := cmd.Flags().GetBool("production")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	v := validate.Validator{
		MinSize:    int64(minSizeMB) << 20,
		Production: production,
	}
	ok, findings := v.Validate(args[0])

	out := cmd.OutOrStdout()
	if !quiet {
		for _, f := range findings {
			fmt.Fprintf(out, "%s %s\n", warnColor.Sprint("finding:"), f)
		}
	}
	if !ok {
		fmt.Fprintf(out, "%s %s\n", args[0], failColor.Sprint("FAILED"))
		return fmt.Errorf("validation failed with %d findings", len(findings))
	}
	fmt.Fprintf(out, "%s %s\n", args[0], okColor.Sprint("passed"))
	return nil
}
