package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errChangesFound makes check exit 1 without printing an error
var errChangesFound = errors.New("stylesheets contain px or pt lengths")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report px and pt lengths without rewriting (CI mode)",
	Long: `Run a conversion without writing any file.
Exits 1 when at least one declaration would change.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := process(cmd.Context(), cmd.OutOrStdout(), true)
		if err != nil {
			return err
		}
		if len(result.Changes) > 0 {
			return errChangesFound
		}
		return nil
	},
}

func init() {
	addFileFlags(checkCmd)
}
