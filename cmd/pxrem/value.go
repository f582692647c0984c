package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem/internal/rem"
)

var valueCmd = &cobra.Command{
	Use:   "value <property> <value> [<property> <value>...]",
	Short: "Convert declarations given on the command line",
	Long: `Convert one or more declarations and print the result, one per line.
Values with spaces must be quoted:

  pxrem value margin "20px auto" font-size 14px`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("expected property and value pairs, got %d arguments", len(args))
		}
		return nil
	},
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}

		decls := make([]rem.Declaration, 0, len(args)/2)
		for i := 0; i < len(args); i += 2 {
			decls = append(decls, rem.Declaration{Property: args[i], Value: rem.Parse(args[i+1])})
		}

		for _, line := range rem.DeclareAll(decls, opts) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}
