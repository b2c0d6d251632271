package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifecalc",
		Short: "Life calculator - multi-year wealth trajectory simulation",
		Long: `lifecalc projects personal wealth over time under user-specified
assumptions (starting assets, income, allocation split, return rates) and
decomposes the result into growth from initial capital versus growth from
ongoing income contributions.`,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newCompareCmd(),
		newServeCmd(),
		newExampleConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifecalc version %s\n", version)
		},
	}
}
