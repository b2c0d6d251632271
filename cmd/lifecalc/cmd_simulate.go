package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/config"
	"github.com/polumm/lifecalc/internal/output"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario-file>",
		Short: "Simulate the scenarios in a YAML file and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			toFile, _ := cmd.Flags().GetBool("output-file")

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
			}

			logger := newLogger(cmd)
			parser := config.NewInputParser()
			file, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			for _, sc := range file.Scenarios {
				if !sc.Parameters.FractionsSumToOne() {
					logger.Warnf("scenario %q: allocation fractions sum to %s, not 1",
						sc.Label, sc.Parameters.FractionSum().String())
				}
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(engineLogger{logger})
			comparison, err := engine.RunScenarios(cmd.Context(), file.Scenarios)
			if err != nil {
				return err
			}

			if toFile {
				ext := formatter.Name()
				if ext == "console" {
					ext = "txt"
				}
				name, err := output.WriteFormatted(formatter, comparison, ext)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
				return nil
			}

			data, err := formatter.Format(comparison)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	cmd.Flags().Bool("output-file", false, "Write to a timestamped report file instead of stdout")
	return cmd
}
