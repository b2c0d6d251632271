package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/polumm/lifecalc/internal/config"
)

func newExampleConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write an example scenario file to edit and simulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("output")

			file := config.NewInputParser().CreateExampleScenarioFile()
			data, err := yaml.Marshal(file)
			if err != nil {
				return err
			}

			if path == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "scenarios.yaml", "Destination file ('-' for stdout)")
	return cmd
}
