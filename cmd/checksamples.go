/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/siteforge/apiserver/internal/schema"
	"github.com/spf13/cobra"
)

var checkSamplesSchemaPath string

// checkSamplesCmd represents the check-samples command. It is a
// standalone diagnostic: compile the schema once, run the bundled
// sample documents through it, and report per-file pass/fail.
var checkSamplesCmd = &cobra.Command{
	Use:   "check-samples",
	Short: "Validate the bundled sample documents against the schema",
	Long: `Validates the bundled sample site-config documents against the
JSON Schema (the bundled schema by default, or --schema to check a
schema file on disk). Exits non-zero if any sample fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaData := schema.DefaultSchema()
		if checkSamplesSchemaPath != "" {
			data, err := os.ReadFile(checkSamplesSchemaPath)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			schemaData = data
		}

		compiled, err := schema.Compile(schemaData)
		if err != nil {
			return err
		}

		samples, err := schema.Samples()
		if err != nil {
			return fmt.Errorf("load samples: %w", err)
		}
		names, err := schema.SampleNames()
		if err != nil {
			return fmt.Errorf("load samples: %w", err)
		}

		failed := 0
		for _, name := range names {
			var doc any
			if err := json.Unmarshal(samples[name], &doc); err != nil {
				return fmt.Errorf("decode sample %s: %w", name, err)
			}
			err := schema.Check(compiled, doc)
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", name)
				continue
			}
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", name)
			if ve, ok := err.(*schema.ValidationError); ok {
				for _, field := range ve.Fields {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", field.Path, field.Message)
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", err)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d samples failed validation", failed, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkSamplesCmd)

	checkSamplesCmd.Flags().StringVar(&checkSamplesSchemaPath, "schema", "", "path to a schema file (defaults to the bundled schema)")
}
