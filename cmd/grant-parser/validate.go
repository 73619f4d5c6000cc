// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grant-parser/internal/export"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check exported CSV and JSON artifacts",
	Long: `Validate reloads the exported CSV and JSON files and checks that
they agree with each other: same record count, expected columns. With
--expect it also checks the count against the number of documents the
parse run reported, which surfaces dropped records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := stringSetting(cmd, "output-dir", "export.output_dir", "output")
		expect, _ := cmd.Flags().GetInt("expect")

		csvPath := filepath.Join(outDir, exportBase+".csv")
		jsonPath := filepath.Join(outDir, exportBase+".json")

		if err := export.Verify(csvPath, jsonPath, expect); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "exports in %s agree\n", outDir)
		return nil
	},
}

func init() {
	validateCmd.Flags().String("output-dir", "output", "directory holding the exported files")
	validateCmd.Flags().Int("expect", -1, "expected record count (-1 to skip)")

	rootCmd.AddCommand(validateCmd)
}
